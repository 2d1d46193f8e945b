// Package anim drives the noise animation from host supplied tick signals.
//
// The [Driver] owns the time offset and the Idle/Running phase. It has no
// goroutines and no timers: a host calls [Driver.Tick] on its own schedule,
// [Driver.SetSeed] when the user picks a seed and [Driver.ResetCanvas] to
// restart the animation.
//
// # Hosts
//
// A [Host] only needs to create canvases and accept pixel buffers. Diagnostic
// and heading hooks are optional ([Logger], [Titler]) and skipped when absent.
//
// # Thread Safety
//
// Driver instances are NOT safe for concurrent use. Hosts must deliver every
// call from a single event loop and never re-enter the driver.
package anim
