package term

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/perlinlab/internal/render"
)

func TestHost_CopiesPixels(t *testing.T) {
	h := NewHost(0)
	if err := h.CreateCanvas("2d", 2, 2); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 16)
	buf[0] = 99
	if err := h.WritePixels("2d", buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 1
	if got := h.Pixels("2d")[0]; got != 99 {
		t.Errorf("host should keep its own copy, got %d", got)
	}
}

func TestHost_Errors(t *testing.T) {
	h := NewHost(0)
	if err := h.CreateCanvas("bad", 0, 2); !errors.Is(err, render.ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
	if err := h.WritePixels("missing", nil); !errors.Is(err, ErrUnknownCanvas) {
		t.Errorf("expected ErrUnknownCanvas, got %v", err)
	}
	if _, err := h.Render("missing"); !errors.Is(err, ErrUnknownCanvas) {
		t.Errorf("expected ErrUnknownCanvas, got %v", err)
	}

	_ = h.CreateCanvas("2d", 2, 2)
	if err := h.WritePixels("2d", make([]byte, 3)); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestHost_HeadingsAndOrder(t *testing.T) {
	h := NewHost(0)
	h.CreateHeading("first")
	_ = h.CreateCanvas("a", 1, 1)
	_ = h.CreateCanvas("b", 1, 1)

	if got := h.Names(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("unexpected order %v", got)
	}
	if h.Title("a") != "first" || h.Title("b") != "" {
		t.Errorf("heading should attach to the next canvas only: %q %q", h.Title("a"), h.Title("b"))
	}
}

func TestHost_LogRing(t *testing.T) {
	h := NewHost(3)
	for _, msg := range []string{"a", "b", "c", "d", "e"} {
		h.Log(msg)
	}
	if got := strings.Join(h.Logs(), ""); got != "cde" {
		t.Errorf("expected last three lines, got %q", got)
	}
}
