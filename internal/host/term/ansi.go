package term

import (
	"strconv"
	"strings"
)

const (
	upperHalf = '▀'
	resetSGR  = "\x1b[0m"
)

// Blit writes an RGBA buffer as truecolor half-block cells. Each text row
// covers two pixel rows: the upper pixel is the foreground of '▀' and the
// lower one its background. An odd last row leaves the background unset.
func Blit(sb *strings.Builder, pix []byte, width, height int) {
	if width <= 0 || height <= 0 || len(pix) < width*height*4 {
		return
	}
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := (y*width + x) * 4
			sb.WriteString("\x1b[0;38;2;")
			writeRGB(sb, pix[top:top+3])
			if y+1 < height {
				bot := ((y+1)*width + x) * 4
				sb.WriteString(";48;2;")
				writeRGB(sb, pix[bot:bot+3])
			}
			sb.WriteByte('m')
			sb.WriteRune(upperHalf)
		}
		sb.WriteString(resetSGR)
		sb.WriteByte('\n')
	}
}

// BlitString is Blit into a fresh string.
func BlitString(pix []byte, width, height int) string {
	var sb strings.Builder
	sb.Grow(width * ((height + 1) / 2) * 40)
	Blit(&sb, pix, width, height)
	return sb.String()
}

func writeRGB(sb *strings.Builder, c []byte) {
	sb.WriteString(strconv.Itoa(int(c[0])))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c[1])))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c[2])))
}
