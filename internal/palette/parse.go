package palette

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/pixelpad/internal/pixel"
)

// ParseColor accepts a hex colour (#RRGGBB, #RRGGBBAA, #RGB), one of the
// default palette names, a CSS colour name, or "transparent".
func ParseColor(s string) (pixel.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return pixel.Color{}, fmt.Errorf("empty colour")
	}
	if strings.HasPrefix(s, "#") {
		return pixel.ParseHex(s)
	}
	name := strings.ToLower(s)
	if name == "transparent" || name == "none" {
		return pixel.Transparent, nil
	}
	for _, nc := range Named {
		if strings.EqualFold(nc.Name, name) {
			return nc.Color, nil
		}
	}
	if c, ok := colornames.Map[name]; ok {
		return pixel.FromColor(c), nil
	}
	if c, err := pixel.ParseHex(s); err == nil {
		return c, nil
	}
	return pixel.Color{}, fmt.Errorf("unknown colour %q", s)
}

// ParseHexList reads one colour per line. Blank lines and lines starting with
// ';' or "//" are skipped. This is the .hex format used by palette sites.
func ParseHexList(r io.Reader) ([]pixel.Color, error) {
	var out []pixel.Color
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "//") {
			continue
		}
		c, err := ParseColor(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, c)
	}
	return out, scanner.Err()
}

// ParseGPL reads a GIMP palette. Header lines (GIMP Palette, Name:, Columns:)
// and comments are skipped; each remaining line starts with three decimal
// channel values.
func ParseGPL(r io.Reader) ([]pixel.Color, error) {
	var out []pixel.Color
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			if line != "GIMP Palette" {
				return nil, fmt.Errorf("missing GIMP Palette header")
			}
			continue
		}
		if line == "" || strings.HasPrefix(line, "#") || strings.Contains(line, ":") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: expected R G B", lineNo)
		}
		var ch [3]uint8
		for i := range ch {
			v, err := strconv.ParseUint(fields[i], 10, 8)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			ch[i] = uint8(v)
		}
		out = append(out, pixel.RGBA(ch[0], ch[1], ch[2], 255))
	}
	return out, scanner.Err()
}

// WriteHexList writes colors in the .hex format.
func WriteHexList(w io.Writer, colors []pixel.Color) error {
	for _, c := range colors {
		if _, err := fmt.Fprintln(w, strings.TrimPrefix(c.Hex(), "#")); err != nil {
			return err
		}
	}
	return nil
}
