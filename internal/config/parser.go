package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/pixelpad/internal/palette"
	"github.com/example/pixelpad/internal/pixel"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	// Context for parsing
	var currentSection string
	var currentPalette string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentPalette = ""

			if name, ok := strings.CutPrefix(currentSection, "palette."); ok {
				currentPalette = name
				cfg.Palettes[name] = nil
			}
			continue
		}

		// Parse Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentPalette != "":
			err = addPaletteColor(cfg, currentPalette, key, value)
		case currentSection == "spritesheet":
			err = setSpritesheetField(&cfg.Spritesheet, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			section := currentSection
			if section == "" {
				section = "root"
			}
			return nil, fmt.Errorf("error in section [%s]: %w", section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	var err error
	switch key {
	case "width":
		cfg.Width, err = parseInt(key, value)
	case "height":
		cfg.Height, err = parseInt(key, value)
	case "undo_limit":
		cfg.UndoLimit, err = parseInt(key, value)
	case "main_color":
		cfg.MainColor, err = parseColor(key, value)
	case "background":
		cfg.Background, err = parseColor(key, value)
	case "palette":
		cfg.Palette = value
	case "save_dir":
		cfg.SaveDir = value
	}
	return err
}

func setSpritesheetField(s *Spritesheet, key, value string) error {
	n, err := parseInt(key, value)
	if err != nil {
		return err
	}
	switch key {
	case "columns":
		s.Columns = n
	case "rows":
		s.Rows = n
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch key {
	case "save":
		n.Save = b
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

// addPaletteColor accepts "color = C" lines and comma separated
// "colors = C1, C2" lines.
func addPaletteColor(cfg *Config, name, key, value string) error {
	switch key {
	case "color", "colors":
	default:
		return nil // Ignore unknown fields
	}
	for _, field := range strings.Split(value, ",") {
		if strings.TrimSpace(field) == "" {
			continue
		}
		c, err := parseColor(key, field)
		if err != nil {
			return err
		}
		cfg.Palettes[name] = append(cfg.Palettes[name], c)
	}
	return nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value for key %s", key)
	}
	return n, nil
}

func parseColor(key, value string) (pixel.Color, error) {
	c, err := palette.ParseColor(value)
	if err != nil {
		return c, fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	return c, nil
}
