package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseMargin parses margin configuration in various formats.
// Supported formats:
//   - 10 or 10.5 (number) -> all sides in pixels
//   - "10px" (string) -> all sides in pixels
//   - "10 20" (string) -> vertical=10, horizontal=20
//   - "10 20 30" (string) -> top=10, horizontal=20, bottom=30
//   - "10 20 30 40" or [10, 20, 30, 40] -> top, right, bottom, left (CSS order)
//   - {top: 10, right: 5, bottom: 8, left: 5} (object) -> explicit per-edge
func ParseMargin(raw interface{}) (Margins, error) {
	switch v := raw.(type) {
	case nil:
		return Margins{}, nil

	case string:
		fields := strings.Fields(v)
		if len(fields) == 0 {
			return Margins{}, fmt.Errorf("empty margin")
		}
		values := make([]interface{}, len(fields))
		for i, f := range fields {
			values[i] = f
		}
		return parseMarginList(values)

	case []interface{}:
		return parseMarginList(v)

	case map[string]interface{}:
		return parseMarginObject(v)

	default:
		px, err := parsePixels(v)
		if err != nil {
			return Margins{}, err
		}
		return Margins{Top: px, Right: px, Bottom: px, Left: px}, nil
	}
}

// parseMarginList expands 1 to 4 values using CSS shorthand rules
func parseMarginList(list []interface{}) (Margins, error) {
	values := make([]int, len(list))
	for i, v := range list {
		px, err := parsePixels(v)
		if err != nil {
			return Margins{}, fmt.Errorf("margin index %d: %w", i, err)
		}
		values[i] = px
	}

	switch len(values) {
	case 1:
		return Margins{Top: values[0], Right: values[0], Bottom: values[0], Left: values[0]}, nil
	case 2: // [vertical, horizontal]
		return Margins{Top: values[0], Right: values[1], Bottom: values[0], Left: values[1]}, nil
	case 3: // [top, horizontal, bottom]
		return Margins{Top: values[0], Right: values[1], Bottom: values[2], Left: values[1]}, nil
	case 4: // [top, right, bottom, left] (CSS order)
		return Margins{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, nil
	default:
		return Margins{}, fmt.Errorf("margin must have 1 to 4 values, got %d", len(values))
	}
}

// parseMarginObject handles {top: N, right: N, bottom: N, left: N}
func parseMarginObject(obj map[string]interface{}) (Margins, error) {
	var m Margins

	for key, val := range obj {
		px, err := parsePixels(val)
		if err != nil {
			return Margins{}, fmt.Errorf("margin.%s: %w", key, err)
		}

		switch key {
		case "top":
			m.Top = px
		case "right":
			m.Right = px
		case "bottom":
			m.Bottom = px
		case "left":
			m.Left = px
		default:
			return Margins{}, fmt.Errorf("unknown margin key: %s", key)
		}
	}

	return m, nil
}

// ParseGap parses gap configuration into horizontal and vertical pixels.
// A single value applies to both axes; a pair is [horizontal, vertical].
func ParseGap(raw interface{}) (horizontal, vertical int, err error) {
	switch v := raw.(type) {
	case nil:
		return 0, 0, nil

	case []interface{}:
		if len(v) != 2 {
			return 0, 0, fmt.Errorf("gap array must have 2 values, got %d", len(v))
		}
		if horizontal, err = parsePixels(v[0]); err != nil {
			return 0, 0, fmt.Errorf("gap horizontal: %w", err)
		}
		if vertical, err = parsePixels(v[1]); err != nil {
			return 0, 0, fmt.Errorf("gap vertical: %w", err)
		}
		return horizontal, vertical, nil

	case string:
		fields := strings.Fields(v)
		if len(fields) == 2 {
			return ParseGap([]interface{}{fields[0], fields[1]})
		}
	}

	px, err := parsePixels(raw)
	if err != nil {
		return 0, 0, err
	}
	return px, px, nil
}

// parsePixels handles int, float64, or a "10" / "10px" string.
// Fractional values are rounded to whole pixels.
func parsePixels(v interface{}) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(math.Round(val)), nil
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(val), "px")
		px, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid pixel value: %s", val)
		}
		return int(math.Round(px)), nil
	default:
		return 0, fmt.Errorf("invalid pixel value type: %T", v)
	}
}

// ParseDuration parses a Go duration string. A bare number is seconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %s", s)
	}
	return d, nil
}
