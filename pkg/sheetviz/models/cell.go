// Package models defines data structures for spreadsheet visualization.
package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CellKind identifies which variant a Cell holds.
type CellKind int

const (
	// KindEmpty is a missing or null cell.
	KindEmpty CellKind = iota
	// KindNumber is a numeric cell.
	KindNumber
	// KindText is a string cell.
	KindText
	// KindBool is a boolean cell.
	KindBool
)

// String returns the kind name.
func (k CellKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Cell is a single spreadsheet value. Only the field matching Kind is meaningful.
type Cell struct {
	// Kind selects the variant.
	Kind CellKind
	// Number holds the value for KindNumber.
	Number float64
	// Text holds the value for KindText.
	Text string
	// Bool holds the value for KindBool.
	Bool bool
}

// Num returns a numeric cell.
func Num(v float64) Cell { return Cell{Kind: KindNumber, Number: v} }

// Str returns a text cell.
func Str(s string) Cell { return Cell{Kind: KindText, Text: s} }

// Bool returns a boolean cell.
func Bool(b bool) Cell { return Cell{Kind: KindBool, Bool: b} }

// Null returns an empty cell.
func Null() Cell { return Cell{} }

// IsEmpty reports whether the cell is null.
func (c Cell) IsEmpty() bool { return c.Kind == KindEmpty }

// IsBlank reports whether the cell is null or an empty string.
func (c Cell) IsBlank() bool {
	return c.Kind == KindEmpty || (c.Kind == KindText && c.Text == "")
}

// Float coerces the cell to a finite number. The second result is false
// when the value is not numerically coercible: empty cells, text that does
// not parse after trimming whitespace (the empty string never parses), NaN
// and infinities.
func (c Cell) Float() (float64, bool) {
	switch c.Kind {
	case KindNumber:
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return 0, false
		}
		return c.Number, true
	case KindBool:
		if c.Bool {
			return 1, true
		}
		return 0, true
	case KindText:
		return parseNumber(c.Text)
	default:
		return 0, false
	}
}

// FloatOr coerces the cell to a number, returning def on failure.
func (c Cell) FloatOr(def float64) float64 {
	if v, ok := c.Float(); ok {
		return v
	}
	return def
}

// String stringifies the cell. Empty cells become "".
func (c Cell) String() string {
	switch c.Kind {
	case KindNumber:
		return formatNumber(c.Number)
	case KindText:
		return c.Text
	case KindBool:
		return strconv.FormatBool(c.Bool)
	default:
		return ""
	}
}

// MarshalJSON encodes the cell as a JSON number, string, boolean or null.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindNumber:
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(c.Number)
	case KindText:
		return json.Marshal(c.Text)
	case KindBool:
		return json.Marshal(c.Bool)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON scalar into the cell. Nested arrays and
// objects are kept as their raw JSON text.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*c = Null()
	case float64:
		*c = Num(val)
	case string:
		*c = Str(val)
	case bool:
		*c = Bool(val)
	default:
		*c = Str(string(data))
	}
	return nil
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Underflow still carries a value (0); overflow yields ±Inf below.
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return 0, false
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsNaN(v):
		return "NaN"
	}
	if abs := math.Abs(v); abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
