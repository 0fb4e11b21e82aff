package signage

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

type numberState int

const (
	numberAbsent numberState = iota
	numberInvalid
	numberOK
)

// number is a numeric field after coercion. value is meaningful only when
// state is numberOK.
type number struct {
	state numberState
	value float64
}

func (n number) ok() bool { return n.state == numberOK }

// positive reports whether the field coerced to a value greater than zero.
func (n number) positive() bool { return n.ok() && n.value > 0 }

// lookup returns a field value, treating JSON null as absent.
func lookup(m map[string]any, key string) (any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// asObject accepts the nested object shapes a decoder or caller may produce.
func asObject(v any) (map[string]any, bool) {
	switch o := v.(type) {
	case map[string]any:
		return o, true
	case Input:
		return o, true
	}
	return nil, false
}

// blank reports whether v is an empty or whitespace-only string.
func blank(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// coerceNumber accepts numbers and decimal strings. Booleans, objects and
// non-finite values are rejected.
func coerceNumber(v any) number {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		return parseDecimal(n.String())
	case string:
		return parseDecimal(n)
	default:
		return number{state: numberInvalid}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return number{state: numberInvalid}
	}
	return number{state: numberOK, value: f}
}

func parseDecimal(s string) number {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return number{state: numberInvalid}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return number{state: numberInvalid}
	}
	return number{state: numberOK, value: f}
}
