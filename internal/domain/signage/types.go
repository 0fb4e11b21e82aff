// Package signage validates and normalizes signage design requests and
// computes the largest font size that fits the plate.
package signage

import (
	"encoding/json"
	"strconv"
)

// Input is an untrusted design request as decoded from JSON. Values may be
// strings, numbers (float64, int or json.Number), booleans, nil or nested
// objects.
type Input map[string]any

// Plate holds the physical plate dimensions in millimetres.
type Plate struct {
	WidthMM     float64 `json:"width_mm"`
	HeightMM    float64 `json:"height_mm"`
	ThicknessMM float64 `json:"thickness_mm"`
}

// DesignSpec is a normalized design: every number is a float, every optional
// field carries its effective value and FontSizePt is computed.
type DesignSpec struct {
	Text       string  `json:"text"`
	Font       string  `json:"font"`
	Plate      Plate   `json:"plate"`
	BevelMM    float64 `json:"bevel_mm"`
	Material   string  `json:"material"`
	Finish     string  `json:"finish"`
	Color      string  `json:"color"`
	Stand      string  `json:"stand"`
	TextStyle  string  `json:"text_style"`
	FontSizePt float64 `json:"font_size_pt"`
}

// Input converts the spec back into a request without the computed font
// size. Numbers are rendered as strings, the way form clients send them.
func (s DesignSpec) Input() Input {
	return Input{
		"text": s.Text,
		"font": s.Font,
		"plate": map[string]any{
			"width_mm":     formatFloat(s.Plate.WidthMM),
			"height_mm":    formatFloat(s.Plate.HeightMM),
			"thickness_mm": formatFloat(s.Plate.ThicknessMM),
		},
		"bevel_mm":   formatFloat(s.BevelMM),
		"material":   s.Material,
		"finish":     s.Finish,
		"color":      s.Color,
		"stand":      s.Stand,
		"text_style": s.TextStyle,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Result is either a valid normalized spec or a list of issues, never both.
type Result struct {
	Spec   *DesignSpec
	Issues []string
}

// Valid wraps a normalized spec.
func Valid(spec DesignSpec) Result {
	return Result{Spec: &spec}
}

// Invalid wraps the issues found in a request.
func Invalid(issues []string) Result {
	return Result{Issues: issues}
}

// OK reports whether the result holds a valid spec.
func (r Result) OK() bool {
	return r.Spec != nil && len(r.Issues) == 0
}

type validBody struct {
	OK         bool        `json:"ok"`
	DesignSpec *DesignSpec `json:"design_spec"`
	Needs      []string    `json:"needs"`
}

type invalidBody struct {
	OK     bool     `json:"ok"`
	Issues []string `json:"issues"`
}

// MarshalJSON renders the result as the validation response body:
// {"ok": true, "design_spec": ..., "needs": []} or {"ok": false, "issues": [...]}.
// needs is reserved for derived requirements and is always empty.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.OK() {
		return json.Marshal(validBody{OK: true, DesignSpec: r.Spec, Needs: []string{}})
	}
	issues := r.Issues
	if issues == nil {
		issues = []string{}
	}
	return json.Marshal(invalidBody{OK: false, Issues: issues})
}

// Measurer reports the rendered size in millimetres of text set in a font
// family at a point size.
type Measurer interface {
	Measure(text, font string, sizePt float64) (widthMM, heightMM float64, err error)
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(text, font string, sizePt float64) (float64, float64, error)

func (f MeasurerFunc) Measure(text, font string, sizePt float64) (float64, float64, error) {
	return f(text, font, sizePt)
}
