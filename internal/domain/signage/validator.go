package signage

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"signage/internal/domain"
)

const (
	issueTextDoesNotFit = "Text does not fit within plate dimensions"
	issuePlateShape     = "plate must be an object with width_mm, height_mm and thickness_mm"
)

var fontNamePattern = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// Validator checks raw design requests and normalizes the valid ones.
// It holds no per-request state and is safe for concurrent use when its
// Measurer is.
type Validator struct {
	measurer Measurer
}

// NewValidator returns a Validator that sizes text with m.
func NewValidator(m Measurer) *Validator {
	return &Validator{measurer: m}
}

type issueList []string

func (l *issueList) add(format string, args ...any) {
	*l = append(*l, fmt.Sprintf(format, args...))
}

// Validate checks raw and returns either the normalized spec or every issue
// found. Checks run in a fixed order and accumulate; a field that fails to
// coerce is left out of the checks that need its value. The error is
// reserved for a broken measurer and wraps domain.ErrMetricsUnavailable.
func (v *Validator) Validate(raw Input) (Result, error) {
	var issues issueList
	spec := DesignSpec{}

	// Presence.
	textRaw, hasText := lookup(raw, "text")
	if !hasText {
		issues.add("text is required")
	}
	fontRaw, hasFont := lookup(raw, "font")
	if !hasFont {
		issues.add("font is required")
	}
	var plate map[string]any
	plateRaw, hasPlate := lookup(raw, "plate")
	if !hasPlate {
		issues.add("plate is required")
	} else if obj, ok := asObject(plateRaw); ok {
		plate = obj
	} else {
		issues.add(issuePlateShape)
	}
	dimRaw := make([]any, len(plateDimensions))
	dimPresent := make([]bool, len(plateDimensions))
	if plate != nil {
		for i, name := range plateDimensions {
			dimRaw[i], dimPresent[i] = lookup(plate, name)
			if !dimPresent[i] {
				issues.add("plate.%s is required", name)
			}
		}
	}

	// Numeric coercion.
	dims := make([]number, len(plateDimensions))
	for i, name := range plateDimensions {
		if !dimPresent[i] {
			continue
		}
		dims[i] = coerceNumber(dimRaw[i])
		if !dims[i].ok() {
			issues.add("plate.%s must be a number", name)
		}
	}
	bevel := number{state: numberOK, value: DefaultBevelMM}
	if b, ok := lookup(raw, "bevel_mm"); ok && !blank(b) {
		bevel = coerceNumber(b)
		if !bevel.ok() {
			issues.add("bevel_mm must be a number")
		}
	}
	width, height, thickness := dims[0], dims[1], dims[2]

	// Strings.
	textOK := false
	if hasText {
		if s, ok := textRaw.(string); !ok {
			issues.add("text must be a string")
		} else {
			spec.Text = norm.NFC.String(strings.TrimSpace(s))
			switch n := utf8.RuneCountInString(spec.Text); {
			case n == 0:
				issues.add("text must not be empty")
			case n > MaxTextLength:
				issues.add("Text is too long (max %d characters)", MaxTextLength)
			default:
				textOK = true
			}
		}
	}
	fontOK := false
	if hasFont {
		if s, ok := fontRaw.(string); !ok {
			issues.add("font must be a string")
		} else {
			spec.Font = strings.TrimSpace(s)
			switch {
			case spec.Font == "":
				issues.add("font must not be empty")
			case !fontNamePattern.MatchString(spec.Font):
				issues.add("font contains invalid characters")
			default:
				fontOK = true
			}
		}
	}

	// Enumerations, with defaults for absent values.
	enums := make(map[string]string, len(enumFields))
	for _, f := range enumFields {
		enums[f.name] = f.fallback
		value, ok := lookup(raw, f.name)
		if !ok || blank(value) {
			continue
		}
		if s, isString := value.(string); isString {
			folded := cases.Lower(language.Und).String(strings.TrimSpace(s))
			if f.contains(folded) {
				enums[f.name] = folded
				continue
			}
		}
		issues.add("%s must be one of: %s", f.name, strings.Join(f.allowed, ", "))
	}
	spec.Material = enums["material"]
	spec.Finish = enums["finish"]
	spec.Color = enums["color"]
	spec.Stand = enums["stand"]
	spec.TextStyle = enums["text_style"]

	// Geometry.
	for i, name := range plateDimensions {
		if dims[i].ok() && !dims[i].positive() {
			issues.add("plate.%s must be greater than 0", name)
		}
	}
	if thickness.positive() && thickness.value < MinThicknessMM {
		issues.add("Thickness must be ≥ %.1f mm", MinThicknessMM)
	}
	if bevel.ok() {
		switch {
		case bevel.value < 0:
			issues.add("Bevel cannot be negative")
		case thickness.positive() && bevel.value > thickness.value/2:
			issues.add("Bevel must be ≤ half the thickness")
		}
	}

	// Font size.
	if textOK && fontOK && width.positive() && height.positive() {
		size, fits, err := FitFontSize(v.measurer, spec.Text, spec.Font, width.value, height.value)
		if err != nil {
			if errors.Is(err, domain.ErrMetricsUnavailable) {
				return Result{}, err
			}
			return Result{}, fmt.Errorf("%w: %v", domain.ErrMetricsUnavailable, err)
		}
		if fits {
			spec.FontSizePt = size
		} else {
			issues.add(issueTextDoesNotFit)
		}
	}

	if len(issues) > 0 {
		return Invalid(issues), nil
	}
	spec.Plate = Plate{WidthMM: width.value, HeightMM: height.value, ThicknessMM: thickness.value}
	spec.BevelMM = bevel.value
	return Valid(spec), nil
}
