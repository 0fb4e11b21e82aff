package signage

const (
	// MinThicknessMM is the thinnest plate that can be produced.
	MinThicknessMM = 2.0
	// MarginMM is kept clear of text on every side of the plate.
	MarginMM = 5.0
	// MaxTextLength is counted in characters after trimming.
	MaxTextLength = 100

	// MinFontSizePt is the smallest size the fitting search considers.
	MinFontSizePt = 1.0
	// MaxFontSizePt caps the fitting search for very large plates.
	MaxFontSizePt = 5000.0
	// fontSizeSteps is the resolution of the fitting search, per point.
	fontSizeSteps = 10

	DefaultMaterial  = "brushed_metal"
	DefaultFinish    = "satin"
	DefaultColor     = "silver"
	DefaultStand     = "none"
	DefaultTextStyle = "raised"
	DefaultBevelMM   = 0.5
)

// enumField describes one closed-set string field of a design spec.
type enumField struct {
	name     string
	allowed  []string
	fallback string
}

// enumFields is listed in validation order.
var enumFields = []enumField{
	{
		name:     "material",
		allowed:  []string{"brushed_metal", "acrylic", "wood", "plastic", "glass", "aluminum"},
		fallback: DefaultMaterial,
	},
	{
		name:     "finish",
		allowed:  []string{"satin", "matte", "gloss", "brushed", "polished", "textured"},
		fallback: DefaultFinish,
	},
	{
		name:     "color",
		allowed:  []string{"silver", "gold", "black", "white", "bronze", "copper", "clear"},
		fallback: DefaultColor,
	},
	{
		name:     "stand",
		allowed:  []string{"none", "desktop", "wall_mount", "floor_stand", "magnetic"},
		fallback: DefaultStand,
	},
	{
		name:     "text_style",
		allowed:  []string{"raised", "engraved", "printed", "etched", "embossed"},
		fallback: DefaultTextStyle,
	},
}

func (f enumField) contains(v string) bool {
	for _, a := range f.allowed {
		if a == v {
			return true
		}
	}
	return false
}

// AllowedValues returns the closed set for an enumerated field, or nil if
// field is not enumerated.
func AllowedValues(field string) []string {
	for _, f := range enumFields {
		if f.name == field {
			out := make([]string, len(f.allowed))
			copy(out, f.allowed)
			return out
		}
	}
	return nil
}

// plateDimensions is listed in validation order.
var plateDimensions = []string{"width_mm", "height_mm", "thickness_mm"}
