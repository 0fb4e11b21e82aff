// Package fontmetrics measures the rendered bounding box of a text string in a
// named font family.
//
// Sizes are typographic points and the output is millimetres. Shaping runs at
// a fixed 72 DPI, where one point is one output unit, so
//
//	mm = pt / 72 * 25.4
//
// Families that cannot be located fall back to the packaged Go Regular face;
// measuring never fails because of the requested family.
package fontmetrics

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/rs/zerolog"
	"golang.org/x/image/math/fixed"

	"signage/internal/domain"
)

const (
	// DPI is the rendering resolution assumed when converting points.
	DPI = 72.0
	// MMPerInch converts inches to millimetres.
	MMPerInch = 25.4

	// maxCachedFamilies bounds the face cache; lookups past the bound are
	// resolved on every call instead of being stored.
	maxCachedFamilies = 256
	// maxCachedBoxes bounds the reference box cache the same way.
	maxCachedBoxes = 4096

	// referenceSizePt is the size text is shaped at. The shaper rounds the
	// size up to a whole point, so shaping happens at this whole size and the
	// box is scaled linearly to the requested one.
	referenceSizePt = 1000
)

// PointsToMM converts a length in points to millimetres.
func PointsToMM(pt float64) float64 {
	return pt / DPI * MMPerInch
}

// MMToPoints converts a length in millimetres to points.
func MMToPoints(mm float64) float64 {
	return mm / MMPerInch * DPI
}

// Provider measures text using HarfBuzz shaping from go-text/typesetting.
// It is safe for concurrent use.
type Provider struct {
	logger   zerolog.Logger
	locators []Locator
	fallback *font.Font

	// shapers pools HarfbuzzShaper values, which keep internal buffers and
	// must not be shared between goroutines.
	shapers sync.Pool

	mu    sync.RWMutex
	faces map[string]*font.Font
	boxes map[boxKey]box
}

type boxKey struct {
	family string
	text   string
}

// box is a text extent in points at referenceSizePt.
type box struct {
	width, height float64
}

// NewProvider builds a Provider that resolves families from the packaged
// faces, then fontDirs, then the system font folders. It fails only when the
// packaged fallback face cannot be parsed.
func NewProvider(logger zerolog.Logger, fontDirs []string) (*Provider, error) {
	locators := []Locator{PackagedLocator()}
	if len(fontDirs) > 0 {
		locators = append(locators, DirLocator(fontDirs))
	}
	locators = append(locators, SystemLocator())
	return NewProviderWithLocators(logger, locators...)
}

// NewProviderWithLocators builds a Provider that consults the given locators
// in order.
func NewProviderWithLocators(logger zerolog.Logger, locators ...Locator) (*Provider, error) {
	fallback, err := parseFont(packagedFaces[0].data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse fallback face: %v", domain.ErrMetricsUnavailable, err)
	}
	p := &Provider{
		logger:   logger.With().Str("component", "fontmetrics").Logger(),
		locators: locators,
		fallback: fallback,
		faces:    make(map[string]*font.Font),
		boxes:    make(map[boxKey]box),
	}
	p.shapers.New = func() any { return &shaping.HarfbuzzShaper{} }
	return p, nil
}

// Families lists the families shipped with the binary.
func (p *Provider) Families() []string {
	out := make([]string, 0, len(packagedFaces))
	for _, f := range packagedFaces {
		out = append(out, f.family)
	}
	return out
}

// Measure returns the width and height in millimetres of text rendered in
// family at sizePt. Empty or whitespace-only text and non-positive sizes
// measure as zero.
func (p *Provider) Measure(text, family string, sizePt float64) (float64, float64, error) {
	if strings.TrimSpace(text) == "" || sizePt <= 0 {
		return 0, 0, nil
	}
	ref := p.referenceBox(text, family)
	scale := sizePt / referenceSizePt
	return PointsToMM(ref.width * scale), PointsToMM(ref.height * scale), nil
}

// referenceBox returns the extent of text at referenceSizePt, shaping it on
// first use.
func (p *Provider) referenceBox(text, family string) box {
	key := boxKey{family: NormalizeFamily(family), text: text}

	p.mu.RLock()
	b, ok := p.boxes[key]
	p.mu.RUnlock()
	if ok {
		return b
	}

	b = p.shape(text, p.font(family))

	p.mu.Lock()
	if len(p.boxes) < maxCachedBoxes {
		p.boxes[key] = b
	}
	p.mu.Unlock()
	return b
}

func (p *Provider) shape(text string, f *font.Font) box {
	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f),
		Size:      fixed.I(referenceSizePt),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	shaper := p.shapers.Get().(*shaping.HarfbuzzShaper)
	out := shaper.Shape(input)
	p.shapers.Put(shaper)

	width := math.Abs(fixedToFloat(out.Advance))
	ascent := fixedToFloat(out.LineBounds.Ascent)
	descent := math.Abs(fixedToFloat(out.LineBounds.Descent))
	return box{width: width, height: ascent + descent}
}

// font returns the cached face for family, resolving it on first use.
// Concurrent first uses may both resolve; the first stored entry wins.
func (p *Provider) font(family string) *font.Font {
	key := NormalizeFamily(family)

	p.mu.RLock()
	f, ok := p.faces[key]
	p.mu.RUnlock()
	if ok {
		return f
	}

	f = p.resolve(family)

	p.mu.Lock()
	defer p.mu.Unlock()
	if cached, ok := p.faces[key]; ok {
		return cached
	}
	if len(p.faces) < maxCachedFamilies {
		p.faces[key] = f
	}
	return f
}

func (p *Provider) resolve(family string) *font.Font {
	for _, locate := range p.locators {
		data, err := locate(family)
		if err != nil {
			continue
		}
		f, err := parseFont(data)
		if err != nil {
			p.logger.Warn().Err(err).Str("family", family).Msg("unreadable font file, trying next locator")
			continue
		}
		p.logger.Debug().Str("family", family).Msg("font family resolved")
		return f
	}
	p.logger.Debug().Str("family", family).Str("fallback", FallbackFamily).Msg("font family not found, using fallback")
	return p.fallback
}

func parseFont(data []byte) (*font.Font, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return face.Font, nil
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
