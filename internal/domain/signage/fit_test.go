package signage

import (
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"signage/internal/fontmetrics"
)

func TestFitFontSize(t *testing.T) {
	tests := []struct {
		name     string
		m        Measurer
		text     string
		width    float64
		height   float64
		wantSize float64
		wantFits bool
	}{
		{
			name:     "height bound",
			m:        &stubMeasurer{},
			text:     "A",
			width:    100,
			height:   20,
			wantSize: 23.6,
			wantFits: true,
		},
		{
			name:     "width bound",
			m:        &stubMeasurer{},
			text:     "CEO Office",
			width:    200,
			height:   80,
			wantSize: 89.7,
			wantFits: true,
		},
		{
			name: "upper bound fits",
			m: MeasurerFunc(func(string, string, float64) (float64, float64, error) {
				return 1, 1, nil
			}),
			text:     "x",
			width:    100,
			height:   100,
			wantSize: 255.2,
			wantFits: true,
		},
		{
			name:   "no area left after margins",
			m:      &stubMeasurer{},
			text:   "A",
			width:  10,
			height: 50,
		},
		{
			name:   "minimum size too large",
			m:      &stubMeasurer{},
			text:   "A very long string of fifty or more characters here",
			width:  12,
			height: 12,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			size, fits, err := FitFontSize(tc.m, tc.text, "Go", tc.width, tc.height)
			if err != nil {
				t.Fatalf("FitFontSize returned error: %v", err)
			}
			if fits != tc.wantFits || size != tc.wantSize {
				t.Fatalf("FitFontSize = (%v, %v), want (%v, %v)", size, fits, tc.wantSize, tc.wantFits)
			}
		})
	}
}

func TestFitFontSizeIsLargestFittingStep(t *testing.T) {
	m := &stubMeasurer{}
	size, fits, err := FitFontSize(m, "Meeting Room 4", "Go", 150, 60)
	if err != nil || !fits {
		t.Fatalf("FitFontSize = (%v, %v, %v)", size, fits, err)
	}
	within := func(s float64) bool {
		w, h, _ := m.Measure("Meeting Room 4", "Go", s)
		return w <= 150-2*MarginMM && h <= 60-2*MarginMM
	}
	if !within(size) {
		t.Fatalf("size %v does not fit", size)
	}
	if within(size + 0.1) {
		t.Fatalf("size %v is not the largest fitting step", size)
	}
}

func TestFitFontSizeWithFontMetrics(t *testing.T) {
	p, err := fontmetrics.NewProviderWithLocators(zerolog.Nop(), fontmetrics.PackagedLocator())
	if err != nil {
		t.Fatalf("NewProviderWithLocators returned error: %v", err)
	}
	const text = "CEO Office"
	plates := []struct{ width, height float64 }{
		{200, 80}, {60, 30}, {90, 40}, {120, 50}, {300, 120}, {600, 240},
	}
	wholePoints := 0
	for _, plate := range plates {
		size, fits, err := FitFontSize(p, text, "Montserrat", plate.width, plate.height)
		if err != nil || !fits {
			t.Fatalf("FitFontSize(%vx%v) = (%v, %v, %v)", plate.width, plate.height, size, fits, err)
		}
		within := func(s float64) bool {
			w, h, err := p.Measure(text, "Montserrat", s)
			if err != nil {
				t.Fatalf("Measure returned error: %v", err)
			}
			return w <= plate.width-2*MarginMM && h <= plate.height-2*MarginMM
		}
		if !within(size) {
			t.Fatalf("%vx%v: size %v does not fit", plate.width, plate.height, size)
		}
		if within(math.Round((size+0.1)*10) / 10) {
			t.Fatalf("%vx%v: size %v is not the largest fitting step", plate.width, plate.height, size)
		}
		if size == math.Trunc(size) {
			wholePoints++
		}
	}
	if wholePoints == len(plates) {
		t.Fatalf("every fitted size is a whole point; sizes are not resolved to 0.1 pt")
	}
}

func TestFitFontSizePropagatesMeasurerError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	m := MeasurerFunc(func(string, string, float64) (float64, float64, error) {
		calls++
		if calls > 2 {
			return 0, 0, boom
		}
		return 1, 1, nil
	})
	// Width grows with size, so the upper bound does not fit and the search
	// keeps probing until the third call fails.
	m2 := MeasurerFunc(func(text, font string, size float64) (float64, float64, error) {
		w, h, err := m(text, font, size)
		return w * size, h, err
	})
	if _, _, err := FitFontSize(m2, "x", "Go", 100, 100); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
