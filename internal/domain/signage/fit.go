package signage

import "math"

const (
	mmPerInch     = 25.4
	pointsPerInch = 72.0
)

// FitFontSize returns the largest font size, on a 0.1 pt grid, at which text
// set in font fits inside a plate of the given width and height once MarginMM
// is removed from every side. fits is false when not even MinFontSizePt fits.
//
// The search assumes rendered size grows with point size, so it binary
// searches the grid between MinFontSizePt and the larger available dimension
// expressed in points (capped at MaxFontSizePt). Identical inputs always
// produce identical results.
func FitFontSize(m Measurer, text, font string, widthMM, heightMM float64) (sizePt float64, fits bool, err error) {
	availW := widthMM - 2*MarginMM
	availH := heightMM - 2*MarginMM
	if availW <= 0 || availH <= 0 {
		return 0, false, nil
	}

	fitsAt := func(step int) (bool, error) {
		w, h, err := m.Measure(text, font, float64(step)/fontSizeSteps)
		if err != nil {
			return false, err
		}
		return w <= availW && h <= availH, nil
	}

	lo := int(MinFontSizePt * fontSizeSteps)
	ok, err := fitsAt(lo)
	if err != nil || !ok {
		return 0, false, err
	}

	upper := math.Min(math.Max(availW, availH)/mmPerInch*pointsPerInch, MaxFontSizePt)
	hi := int(math.Ceil(upper * fontSizeSteps))
	if hi <= lo {
		return float64(lo) / fontSizeSteps, true, nil
	}
	ok, err = fitsAt(hi)
	if err != nil {
		return 0, false, err
	}
	if ok {
		return float64(hi) / fontSizeSteps, true, nil
	}

	// fitsAt(lo) holds and fitsAt(hi) does not.
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		ok, err := fitsAt(mid)
		if err != nil {
			return 0, false, err
		}
		if ok {
			lo = mid
		} else {
			hi = mid
		}
	}
	return float64(lo) / fontSizeSteps, true, nil
}
