package roadm

import (
	"fmt"
	"strconv"
)

// SlotHalfWidth is half the frequency slot reserved by a media channel,
// in THz. A channel centered at f occupies [f-0.05, f+0.05].
const SlotHalfWidth = 0.05

// SlotBounds returns the frequency slot interval for a center frequency
// given as a decimal string. ok is false when the string does not parse.
func SlotBounds(freq string) (min, max float64, ok bool) {
	f, err := strconv.ParseFloat(freq, 64)
	if err != nil {
		return 0, 0, false
	}
	return f - SlotHalfWidth, f + SlotHalfWidth, true
}

// FormatFreq renders a frequency bound as the fixed-point string stored
// on the device (two decimal places).
func FormatFreq(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// SlotsOverlap reports whether two slot intervals intersect. The
// comparison is half-open: intervals that merely touch do not overlap.
func SlotsOverlap(aMin, aMax, bMin, bMax float64) bool {
	return !(aMax <= bMin || aMin >= bMax)
}
