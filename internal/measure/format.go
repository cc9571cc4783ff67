package measure

import (
	"math"
	"strconv"
)

// FormatDistance renders meters for display: whole meters below one kilometer,
// kilometers with one decimal from there on.
func FormatDistance(meters float64) string {
	rounded := math.Round(meters)
	if rounded < 1000 {
		return strconv.FormatFloat(rounded, 'f', 0, 64) + "m"
	}

	return strconv.FormatFloat(rounded/1000, 'f', 1, 64) + "km"
}
