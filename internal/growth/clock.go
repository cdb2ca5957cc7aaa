// Package growth computes how far along a planted crop is. It owns no state:
// progress is derived from the stored planting time whenever someone asks,
// there is no timer advancing it.
package growth

import (
	"math"
	"time"
)

// Clock supplies the current time. Production code uses time.Now; tests pass
// a fixed clock.
type Clock func() time.Time

// Progress returns the completion percentage in [0,100] for a crop planted at
// plantedAt with the given growth duration in hours, rounded to two decimal
// places. A zero plantedAt or a non-positive growth duration yields 0.
func Progress(plantedAt time.Time, growthHours float64, now time.Time) float64 {
	if plantedAt.IsZero() || growthHours <= 0 {
		return 0
	}
	elapsed := now.Sub(plantedAt).Hours()
	if elapsed <= 0 {
		return 0
	}
	p := math.Min(100, elapsed/growthHours*100)
	return math.Round(p*100) / 100
}

// IsReady reports whether a progress percentage counts as fully grown.
func IsReady(progress float64) bool {
	return progress >= 100
}
