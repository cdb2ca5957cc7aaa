package service

// Rules holds the tunable game constants. They live here rather than inside
// the engine methods so deployments can adjust them without touching the
// transaction logic.
type Rules struct {
	// XPPerHarvest is credited for every successful harvest.
	XPPerHarvest uint
	// LevelThresholds[i] is the cumulative experience needed for level i+1.
	// The slice must be non-decreasing; the highest reached entry wins.
	LevelThresholds []uint
}

func DefaultRules() Rules {
	return Rules{
		XPPerHarvest:    10,
		LevelThresholds: []uint{0, 100, 250, 450, 700, 1000, 1350, 1750, 2200, 2700},
	}
}

// LevelFor maps cumulative experience to a level. The mapping is monotonic:
// more experience never yields a lower level.
func (r Rules) LevelFor(xp uint) uint {
	level := uint(1)
	for i, threshold := range r.LevelThresholds {
		if xp >= threshold {
			level = uint(i + 1)
		}
	}
	return level
}
