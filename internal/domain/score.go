// Package domain defines the energy scoring logic for the energy manager.
package domain

import "math"

// Score is a mental/physical energy pair. Both axes stay within [0,100]
// after every mutation.
type Score struct {
	Mental   float64 `json:"mental"`
	Physical float64 `json:"physical"`
}

// Delta is a signed, rounded adjustment reported alongside new scores.
type Delta struct {
	Mental   int `json:"mental"`
	Physical int `json:"physical"`
}

// DefaultCurrent is the score assumed when a request omits the current pair.
var DefaultCurrent = Score{Mental: 50, Physical: 50}

// Clamp bounds both axes to [0,100].
func (s Score) Clamp() Score {
	return Score{
		Mental:   clamp(s.Mental, 0, 100),
		Physical: clamp(s.Physical, 0, 100),
	}
}

// Add returns the score shifted by the raw (unrounded) delta, unclamped.
func (s Score) Add(dMental, dPhysical float64) Score {
	return Score{Mental: s.Mental + dMental, Physical: s.Physical + dPhysical}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
