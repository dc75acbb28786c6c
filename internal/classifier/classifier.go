// Package classifier decides how a package is routed based on its size and mass.
package classifier

import (
	"strconv"
	"strings"

	"github.com/muliwe/go-package-sorter/internal/measurement"
)

// Classification thresholds. Comparisons against all of them are inclusive.
const (
	VolumeThreshold    = 1_000_000 // cm³
	DimensionThreshold = 150       // cm, applied to each side
	MassThreshold      = 20        // kg
)

// ErrInvalidMeasurement is matched by every error returned for a reading that
// is not strictly positive.
var ErrInvalidMeasurement = measurement.ErrNotPositive

// Decision is the outcome of a classification together with the facts it was based on
type Decision struct {
	Category Category `json:"category"`
	Volume   Volume   `json:"volume_cm3"`
	Bulky    bool     `json:"bulky"`
	Heavy    bool     `json:"heavy"`
	Reason   string   `json:"reason"`
}

// Classify returns the category for a package with the given dimensions (cm)
// and mass (kg). It fails with an error matching ErrInvalidMeasurement when any
// argument is not strictly positive.
func Classify(width, height, length, mass float64) (Category, error) {
	d, err := Evaluate(measurement.Measurements{
		Width:  width,
		Height: height,
		Length: length,
		Mass:   mass,
	})
	if err != nil {
		return 0, err
	}
	return d.Category, nil
}

// Evaluate classifies m and explains the result
func Evaluate(m measurement.Measurements) (Decision, error) {
	if err := m.Validate(); err != nil {
		return Decision{}, err
	}

	volume := m.Volume()
	bulkyBy := bulkyReasons(m, volume)
	heavy := m.Mass >= MassThreshold
	bulky := len(bulkyBy) > 0

	return Decision{
		Category: categorize(bulky, heavy),
		Volume:   Volume(volume),
		Bulky:    bulky,
		Heavy:    heavy,
		Reason:   reason(bulkyBy, heavy),
	}, nil
}

func categorize(bulky, heavy bool) Category {
	switch {
	case bulky && heavy:
		return Rejected
	case bulky || heavy:
		return Special
	default:
		return Standard
	}
}

// bulkyReasons lists every bulkiness condition m satisfies
func bulkyReasons(m measurement.Measurements, volume float64) []string {
	reasons := []string{}

	if volume >= VolumeThreshold {
		reasons = append(reasons, "volume >= "+strconv.Itoa(VolumeThreshold))
	}
	sides := []struct {
		name  string
		value float64
	}{
		{measurement.FieldWidth, m.Width},
		{measurement.FieldHeight, m.Height},
		{measurement.FieldLength, m.Length},
	}
	for _, s := range sides {
		if s.value >= DimensionThreshold {
			reasons = append(reasons, s.name+" >= "+strconv.Itoa(DimensionThreshold))
		}
	}

	return reasons
}

// reason generates explanation for the decision
func reason(bulkyBy []string, heavy bool) string {
	parts := []string{}

	if len(bulkyBy) > 0 {
		parts = append(parts, "bulky: "+strings.Join(bulkyBy, ", "))
	}
	if heavy {
		parts = append(parts, "heavy: mass >= "+strconv.Itoa(MassThreshold))
	}

	if len(parts) == 0 {
		return "neither bulky nor heavy"
	}
	return strings.Join(parts, "; ")
}
