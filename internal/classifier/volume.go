package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Volume is a package volume in cm³. Very large dimensions overflow the
// product to +Inf, which is encoded in JSON as the string "+Inf".
type Volume float64

// MarshalJSON implements json.Marshaler
func (v Volume) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return json.Marshal(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return json.Marshal(f)
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Volume) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = Volume(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("volume: %w", err)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("volume %q: %w", s, err)
	}
	*v = Volume(f)
	return nil
}
