package classifier

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muliwe/go-package-sorter/internal/measurement"
)

func TestVolumeJSON(t *testing.T) {
	tests := []struct {
		name string
		v    Volume
		want string
	}{
		{"finite", 1_000_000, `1000000`},
		{"fractional", 999700.029999, `999700.029999`},
		{"overflow", Volume(math.Inf(1)), `"+Inf"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))

			var back Volume
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.v, back)
		})
	}
}

func TestVolumeJSON_InvalidInput(t *testing.T) {
	var v Volume
	assert.Error(t, json.Unmarshal([]byte(`"huge"`), &v))
	assert.Error(t, json.Unmarshal([]byte(`true`), &v))
}

func TestDecisionJSON_OverflowingVolume(t *testing.T) {
	d, err := Evaluate(measurement.Measurements{Width: 1e200, Height: 1e200, Length: 1e200, Mass: 1})
	require.NoError(t, err)
	require.True(t, math.IsInf(float64(d.Volume), 1))
	assert.Equal(t, Special, d.Category)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"volume_cm3":"+Inf"`)
}
