package classifier

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/muliwe/go-package-sorter/internal/measurement"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name                        string
		width, height, length, mass float64
		want                        Category
	}{
		// rejected
		{"bulky by volume and heavy", 200, 200, 200, 25, Rejected},
		{"bulky by dimension and heavy", 1000, 1, 1, 30, Rejected},
		{"exactly at all boundaries", 150, 150, 150, 20, Rejected},
		{"volume and mass exactly at threshold", 100, 100, 100, 20, Rejected},

		// special
		{"bulky by dimension not heavy", 200, 50, 50, 10, Special},
		{"heavy not bulky", 50, 50, 50, 25, Special},
		{"bulky by width only", 150, 10, 10, 5, Special},
		{"bulky by height only", 10, 150, 10, 5, Special},
		{"bulky by length only", 10, 10, 150, 5, Special},
		{"bulky by volume only", 100, 100, 100, 19, Special},
		{"exactly heavy not bulky", 50, 50, 50, 20, Special},
		{"exactly bulky by width", 150, 1, 1, 19, Special},
		{"exactly bulky by height", 1, 150, 1, 19, Special},
		{"exactly bulky by length", 1, 1, 150, 19, Special},
		{"asymmetric bulky by volume", 10, 10, 10000, 19, Special},
		{"very large single dimension", 1000, 1, 1, 5, Special},
		{"very heavy small package", 1, 1, 1, 100, Special},
		{"fractional mass at threshold", 50, 50, 50, 20.0, Special},
		{"fractional side at threshold", 150.0, 10, 10, 5, Special},

		// standard
		{"small and light", 50, 50, 50, 10, Standard},
		{"medium size medium weight", 80, 80, 80, 15, Standard},
		{"just below integer boundaries", 99, 99, 99, 19, Standard},
		{"minimal package", 1, 1, 1, 1, Standard},
		{"just under heavy", 50, 50, 50, 19.99, Standard},
		{"just under volume", 99.99, 99.99, 99.99, 19, Standard},
		{"fractional dimensions", 50.5, 50.5, 50.5, 10.5, Standard},
		{"asymmetric standard", 1, 1, 149, 19, Standard},
		{"side just under dimension", 149.99, 1, 1, 19.99, Standard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.width, tt.height, tt.length, tt.mass)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "Classify(%v, %v, %v, %v)", tt.width, tt.height, tt.length, tt.mass)
		})
	}
}

func TestClassify_InvalidMeasurement(t *testing.T) {
	tests := []struct {
		name                        string
		width, height, length, mass float64
		field                       string
	}{
		{"zero dimensions", 0, 0, 0, 1, measurement.FieldWidth},
		{"zero mass", 150, 150, 150, 0, measurement.FieldMass},
		{"negative width", -1, 10, 10, 10, measurement.FieldWidth},
		{"negative height", 10, -1, 10, 10, measurement.FieldHeight},
		{"negative length", 10, 10, -1, 10, measurement.FieldLength},
		{"negative mass", 10, 10, 10, -1, measurement.FieldMass},
		{"NaN length", 10, 10, math.NaN(), 10, measurement.FieldLength},
		{"negative infinity mass", 10, 10, 10, math.Inf(-1), measurement.FieldMass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.width, tt.height, tt.length, tt.mass)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidMeasurement)
			assert.Contains(t, err.Error(), "positive")

			var fe *measurement.FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestEvaluate_Breakdown(t *testing.T) {
	d, err := Evaluate(measurement.Measurements{Width: 200, Height: 200, Length: 200, Mass: 25})
	require.NoError(t, err)

	assert.Equal(t, Rejected, d.Category)
	assert.InDelta(t, 8_000_000, float64(d.Volume), 0)
	assert.True(t, d.Bulky)
	assert.True(t, d.Heavy)
	assert.Equal(t, "bulky: volume >= 1000000, width >= 150, height >= 150, length >= 150; heavy: mass >= 20", d.Reason)
}

func TestEvaluate_Reasons(t *testing.T) {
	tests := []struct {
		name string
		m    measurement.Measurements
		want string
	}{
		{"standard", measurement.Measurements{Width: 50, Height: 50, Length: 50, Mass: 10}, "neither bulky nor heavy"},
		{"heavy only", measurement.Measurements{Width: 50, Height: 50, Length: 50, Mass: 20}, "heavy: mass >= 20"},
		{"length only", measurement.Measurements{Width: 1, Height: 1, Length: 150, Mass: 19}, "bulky: length >= 150"},
		{"volume only", measurement.Measurements{Width: 100, Height: 100, Length: 100, Mass: 1}, "bulky: volume >= 1000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Evaluate(tt.m)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Reason)
		})
	}
}

func TestEvaluate_InvalidReturnsZeroDecision(t *testing.T) {
	d, err := Evaluate(measurement.Measurements{Width: 10, Height: 10, Length: 10})
	require.ErrorIs(t, err, ErrInvalidMeasurement)
	assert.Equal(t, Decision{}, d)
}

func TestClassify_PositiveInfinityIsBulkyAndHeavy(t *testing.T) {
	got, err := Classify(math.Inf(1), 1, 1, math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, Rejected, got)
}

func positiveReading() *rapid.Generator[float64] {
	return rapid.Float64Range(0.001, 1e4)
}

func TestClassifyProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := positiveReading().Draw(rt, "width")
		h := positiveReading().Draw(rt, "height")
		l := positiveReading().Draw(rt, "length")
		m := positiveReading().Draw(rt, "mass")

		got, err := Classify(w, h, l, m)
		if err != nil {
			rt.Fatalf("Classify(%v, %v, %v, %v) error = %v", w, h, l, m, err)
		}

		again, _ := Classify(w, h, l, m)
		if got != again {
			rt.Fatalf("Classify is not deterministic: %v then %v", got, again)
		}

		bulky := w*h*l >= VolumeThreshold || w >= DimensionThreshold || h >= DimensionThreshold || l >= DimensionThreshold
		heavy := m >= MassThreshold

		var want Category
		switch {
		case bulky && heavy:
			want = Rejected
		case bulky != heavy:
			want = Special
		default:
			want = Standard
		}
		if got != want {
			rt.Fatalf("Classify(%v, %v, %v, %v) = %v, want %v (bulky=%v heavy=%v)", w, h, l, m, got, want, bulky, heavy)
		}

		d, _ := Evaluate(measurement.Measurements{Width: w, Height: h, Length: l, Mass: m})
		if d.Category != got || d.Bulky != bulky || d.Heavy != heavy {
			rt.Fatalf("Evaluate disagrees with Classify: %+v vs %v", d, got)
		}
	})
}

func TestClassifyRejectsAnyNonPositiveProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		args := []float64{
			positiveReading().Draw(rt, "width"),
			positiveReading().Draw(rt, "height"),
			positiveReading().Draw(rt, "length"),
			positiveReading().Draw(rt, "mass"),
		}
		bad := rapid.IntRange(0, 3).Draw(rt, "bad_index")
		args[bad] = rapid.Float64Range(-1e6, 0).Draw(rt, "bad_value")

		_, err := Classify(args[0], args[1], args[2], args[3])
		if !errors.Is(err, ErrInvalidMeasurement) {
			rt.Fatalf("Classify(%v) error = %v, want ErrInvalidMeasurement", args, err)
		}
	})
}

func BenchmarkClassify(b *testing.B) {
	for b.Loop() {
		_, _ = Classify(99.99, 99.99, 99.99, 19)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	m := measurement.Measurements{Width: 200, Height: 200, Length: 200, Mass: 25}
	for b.Loop() {
		_, _ = Evaluate(m)
	}
}
