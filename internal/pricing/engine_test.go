package pricing

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest() Request {
	return Request{Volume: 10, Distance: 20}
}

func TestCompute_Totals(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
		want   string
	}{
		{name: "base", modify: func(r *Request) {}, want: "400.00"},
		{name: "fragile", modify: func(r *Request) { r.HasFragileItems = true }, want: "480.00"},
		{name: "weekend", modify: func(r *Request) { r.IsWeekend = true }, want: "520.00"},
		{name: "additional stops", modify: func(r *Request) { r.AdditionalStops = 2 }, want: "410.00"},
		{name: "floor", modify: func(r *Request) { r.FloorNumber = 3 }, want: "430.00"},
		{
			// (400 * 1.2 + 10 + 30) * 1.3
			name: "everything",
			modify: func(r *Request) {
				r.HasFragileItems = true
				r.IsWeekend = true
				r.AdditionalStops = 2
				r.FloorNumber = 3
			},
			want: "676.00",
		},
		{
			// 150 + 1.05*20 + 1.15*2.5 = 173.875 -> 173.88
			name:   "fractional inputs round half up",
			modify: func(r *Request) { r.Volume = 1.05; r.Distance = 1.15 },
			want:   "173.88",
		},
		{name: "lower bounds inclusive", modify: func(r *Request) { r.Volume = 1; r.Distance = 1 }, want: "172.50"},
		{name: "upper bounds inclusive", modify: func(r *Request) { r.Volume = 50; r.Distance = 100 }, want: "1400.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := baseRequest()
			tt.modify(&r)

			res := Compute(r)
			require.True(t, res.Success, res.Error)
			assert.Equal(t, tt.want, res.Total)
			assert.Empty(t, res.Error)
		})
	}
}

func TestCompute_Breakdown(t *testing.T) {
	r := Request{Volume: 10, Distance: 20, HasFragileItems: true, AdditionalStops: 2, FloorNumber: 3}

	res := Compute(r)
	require.True(t, res.Success)
	require.NotNil(t, res.Breakdown)

	assert.Equal(t, Breakdown{
		BaseCost:        "150.00",
		VolumeCost:      "200.00",
		DistanceCost:    "50.00",
		StopsCost:       "10.00",
		FloorCost:       "30.00",
		HasFragileItems: true,
		IsWeekend:       false,
		Multipliers: Multipliers{
			FragileItems: "1.20",
			Weekend:      "1.00",
		},
	}, *res.Breakdown)
	assert.Equal(t, "520.00", res.Total)
}

func TestCompute_ZeroFloorHasNoCost(t *testing.T) {
	res := Compute(baseRequest())
	require.True(t, res.Success)
	assert.Equal(t, "0.00", res.Breakdown.FloorCost)
	assert.Equal(t, "0.00", res.Breakdown.StopsCost)
}

func TestCompute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		request Request
		want    string
	}{
		{name: "volume below minimum", request: Request{Volume: 0.5, Distance: 20}, want: MsgVolumeBelowMinimum},
		{name: "volume above maximum", request: Request{Volume: 50.01, Distance: 20}, want: MsgVolumeAboveMaximum},
		{name: "distance below minimum", request: Request{Volume: 10, Distance: 0.99}, want: MsgDistanceBelowMinimum},
		{name: "distance above maximum", request: Request{Volume: 10, Distance: 101}, want: MsgDistanceAboveMaximum},
		{name: "volume checked first", request: Request{Volume: 0, Distance: 0}, want: MsgVolumeBelowMinimum},
		{name: "negative stops", request: Request{Volume: 10, Distance: 20, AdditionalStops: -1}, want: MsgNegativeStops},
		{name: "negative floor", request: Request{Volume: 10, Distance: 20, FloorNumber: -2}, want: MsgNegativeFloor},
		{name: "nan volume", request: Request{Volume: math.NaN(), Distance: 20}, want: MsgNotFinite},
		{name: "infinite distance", request: Request{Volume: 10, Distance: math.Inf(1)}, want: MsgNotFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compute(tt.request)
			assert.False(t, res.Success)
			assert.Equal(t, tt.want, res.Error)
			assert.Empty(t, res.Total)
			assert.Nil(t, res.Breakdown)
		})
	}
}

func TestCompute_TwoFractionDigits(t *testing.T) {
	twoDigits := regexp.MustCompile(`^\d+\.\d{2}$`)

	volumes := []float64{1, 1.1, 3.333, 7.77, 12.5, 33.3333, 50}
	distances := []float64{1, 2.71, 9.99, 42.42, 99.999, 100}

	for _, v := range volumes {
		for _, d := range distances {
			for _, flags := range [][2]bool{{false, false}, {true, false}, {false, true}, {true, true}} {
				r := Request{Volume: v, Distance: d, HasFragileItems: flags[0], IsWeekend: flags[1], AdditionalStops: 1, FloorNumber: 2}
				res := Compute(r)
				require.True(t, res.Success)
				assert.Regexp(t, twoDigits, res.Total, "%+v", r)
				assert.Regexp(t, twoDigits, res.Breakdown.VolumeCost)
				assert.Regexp(t, twoDigits, res.Breakdown.DistanceCost)
			}
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	r := Request{Volume: 17.3, Distance: 63.1, HasFragileItems: true, IsWeekend: true, AdditionalStops: 4, FloorNumber: 7}
	first := Compute(r)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Compute(r))
	}
}
