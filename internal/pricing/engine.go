// Package pricing estimates move costs with fixed-point decimal arithmetic.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Bounds and rates used by Compute. Money is never held in binary floating point.
var (
	MinVolume   = decimal.NewFromInt(1)
	MaxVolume   = decimal.NewFromInt(50)
	MinDistance = decimal.NewFromInt(1)
	MaxDistance = decimal.NewFromInt(100)

	BaseCost          = decimal.RequireFromString("150.00")
	VolumeCostPerM3   = decimal.RequireFromString("20.00")
	DistanceCostPerKM = decimal.RequireFromString("2.50")
	FloorCostPerLevel = decimal.RequireFromString("10.00")

	FragileMultiplier = decimal.RequireFromString("1.20")
	WeekendMultiplier = decimal.RequireFromString("1.30")
)

// FractionDigits is the scale every reported amount is rounded to.
const FractionDigits = 2

// Validation messages, one per violated constraint.
const (
	MsgVolumeBelowMinimum   = "volume below minimum"
	MsgVolumeAboveMaximum   = "volume above maximum"
	MsgDistanceBelowMinimum = "distance below minimum"
	MsgDistanceAboveMaximum = "distance above maximum"
	MsgNegativeStops        = "additional stops cannot be negative"
	MsgNegativeFloor        = "floor number cannot be negative"
	MsgNotFinite            = "volume and distance must be finite numbers"
)

var one = decimal.NewFromInt(1)

// Request is the parameter bag of a move-cost estimate.
type Request struct {
	Volume          float64 `json:"volume"`
	Distance        float64 `json:"distance"`
	HasFragileItems bool    `json:"hasFragileItems"`
	IsWeekend       bool    `json:"isWeekend"`
	AdditionalStops int     `json:"additionalStops"`
	FloorNumber     int     `json:"floorNumber"`
}

// Multipliers reports the factors applied to the subtotal.
type Multipliers struct {
	FragileItems string `json:"fragileItems"`
	Weekend      string `json:"weekend"`
}

// Breakdown exposes every component of the total in computation order.
type Breakdown struct {
	BaseCost        string      `json:"baseCost"`
	VolumeCost      string      `json:"volumeCost"`
	DistanceCost    string      `json:"distanceCost"`
	StopsCost       string      `json:"stopsCost"`
	FloorCost       string      `json:"floorCost"`
	HasFragileItems bool        `json:"hasFragileItems"`
	IsWeekend       bool        `json:"isWeekend"`
	Multipliers     Multipliers `json:"multipliers"`
}

// Result is either a priced estimate or the constraint the request violated.
type Result struct {
	Success   bool       `json:"success"`
	Total     string     `json:"total,omitempty"`
	Breakdown *Breakdown `json:"breakdown,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// ValidationError names the first constraint a Request violates.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validate checks the request bounds in a fixed order and returns the first violation.
func (r Request) Validate() *ValidationError {
	if !finite(r.Volume) || !finite(r.Distance) {
		return &ValidationError{Field: "volume", Message: MsgNotFinite}
	}

	volume := decimal.NewFromFloat(r.Volume)
	distance := decimal.NewFromFloat(r.Distance)

	switch {
	case volume.LessThan(MinVolume):
		return &ValidationError{Field: "volume", Message: MsgVolumeBelowMinimum}
	case volume.GreaterThan(MaxVolume):
		return &ValidationError{Field: "volume", Message: MsgVolumeAboveMaximum}
	case distance.LessThan(MinDistance):
		return &ValidationError{Field: "distance", Message: MsgDistanceBelowMinimum}
	case distance.GreaterThan(MaxDistance):
		return &ValidationError{Field: "distance", Message: MsgDistanceAboveMaximum}
	case r.AdditionalStops < 0:
		return &ValidationError{Field: "additionalStops", Message: MsgNegativeStops}
	case r.FloorNumber < 0:
		return &ValidationError{Field: "floorNumber", Message: MsgNegativeFloor}
	}
	return nil
}

// Compute prices r. It is pure: equal requests always yield equal results.
func Compute(r Request) Result {
	if verr := r.Validate(); verr != nil {
		return Result{Success: false, Error: verr.Message}
	}

	volume := decimal.NewFromFloat(r.Volume)
	distance := decimal.NewFromFloat(r.Distance)

	baseCost := BaseCost
	volumeCost := volume.Mul(VolumeCostPerM3)
	distanceCost := distance.Mul(DistanceCostPerKM)
	subtotal := baseCost.Add(volumeCost).Add(distanceCost)

	fragile := one
	if r.HasFragileItems {
		fragile = FragileMultiplier
		subtotal = subtotal.Mul(fragile)
	}

	stopsCost := decimal.NewFromInt(int64(r.AdditionalStops)).Mul(DistanceCostPerKM.Mul(decimal.NewFromInt(2)))
	subtotal = subtotal.Add(stopsCost)

	floorCost := decimal.Zero
	if r.FloorNumber > 0 {
		floorCost = decimal.NewFromInt(int64(r.FloorNumber)).Mul(FloorCostPerLevel)
		subtotal = subtotal.Add(floorCost)
	}

	weekend := one
	if r.IsWeekend {
		weekend = WeekendMultiplier
		subtotal = subtotal.Mul(weekend)
	}

	total := subtotal.Round(FractionDigits)

	return Result{
		Success: true,
		Total:   fixed(total),
		Breakdown: &Breakdown{
			BaseCost:        fixed(baseCost),
			VolumeCost:      fixed(volumeCost),
			DistanceCost:    fixed(distanceCost),
			StopsCost:       fixed(stopsCost),
			FloorCost:       fixed(floorCost),
			HasFragileItems: r.HasFragileItems,
			IsWeekend:       r.IsWeekend,
			Multipliers: Multipliers{
				FragileItems: fixed(fragile),
				Weekend:      fixed(weekend),
			},
		},
	}
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(FractionDigits)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
