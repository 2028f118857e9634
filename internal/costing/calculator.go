// Package costing turns project parameters into cost figures.
//
// Every function here is pure: no I/O, no clock, no randomness. Arithmetic is
// exact base-10 and only the returned figures are rounded, half away from zero,
// to two decimal places.
package costing

import (
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places money is kept at rest.
const MoneyPlaces = 2

var (
	hundred = decimal.NewFromInt(100)

	materialsShare = decimal.RequireFromString("0.60")
	laborShare     = decimal.RequireFromString("0.30")
	equipmentShare = decimal.RequireFromString("0.10")
)

// Defaults are substituted for inputs the caller leaves unset.
type Defaults struct {
	BaseRate    decimal.Decimal
	Multiplier  decimal.Decimal
	Contingency decimal.Decimal
}

// StandardDefaults returns 50000.00 per square metre, a 1.00 multiplier and 10% contingency.
func StandardDefaults() Defaults {
	return Defaults{
		BaseRate:    decimal.NewFromInt(50000),
		Multiplier:  decimal.NewFromInt(1),
		Contingency: decimal.NewFromInt(10),
	}
}

// CustomItem is an ad-hoc line item outside the rate model.
type CustomItem struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Input holds the raw calculation parameters. Invalid (unset) fields fall back to Defaults;
// an unset area yields a zero area subtotal.
type Input struct {
	BaseRate              decimal.NullDecimal
	LocationMultiplier    decimal.NullDecimal
	TotalArea             decimal.NullDecimal
	ContingencyPercentage decimal.NullDecimal
	CustomItems           []CustomItem
}

// Split is the advisory materials/labor/equipment division of the area subtotal.
type Split struct {
	Materials decimal.Decimal
	Labor     decimal.Decimal
	Equipment decimal.Decimal
}

// Breakdown is the result of a calculation. Resolved inputs are echoed back so
// callers can persist exactly what was used.
type Breakdown struct {
	BaseRate              decimal.Decimal
	LocationMultiplier    decimal.Decimal
	TotalArea             decimal.Decimal
	ContingencyPercentage decimal.Decimal

	AdjustedRate      decimal.Decimal
	AreaSubtotal      decimal.Decimal
	CustomItemsTotal  decimal.Decimal
	ContingencyBase   decimal.Decimal
	ContingencyAmount decimal.Decimal
	GrandTotal        decimal.Decimal
	Split             Split
}

// Calculator computes breakdowns with a fixed set of defaults.
type Calculator struct {
	defaults Defaults
}

// NewCalculator creates a calculator using the given defaults
func NewCalculator(defaults Defaults) *Calculator {
	return &Calculator{defaults: defaults}
}

// Defaults returns the substitution values used by this calculator
func (c *Calculator) Defaults() Defaults {
	return c.defaults
}

// Compute runs the full calculation.
//
// Inputs are first brought to their stored precision so that recomputing from
// persisted values reproduces the same figures. The contingency is taken on the
// area subtotal only. Custom items are added to the grand total after the contingency.
func (c *Calculator) Compute(in Input) Breakdown {
	base := Round(orDefault(in.BaseRate, c.defaults.BaseRate))
	multiplier := Round(orDefault(in.LocationMultiplier, c.defaults.Multiplier))
	contingencyPct := Round(orDefault(in.ContingencyPercentage, c.defaults.Contingency))
	area := Round(orDefault(in.TotalArea, decimal.Zero))

	adjusted := base.Mul(multiplier)
	subtotal := adjusted.Mul(area)
	contingency := subtotal.Mul(contingencyPct).Div(hundred)

	itemsTotal := decimal.Zero
	for _, item := range in.CustomItems {
		itemsTotal = itemsTotal.Add(LineTotal(item.Quantity, item.UnitPrice))
	}

	grand := subtotal.Add(contingency).Add(itemsTotal)

	return Breakdown{
		BaseRate:              base,
		LocationMultiplier:    multiplier,
		TotalArea:             area,
		ContingencyPercentage: contingencyPct,

		AdjustedRate:      Round(adjusted),
		AreaSubtotal:      Round(subtotal),
		CustomItemsTotal:  Round(itemsTotal),
		ContingencyBase:   Round(subtotal),
		ContingencyAmount: Round(contingency),
		GrandTotal:        Round(grand),
		Split: Split{
			Materials: Round(subtotal.Mul(materialsShare)),
			Labor:     Round(subtotal.Mul(laborShare)),
			Equipment: Round(subtotal.Mul(equipmentShare)),
		},
	}
}

// Compute runs a calculation with StandardDefaults.
func Compute(in Input) Breakdown {
	return NewCalculator(StandardDefaults()).Compute(in)
}

// LineTotal returns quantity × unit price rounded for storage.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return Round(quantity.Mul(unitPrice))
}

// Round rounds half away from zero to MoneyPlaces.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// Present wraps a value as a set NullDecimal.
func Present(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func orDefault(v decimal.NullDecimal, fallback decimal.Decimal) decimal.Decimal {
	if v.Valid {
		return v.Decimal
	}
	return fallback
}
