// Package depreciation computes the current book value of assets.
package depreciation

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/shopspring/decimal"
)

// Method selects the depreciation formula.
type Method string

const (
	StraightLine Method = "straight_line"
	// WrittenDownValue applies the category rate to the remaining value each year.
	WrittenDownValue Method = "wdv"
)

const daysPerYear = 365.25

var ErrUnknownMethod = errors.New("unknown depreciation method")

var hundred = decimal.NewFromInt(100)

// ParseMethod resolves a method name; empty selects straight line.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "", StraightLine:
		return StraightLine, nil
	case WrittenDownValue:
		return WrittenDownValue, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Input holds everything needed to value one asset.
type Input struct {
	Price           decimal.Decimal
	Salvage         decimal.Decimal
	RatePercent     decimal.Decimal
	UsefulLifeYears int
	PurchaseDate    time.Time
	AsOf            time.Time
	Disposed        bool
}

// Result is the valuation of one asset.
type Result struct {
	AgeYears     decimal.Decimal
	Accumulated  decimal.Decimal
	CurrentValue decimal.Decimal
}

// ElapsedYears returns the fractional years between two instants, never negative.
func ElapsedYears(from, to time.Time) float64 {
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}
	return d.Hours() / 24 / daysPerYear
}

// Compute values an asset with the given method. The value never drops
// below the salvage value, and disposed assets are worth nothing.
func Compute(m Method, in Input) Result {
	years := ElapsedYears(in.PurchaseDate, in.AsOf)
	age := decimal.NewFromFloat(years).Round(2)

	if in.Disposed {
		return Result{
			AgeYears:     age,
			Accumulated:  in.Price.Round(2),
			CurrentValue: decimal.Zero,
		}
	}

	salvage := in.Salvage
	if salvage.GreaterThan(in.Price) {
		salvage = in.Price
	}

	var value decimal.Decimal
	switch m {
	case WrittenDownValue:
		keep := 1 - in.RatePercent.Div(hundred).InexactFloat64()
		if keep < 0 {
			keep = 0
		}
		value = in.Price.Mul(decimal.NewFromFloat(math.Pow(keep, years)))
	default:
		var annual decimal.Decimal
		if in.UsefulLifeYears > 0 {
			annual = in.Price.Sub(salvage).Div(decimal.NewFromInt(int64(in.UsefulLifeYears)))
		} else {
			annual = in.Price.Mul(in.RatePercent).Div(hundred)
		}
		value = in.Price.Sub(annual.Mul(decimal.NewFromFloat(years)))
	}

	if value.LessThan(salvage) {
		value = salvage
	}
	value = value.Round(2)

	return Result{
		AgeYears:     age,
		Accumulated:  in.Price.Sub(value).Round(2),
		CurrentValue: value,
	}
}

// InputFor builds the valuation input of a report row.
func InputFor(a models.ReportAsset, asOf time.Time) Input {
	return Input{
		Price:           a.Price,
		Salvage:         a.SalvageValue,
		RatePercent:     a.DepreciationRate,
		UsefulLifeYears: a.UsefulLifeYears,
		PurchaseDate:    a.PurchaseDate,
		AsOf:            asOf,
		Disposed:        a.Status == models.AssetDisposed,
	}
}

// BuildReport values every asset and totals the result.
func BuildReport(m Method, asOf time.Time, assets []models.ReportAsset) models.DepreciationReport {
	report := models.DepreciationReport{
		Method:            string(m),
		AsOf:              asOf,
		Rows:              make([]models.DepreciationRow, 0, len(assets)),
		TotalPrice:        decimal.Zero,
		TotalAccumulated:  decimal.Zero,
		TotalCurrentValue: decimal.Zero,
	}

	for _, a := range assets {
		res := Compute(m, InputFor(a, asOf))
		report.Rows = append(report.Rows, models.DepreciationRow{
			AssetID:      a.ID,
			Name:         a.Name,
			StickerSeq:   a.StickerSeq,
			Category:     a.CategoryName,
			Location:     a.LocationName,
			Status:       a.Status,
			PurchaseDate: a.PurchaseDate.Format(time.DateOnly),
			Price:        a.Price.Round(2),
			AgeYears:     res.AgeYears,
			Accumulated:  res.Accumulated,
			CurrentValue: res.CurrentValue,
		})
		report.TotalPrice = report.TotalPrice.Add(a.Price)
		report.TotalAccumulated = report.TotalAccumulated.Add(res.Accumulated)
		report.TotalCurrentValue = report.TotalCurrentValue.Add(res.CurrentValue)
	}

	report.TotalPrice = report.TotalPrice.Round(2)
	return report
}
