package depreciation

import (
	"testing"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var purchased = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// yearsAfter returns an instant exactly n depreciation years after purchase.
func yearsAfter(n float64) time.Time {
	return purchased.Add(time.Duration(n * daysPerYear * 24 * float64(time.Hour)))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("")
	require.NoError(t, err)
	assert.Equal(t, StraightLine, m)

	m, err = ParseMethod("wdv")
	require.NoError(t, err)
	assert.Equal(t, WrittenDownValue, m)

	_, err = ParseMethod("double_declining")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestCompute(t *testing.T) {
	base := Input{
		Price:           dec("1000"),
		Salvage:         dec("100"),
		RatePercent:     dec("20"),
		UsefulLifeYears: 5,
		PurchaseDate:    purchased,
	}

	tests := []struct {
		name     string
		method   Method
		asOf     time.Time
		disposed bool
		value    string
		accum    string
	}{
		{"straight line two years", StraightLine, yearsAfter(2), false, "640", "360"},
		{"straight line floors at salvage", StraightLine, yearsAfter(10), false, "100", "900"},
		{"wdv two years", WrittenDownValue, yearsAfter(2), false, "640", "360"},
		{"wdv floors at salvage", WrittenDownValue, yearsAfter(30), false, "100", "900"},
		{"before purchase", StraightLine, purchased.AddDate(0, -1, 0), false, "1000", "0"},
		{"disposed", StraightLine, yearsAfter(1), true, "0", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.AsOf = tt.asOf
			in.Disposed = tt.disposed

			got := Compute(tt.method, in)
			assert.True(t, dec(tt.value).Equal(got.CurrentValue), "value %s", got.CurrentValue)
			assert.True(t, dec(tt.accum).Equal(got.Accumulated), "accumulated %s", got.Accumulated)
		})
	}
}

func TestComputeFallsBackToRateWithoutUsefulLife(t *testing.T) {
	got := Compute(StraightLine, Input{
		Price:        dec("500"),
		RatePercent:  dec("10"),
		PurchaseDate: purchased,
		AsOf:         yearsAfter(3),
	})
	assert.True(t, dec("350").Equal(got.CurrentValue), "value %s", got.CurrentValue)
	assert.True(t, dec("3").Equal(got.AgeYears), "age %s", got.AgeYears)
}

func TestBuildReportTotals(t *testing.T) {
	assets := []models.ReportAsset{
		{
			Asset: models.Asset{ID: uuid.New(), Name: "Laptop", StickerSeq: "HYD/LAP/0001",
				Price: dec("1000"), SalvageValue: dec("100"), PurchaseDate: purchased, Status: models.AssetAssigned},
			CategoryName: "Laptops", LocationName: "Hyderabad",
			DepreciationRate: dec("20"), UsefulLifeYears: 5,
		},
		{
			Asset: models.Asset{ID: uuid.New(), Name: "Chair", StickerSeq: "HYD/FUR/0001",
				Price: dec("200"), PurchaseDate: purchased, Status: models.AssetDisposed},
			CategoryName: "Furniture", LocationName: "Hyderabad",
			DepreciationRate: dec("10"), UsefulLifeYears: 10,
		},
	}

	report := BuildReport(StraightLine, yearsAfter(2), assets)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "2020-01-01", report.Rows[0].PurchaseDate)
	assert.True(t, dec("1200").Equal(report.TotalPrice))
	assert.True(t, dec("640").Equal(report.TotalCurrentValue))
	assert.True(t, dec("560").Equal(report.TotalAccumulated))
}
