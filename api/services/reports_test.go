package services

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func reportAssets() []models.ReportAsset {
	return []models.ReportAsset{
		{
			Asset: models.Asset{
				ID:           uuid.MustParse("22222222-2222-2222-2222-222222222222"),
				Name:         "Projector",
				StickerSeq:   "HO/AV/0001",
				PurchaseDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
				Price:        decimal.NewFromInt(1000),
				SalvageValue: decimal.NewFromInt(200),
				Status:       models.AssetAvailable,
			},
			CategoryName:     "Audio Visual",
			LocationName:     "Head Office",
			DepreciationRate: decimal.NewFromInt(20),
			UsefulLifeYears:  4,
		},
	}
}

func TestGetDepreciationReportService_JSON(t *testing.T) {
	mockDB := new(MockAssetDB)
	mockDB.On("ReportAssets", mock.Anything, models.ReportFilter{}).Return(reportAssets(), nil)
	svc := newTestService(mockDB)

	// Eight years in, straight line has reached salvage
	r := httptest.NewRequest(http.MethodGet, "/api/reports/depreciation?method=straight_line&as_of=2028-01-01", nil)
	r = withClaims(r, models.RoleSuperuser, uuid.New(), nil)
	w := httptest.NewRecorder()
	svc.GetDepreciationReportService(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var report models.DepreciationReport
	decodeBody(t, w, &report)
	assert.Equal(t, "straight_line", report.Method)
	require.Len(t, report.Rows, 1)
	assert.True(t, report.Rows[0].CurrentValue.Equal(decimal.NewFromInt(200)), report.Rows[0].CurrentValue.String())
	assert.True(t, report.TotalAccumulated.Equal(decimal.NewFromInt(800)))
}

func TestGetDepreciationReportService_CSV(t *testing.T) {
	locationID := uuid.New()
	mockDB := new(MockAssetDB)
	mockDB.On("ReportAssets", mock.Anything, models.ReportFilter{LocationID: &locationID}).Return(reportAssets(), nil)
	svc := newTestService(mockDB)

	r := httptest.NewRequest(http.MethodGet, "/api/reports/depreciation?format=csv&as_of=2028-01-01", nil)
	r = withClaims(r, models.RoleAdmin, uuid.New(), &locationID)
	w := httptest.NewRecorder()
	svc.GetDepreciationReportService(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, reportHeader, records[0])
	assert.Equal(t, "HO/AV/0001", records[1][2])
	assert.Equal(t, "200.00", records[1][10])
	mockDB.AssertExpectations(t)
}

func TestGetDepreciationReportService_BadParams(t *testing.T) {
	for _, query := range []string{"method=double", "as_of=yesterday", "format=xml", "category_id=nope"} {
		t.Run(query, func(t *testing.T) {
			svc := newTestService(new(MockAssetDB))
			r := httptest.NewRequest(http.MethodGet, "/api/reports/depreciation?"+query, nil)
			r = withClaims(r, models.RoleSuperuser, uuid.New(), nil)
			w := httptest.NewRecorder()
			svc.GetDepreciationReportService(w, r)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
