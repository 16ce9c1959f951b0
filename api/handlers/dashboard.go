package handlers

import (
	"net/http"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/api/services"
)

// @Summary Dashboard
// @Description Role-gated landing page. Users get their own assets. Admins and Superusers get aggregates for their scope.
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.Dashboard
// @Failure 401 {object} models.Response
// @Failure 500 {object} models.Response
// @Router /dashboard [get]
func GetDashboard(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetDashboardService(w, r)
	}
}

// @Summary Depreciation report
// @Description Value every asset in scope as of a date.
// @Tags reports
// @Produce json,text/csv
// @Param method query string false "Depreciation method" Enums(straight_line, wdv) default(straight_line)
// @Param as_of query string false "Valuation date (YYYY-MM-DD), defaults to today"
// @Param format query string false "Output format" Enums(json, csv) default(json)
// @Param location_id query string false "Filter by location"
// @Param category_id query string false "Filter by category"
// @Success 200 {object} models.DepreciationReport
// @Failure 400 {object} models.Response
// @Router /reports/depreciation [get]
func GetDepreciationReport(svc *services.Service) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		svc.GetDepreciationReportService(w, r)
	}
}
