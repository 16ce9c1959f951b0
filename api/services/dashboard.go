package services

import (
	"context"
	"net/http"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/authn"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/depreciation"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RecentAssetCount is how many new assets the dashboards list.
const RecentAssetCount = 5

// BuildDashboard assembles the dashboard for the caller's role. The
// aggregates are fetched concurrently and any failure fails the whole call.
func (svc *Service) BuildDashboard(ctx context.Context, claims authn.Claims, callerID uuid.UUID) (*models.Dashboard, error) {
	d := &models.Dashboard{Role: claims.Role}

	if claims.Role == models.RoleUser {
		assets, total, err := svc.DB.ListAssets(ctx, models.AssetFilter{
			HolderID: &callerID,
			SortBy:   "created_at",
			SortDesc: true,
		})
		if err != nil {
			return nil, err
		}
		d.MyAssets = assets
		d.TotalAssets = total
		return d, nil
	}

	scope := models.DashboardScope{LocationID: locationScope(claims)}
	asOf := time.Now().UTC()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := svc.DB.CountAssetsByStatus(gctx, scope)
		if err != nil {
			return err
		}
		d.ByStatus = counts
		for _, c := range counts {
			d.TotalAssets += c.Count
		}
		return nil
	})
	g.Go(func() error {
		counts, err := svc.DB.CountAssetsByCategory(gctx, scope)
		d.ByCategory = counts
		return err
	})
	g.Go(func() error {
		counts, err := svc.DB.CountAssetsByLocation(gctx, scope)
		d.ByLocation = counts
		return err
	})
	g.Go(func() error {
		total, err := svc.DB.TotalPurchaseValue(gctx, scope)
		d.TotalPurchase = total
		return err
	})
	g.Go(func() error {
		rows, err := svc.DB.ReportAssets(gctx, models.ReportFilter{LocationID: scope.LocationID})
		if err != nil {
			return err
		}
		d.TotalCurrentValue = depreciation.BuildReport(depreciation.StraightLine, asOf, rows).TotalCurrentValue
		return nil
	})
	g.Go(func() error {
		recent, err := svc.DB.RecentAssets(gctx, scope, RecentAssetCount)
		d.RecentAssets = recent
		return err
	})
	g.Go(func() error {
		n, err := svc.DB.CountUsers(gctx, scope)
		d.UserCount = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

// GetDashboardService returns the role-gated dashboard.
func (svc *Service) GetDashboardService(w http.ResponseWriter, r *http.Request) {

	claims, callerID, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	d, err := svc.BuildDashboard(r.Context(), claims, callerID)
	if err != nil {
		HandleError(w, r, err, "Failed to build dashboard")
		return
	}

	zerolog.Ctx(r.Context()).Debug().Str("role", string(claims.Role)).Int("total_assets", d.TotalAssets).
		Msg("Dashboard built")
	WriteResponse(w, http.StatusOK, d)
}
