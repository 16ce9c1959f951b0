package services

import (
	"context"
	"io"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/appconfig"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/events"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetStore is the storage the services depend on. *db.AssetDB implements it.
type AssetStore interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, f models.UserFilter) ([]models.User, int, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	CountUsers(ctx context.Context, scope models.DashboardScope) (int, error)
	SuggestUsers(ctx context.Context, q string, scope models.DashboardScope, limit int) ([]models.Suggestion, error)

	CreateLocation(ctx context.Context, l *models.Location) error
	GetLocation(ctx context.Context, id uuid.UUID) (*models.Location, error)
	ListLocations(ctx context.Context, q string, limit, offset int) ([]models.Location, int, error)
	UpdateLocation(ctx context.Context, l *models.Location) error
	DeleteLocation(ctx context.Context, id uuid.UUID) error

	CreateProgramme(ctx context.Context, p *models.Programme) error
	GetProgramme(ctx context.Context, id uuid.UUID) (*models.Programme, error)
	ListProgrammes(ctx context.Context, q string, limit, offset int) ([]models.Programme, int, error)
	UpdateProgramme(ctx context.Context, p *models.Programme) error
	DeleteProgramme(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, c *models.Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context, q string, limit, offset int) ([]models.Category, int, error)
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateVendor(ctx context.Context, v *models.Vendor) error
	GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	ListVendors(ctx context.Context, q string, limit, offset int) ([]models.Vendor, int, error)
	UpdateVendor(ctx context.Context, v *models.Vendor) error
	DeleteVendor(ctx context.Context, id uuid.UUID) error

	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListProjects(ctx context.Context, q string, locationID *uuid.UUID, limit, offset int) ([]models.Project, int, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error
	AddProjectMember(ctx context.Context, projectID, userID uuid.UUID) error
	RemoveProjectMember(ctx context.Context, projectID, userID uuid.UUID) error
	IsProjectMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error)

	CreateAsset(ctx context.Context, a *models.Asset) error
	GetAsset(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	ListAssets(ctx context.Context, f models.AssetFilter) ([]models.Asset, int, error)
	UpdateAsset(ctx context.Context, a *models.Asset, actor uuid.UUID) error
	AssignAsset(ctx context.Context, id uuid.UUID, req models.AssignRequest, actor uuid.UUID) (*models.Asset, error)
	UnassignAsset(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*models.Asset, error)
	DisposeAsset(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*models.Asset, error)
	SuggestAssets(ctx context.Context, q string, f models.AssetFilter, limit int) ([]models.Suggestion, error)
	AssetHistory(ctx context.Context, assetID uuid.UUID) ([]models.AssetHistory, error)
	AppendHistory(ctx context.Context, h models.AssetHistory) error

	CountAssetsByStatus(ctx context.Context, scope models.DashboardScope) ([]models.CountBy, error)
	CountAssetsByCategory(ctx context.Context, scope models.DashboardScope) ([]models.CountBy, error)
	CountAssetsByLocation(ctx context.Context, scope models.DashboardScope) ([]models.CountBy, error)
	TotalPurchaseValue(ctx context.Context, scope models.DashboardScope) (decimal.Decimal, error)
	RecentAssets(ctx context.Context, scope models.DashboardScope, n int) ([]models.Asset, error)
	ReportAssets(ctx context.Context, f models.ReportFilter) ([]models.ReportAsset, error)
}

// TokenIssuer signs tokens for users who log in.
type TokenIssuer interface {
	Issue(user models.User) (string, error)
}

// InvoiceStorage stores invoice files and hands out download links.
type InvoiceStorage interface {
	Upload(ctx context.Context, assetID uuid.UUID, filename, contentType string, body io.Reader) (string, error)
	PresignURL(ctx context.Context, key string) (string, time.Time, error)
}

// Mailer delivers notification emails.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Service contains all shared dependencies for handlers.
type Service struct {
	Config   *appconfig.Config
	DB       AssetStore
	Notifier events.Notifier
	Tokens   TokenIssuer
	// Invoices is nil when no bucket is configured.
	Invoices InvoiceStorage
}

// notify publishes an asset event. Delivery failures are logged only.
func (svc *Service) notify(ctx context.Context, event events.AssetEvent) {
	if svc.Notifier == nil {
		return
	}
	if err := svc.Notifier.Notify(ctx, event); err != nil {
		logger := loggerFrom(ctx)
		logger.Warn().Err(err).
			Str("event_type", string(event.Type)).
			Str("asset_id", event.AssetID.String()).
			Msg("Failed to publish asset event")
	}
}
