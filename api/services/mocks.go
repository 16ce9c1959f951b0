package services

import (
	"context"
	"io"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/events"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockAssetDB struct {
	mock.Mock
}

type MockNotifier struct {
	mock.Mock
}

type MockInvoices struct {
	mock.Mock
}

type MockMailer struct {
	mock.Mock
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockAssetDB) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssetDB) CreateUser(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockAssetDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	var r0 *models.User
	if v := args.Get(0); v != nil {
		r0 = v.(*models.User)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	var r0 *models.User
	if v := args.Get(0); v != nil {
		r0 = v.(*models.User)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) ListUsers(ctx context.Context, f models.UserFilter) ([]models.User, int, error) {
	args := m.Called(ctx, f)
	var r0 []models.User
	if v := args.Get(0); v != nil {
		r0 = v.([]models.User)
	}
	return r0, args.Int(1), args.Error(2)
}

func (m *MockAssetDB) UpdateUser(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockAssetDB) DeleteUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetDB) CountUsers(ctx context.Context, scope models.DashboardScope) (int, error) {
	args := m.Called(ctx, scope)
	return args.Int(0), args.Error(1)
}

func (m *MockAssetDB) SuggestUsers(ctx context.Context, q string, scope models.DashboardScope, limit int) ([]models.Suggestion, error) {
	args := m.Called(ctx, q, scope, limit)
	var r0 []models.Suggestion
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Suggestion)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) CreateLocation(ctx context.Context, l *models.Location) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockAssetDB) GetLocation(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	args := m.Called(ctx, id)
	var r0 *models.Location
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Location)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) ListLocations(ctx context.Context, q string, limit, offset int) ([]models.Location, int, error) {
	args := m.Called(ctx, q, limit, offset)
	var r0 []models.Location
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Location)
	}
	return r0, args.Int(1), args.Error(2)
}

func (m *MockAssetDB) UpdateLocation(ctx context.Context, l *models.Location) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockAssetDB) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetDB) CreateProgramme(ctx context.Context, p *models.Programme) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockAssetDB) GetProgramme(ctx context.Context, id uuid.UUID) (*models.Programme, error) {
	args := m.Called(ctx, id)
	var r0 *models.Programme
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Programme)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) ListProgrammes(ctx context.Context, q string, limit, offset int) ([]models.Programme, int, error) {
	args := m.Called(ctx, q, limit, offset)
	var r0 []models.Programme
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Programme)
	}
	return r0, args.Int(1), args.Error(2)
}

func (m *MockAssetDB) UpdateProgramme(ctx context.Context, p *models.Programme) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockAssetDB) DeleteProgramme(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetDB) CreateCategory(ctx context.Context, c *models.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockAssetDB) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)
	var r0 *models.Category
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Category)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) ListCategories(ctx context.Context, q string, limit, offset int) ([]models.Category, int, error) {
	args := m.Called(ctx, q, limit, offset)
	var r0 []models.Category
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Category)
	}
	return r0, args.Int(1), args.Error(2)
}

func (m *MockAssetDB) UpdateCategory(ctx context.Context, c *models.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockAssetDB) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetDB) CreateVendor(ctx context.Context, v *models.Vendor) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockAssetDB) GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	args := m.Called(ctx, id)
	var r0 *models.Vendor
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Vendor)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) ListVendors(ctx context.Context, q string, limit, offset int) ([]models.Vendor, int, error) {
	args := m.Called(ctx, q, limit, offset)
	var r0 []models.Vendor
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Vendor)
	}
	return r0, args.Int(1), args.Error(2)
}

func (m *MockAssetDB) UpdateVendor(ctx context.Context, v *models.Vendor) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockAssetDB) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetDB) CreateProject(ctx context.Context, p *models.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockAssetDB) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	var r0 *models.Project
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Project)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) ListProjects(ctx context.Context, q string, locationID *uuid.UUID, limit, offset int) ([]models.Project, int, error) {
	args := m.Called(ctx, q, locationID, limit, offset)
	var r0 []models.Project
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Project)
	}
	return r0, args.Int(1), args.Error(2)
}

func (m *MockAssetDB) UpdateProject(ctx context.Context, p *models.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockAssetDB) DeleteProject(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetDB) AddProjectMember(ctx context.Context, projectID, userID uuid.UUID) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

func (m *MockAssetDB) RemoveProjectMember(ctx context.Context, projectID, userID uuid.UUID) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

func (m *MockAssetDB) IsProjectMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssetDB) CreateAsset(ctx context.Context, a *models.Asset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssetDB) GetAsset(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	args := m.Called(ctx, id)
	var r0 *models.Asset
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Asset)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) ListAssets(ctx context.Context, f models.AssetFilter) ([]models.Asset, int, error) {
	args := m.Called(ctx, f)
	var r0 []models.Asset
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Asset)
	}
	return r0, args.Int(1), args.Error(2)
}

func (m *MockAssetDB) UpdateAsset(ctx context.Context, a *models.Asset, actor uuid.UUID) error {
	args := m.Called(ctx, a, actor)
	return args.Error(0)
}

func (m *MockAssetDB) AssignAsset(ctx context.Context, id uuid.UUID, req models.AssignRequest, actor uuid.UUID) (*models.Asset, error) {
	args := m.Called(ctx, id, req, actor)
	var r0 *models.Asset
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Asset)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) UnassignAsset(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*models.Asset, error) {
	args := m.Called(ctx, id, actor)
	var r0 *models.Asset
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Asset)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) DisposeAsset(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*models.Asset, error) {
	args := m.Called(ctx, id, actor)
	var r0 *models.Asset
	if v := args.Get(0); v != nil {
		r0 = v.(*models.Asset)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) SuggestAssets(ctx context.Context, q string, f models.AssetFilter, limit int) ([]models.Suggestion, error) {
	args := m.Called(ctx, q, f, limit)
	var r0 []models.Suggestion
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Suggestion)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) AssetHistory(ctx context.Context, assetID uuid.UUID) ([]models.AssetHistory, error) {
	args := m.Called(ctx, assetID)
	var r0 []models.AssetHistory
	if v := args.Get(0); v != nil {
		r0 = v.([]models.AssetHistory)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) AppendHistory(ctx context.Context, h models.AssetHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockAssetDB) CountAssetsByStatus(ctx context.Context, scope models.DashboardScope) ([]models.CountBy, error) {
	args := m.Called(ctx, scope)
	var r0 []models.CountBy
	if v := args.Get(0); v != nil {
		r0 = v.([]models.CountBy)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) CountAssetsByCategory(ctx context.Context, scope models.DashboardScope) ([]models.CountBy, error) {
	args := m.Called(ctx, scope)
	var r0 []models.CountBy
	if v := args.Get(0); v != nil {
		r0 = v.([]models.CountBy)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) CountAssetsByLocation(ctx context.Context, scope models.DashboardScope) ([]models.CountBy, error) {
	args := m.Called(ctx, scope)
	var r0 []models.CountBy
	if v := args.Get(0); v != nil {
		r0 = v.([]models.CountBy)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) TotalPurchaseValue(ctx context.Context, scope models.DashboardScope) (decimal.Decimal, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAssetDB) RecentAssets(ctx context.Context, scope models.DashboardScope, n int) ([]models.Asset, error) {
	args := m.Called(ctx, scope, n)
	var r0 []models.Asset
	if v := args.Get(0); v != nil {
		r0 = v.([]models.Asset)
	}
	return r0, args.Error(1)
}

func (m *MockAssetDB) ReportAssets(ctx context.Context, f models.ReportFilter) ([]models.ReportAsset, error) {
	args := m.Called(ctx, f)
	var r0 []models.ReportAsset
	if v := args.Get(0); v != nil {
		r0 = v.([]models.ReportAsset)
	}
	return r0, args.Error(1)
}

func (m *MockNotifier) Notify(ctx context.Context, event events.AssetEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockNotifier) Close() {
	m.Called()
}

func (m *MockInvoices) Upload(ctx context.Context, assetID uuid.UUID, filename, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, assetID, filename, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *MockInvoices) PresignURL(ctx context.Context, key string) (string, time.Time, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func (m *MockTokenIssuer) Issue(user models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}
