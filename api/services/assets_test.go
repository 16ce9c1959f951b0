package services

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/events"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type assetFixture struct {
	db         *MockAssetDB
	notifier   *MockNotifier
	svc        *Service
	locationID uuid.UUID
	categoryID uuid.UUID
}

func newAssetFixture() *assetFixture {
	f := &assetFixture{
		db:         new(MockAssetDB),
		notifier:   new(MockNotifier),
		locationID: uuid.New(),
		categoryID: uuid.New(),
	}
	f.svc = newTestService(f.db)
	f.svc.Notifier = f.notifier

	f.db.On("GetCategory", mock.Anything, f.categoryID).Return(&models.Category{ID: f.categoryID}, nil).Maybe()
	f.db.On("GetLocation", mock.Anything, f.locationID).Return(&models.Location{ID: f.locationID}, nil).Maybe()
	return f
}

func (f *assetFixture) request() models.AssetRequest {
	return models.AssetRequest{
		Name:         "ThinkPad X1",
		CategoryID:   f.categoryID,
		LocationID:   f.locationID,
		PurchaseDate: "2023-04-01",
		Price:        decimal.NewFromInt(1500),
		SalvageValue: decimal.NewFromInt(100),
	}
}

func TestCreateAssetService_JSON(t *testing.T) {
	f := newAssetFixture()
	adminID := uuid.New()

	f.db.On("CreateAsset", mock.Anything, mock.MatchedBy(func(a *models.Asset) bool {
		return a.Name == "ThinkPad X1" && a.CreatedBy == adminID && a.InvoiceKey == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Asset).StickerSeq = "HO/LAP/0001"
	}).Return(nil)
	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e events.AssetEvent) bool {
		return e.Type == events.AssetCreated && e.Sticker == "HO/LAP/0001" && e.ActorID == adminID
	})).Return(nil)

	r := withClaims(jsonRequest(t, http.MethodPost, "/api/assets", f.request()), models.RoleAdmin, adminID, &f.locationID)
	w := httptest.NewRecorder()
	f.svc.CreateAssetService(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	var created models.Asset
	decodeBody(t, w, &created)
	assert.Equal(t, "HO/LAP/0001", created.StickerSeq)
	assert.Equal(t, "/api/assets/"+created.ID.String(), w.Header().Get("Location"))

	f.db.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestCreateAssetService_NotifierFailureIgnored(t *testing.T) {
	f := newAssetFixture()

	f.db.On("CreateAsset", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(assert.AnError)

	r := withClaims(jsonRequest(t, http.MethodPost, "/api/assets", f.request()), models.RoleSuperuser, uuid.New(), nil)
	w := httptest.NewRecorder()
	f.svc.CreateAssetService(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateAssetService_Multipart(t *testing.T) {
	f := newAssetFixture()
	invoices := new(MockInvoices)
	f.svc.Invoices = invoices

	invoices.On("Upload", mock.Anything, mock.AnythingOfType("uuid.UUID"), "invoice.pdf", "application/pdf", mock.Anything).
		Return("invoices/assets/x/invoice.pdf", nil)
	f.db.On("CreateAsset", mock.Anything, mock.MatchedBy(func(a *models.Asset) bool {
		return a.InvoiceKey != nil && *a.InvoiceKey == "invoices/assets/x/invoice.pdf"
	})).Return(nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	data, err := json.Marshal(f.request())
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("data", string(data)))
	part, err := mw.CreateFormFile("invoice", "../../invoice.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/assets", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	r = withClaims(r, models.RoleSuperuser, uuid.New(), nil)
	w := httptest.NewRecorder()
	f.svc.CreateAssetService(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	invoices.AssertExpectations(t)
	f.db.AssertExpectations(t)
}

func TestCreateAssetService_RejectsExecutableInvoice(t *testing.T) {
	f := newAssetFixture()
	f.svc.Invoices = new(MockInvoices)

	data, err := json.Marshal(f.request())
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("data", string(data)))
	part, err := mw.CreateFormFile("invoice", "invoice.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("MZ\x90\x00\x03\x00\x00\x00binary"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/assets", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	r = withClaims(r, models.RoleSuperuser, uuid.New(), nil)
	w := httptest.NewRecorder()
	f.svc.CreateAssetService(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.db.AssertNotCalled(t, "CreateAsset", mock.Anything, mock.Anything)
}

func TestCreateAssetService_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.AssetRequest)
	}{
		{"missing name", func(r *models.AssetRequest) { r.Name = " " }},
		{"bad date", func(r *models.AssetRequest) { r.PurchaseDate = "01/04/2023" }},
		{"future date", func(r *models.AssetRequest) { r.PurchaseDate = time.Now().AddDate(1, 0, 0).Format(time.DateOnly) }},
		{"negative price", func(r *models.AssetRequest) { r.Price = decimal.NewFromInt(-1) }},
		{"salvage above price", func(r *models.AssetRequest) { r.SalvageValue = decimal.NewFromInt(2000) }},
		{"missing category", func(r *models.AssetRequest) { r.CategoryID = uuid.Nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAssetFixture()
			req := f.request()
			tt.mutate(&req)

			r := withClaims(jsonRequest(t, http.MethodPost, "/api/assets", req), models.RoleSuperuser, uuid.New(), nil)
			w := httptest.NewRecorder()
			f.svc.CreateAssetService(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			f.db.AssertNotCalled(t, "CreateAsset", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateAssetService_AdminOutsideLocation(t *testing.T) {
	f := newAssetFixture()
	otherLocation := uuid.New()

	r := withClaims(jsonRequest(t, http.MethodPost, "/api/assets", f.request()), models.RoleAdmin, uuid.New(), &otherLocation)
	w := httptest.NewRecorder()
	f.svc.CreateAssetService(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetAssetsService_UserSeesHeldAssets(t *testing.T) {
	f := newAssetFixture()
	userID := uuid.New()

	f.db.On("ListAssets", mock.Anything, mock.MatchedBy(func(filter models.AssetFilter) bool {
		return filter.HolderID != nil && *filter.HolderID == userID &&
			filter.Status == models.AssetAssigned && filter.SortBy == "price" && filter.SortDesc &&
			filter.Limit == 20 && filter.Offset == 0
	})).Return([]models.Asset{{ID: uuid.New()}}, 1, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/assets?status=assigned&sort=-price", nil)
	r = withClaims(r, models.RoleUser, userID, nil)
	w := httptest.NewRecorder()
	f.svc.GetAssetsService(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	f.db.AssertExpectations(t)
}

func TestGetAssetsService_BadFilters(t *testing.T) {
	for _, query := range []string{"status=lost", "sort=colour", "category_id=abc", "page=x"} {
		t.Run(query, func(t *testing.T) {
			f := newAssetFixture()
			r := withClaims(httptest.NewRequest(http.MethodGet, "/api/assets?"+query, nil), models.RoleSuperuser, uuid.New(), nil)
			w := httptest.NewRecorder()
			f.svc.GetAssetsService(w, r)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetAssetService_Visibility(t *testing.T) {
	f := newAssetFixture()
	userID := uuid.New()
	projectID := uuid.New()
	asset := &models.Asset{ID: uuid.New(), LocationID: f.locationID, Status: models.AssetAssigned, AssignedProjectID: &projectID}

	f.db.On("GetAsset", mock.Anything, asset.ID).Return(asset, nil)
	f.db.On("IsProjectMember", mock.Anything, projectID, userID).Return(true, nil)
	f.db.On("IsProjectMember", mock.Anything, projectID, mock.Anything).Return(false, nil)

	get := func(role models.Role, caller uuid.UUID, loc *uuid.UUID) int {
		r := httptest.NewRequest(http.MethodGet, "/api/assets/"+asset.ID.String(), nil)
		r = mux.SetURLVars(r, map[string]string{"asset-id": asset.ID.String()})
		r = withClaims(r, role, caller, loc)
		w := httptest.NewRecorder()
		f.svc.GetAssetService(w, r)
		return w.Code
	}

	otherLocation := uuid.New()
	assert.Equal(t, http.StatusOK, get(models.RoleUser, userID, nil))
	assert.Equal(t, http.StatusNotFound, get(models.RoleUser, uuid.New(), nil))
	assert.Equal(t, http.StatusOK, get(models.RoleAdmin, uuid.New(), &f.locationID))
	assert.Equal(t, http.StatusNotFound, get(models.RoleAdmin, uuid.New(), &otherLocation))
	assert.Equal(t, http.StatusOK, get(models.RoleSuperuser, uuid.New(), nil))
}

func TestAssignAssetService(t *testing.T) {
	f := newAssetFixture()
	adminID := uuid.New()
	userID := uuid.New()
	projectID := uuid.New()
	asset := &models.Asset{ID: uuid.New(), StickerSeq: "HO/LAP/0007", LocationID: f.locationID, Status: models.AssetAvailable}

	f.db.On("GetAsset", mock.Anything, asset.ID).Return(asset, nil)
	f.db.On("GetUser", mock.Anything, userID).Return(&models.User{ID: userID}, nil)

	assign := func(req models.AssignRequest) int {
		r := jsonRequest(t, http.MethodPost, "/api/assets/"+asset.ID.String()+"/assign", req)
		r = mux.SetURLVars(r, map[string]string{"asset-id": asset.ID.String()})
		r = withClaims(r, models.RoleSuperuser, adminID, nil)
		w := httptest.NewRecorder()
		f.svc.AssignAssetService(w, r)
		return w.Code
	}

	// Exactly one assignee is required
	assert.Equal(t, http.StatusBadRequest, assign(models.AssignRequest{}))
	assert.Equal(t, http.StatusBadRequest, assign(models.AssignRequest{UserID: &userID, ProjectID: &projectID}))

	kind := models.AssignedToUser
	f.db.On("AssignAsset", mock.Anything, asset.ID, models.AssignRequest{UserID: &userID}, adminID).
		Return(&models.Asset{ID: asset.ID, StickerSeq: asset.StickerSeq, Status: models.AssetAssigned,
			AssignmentType: &kind, AssignedUserID: &userID}, nil).Once()
	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e events.AssetEvent) bool {
		return e.Type == events.AssetAssigned && e.UserID != nil && *e.UserID == userID
	})).Return(nil).Once()
	assert.Equal(t, http.StatusOK, assign(models.AssignRequest{UserID: &userID}))

	f.db.On("AssignAsset", mock.Anything, asset.ID, models.AssignRequest{UserID: &userID}, adminID).
		Return(nil, models.ErrAlreadyAssigned).Once()
	assert.Equal(t, http.StatusConflict, assign(models.AssignRequest{UserID: &userID}))

	f.notifier.AssertExpectations(t)
}

func TestDisposeAssetService_Conflict(t *testing.T) {
	f := newAssetFixture()
	asset := &models.Asset{ID: uuid.New(), LocationID: f.locationID, Status: models.AssetDisposed}
	f.db.On("GetAsset", mock.Anything, asset.ID).Return(asset, nil)
	f.db.On("DisposeAsset", mock.Anything, asset.ID, mock.Anything).Return(nil, models.ErrDisposed)

	r := httptest.NewRequest(http.MethodPost, "/api/assets/"+asset.ID.String()+"/dispose", nil)
	r = mux.SetURLVars(r, map[string]string{"asset-id": asset.ID.String()})
	r = withClaims(r, models.RoleSuperuser, uuid.New(), nil)
	w := httptest.NewRecorder()
	f.svc.DisposeAssetService(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp models.Response
	decodeBody(t, w, &resp)
	assert.Equal(t, models.ErrDisposed.Error(), resp.ErrorDetails)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestGetAssetInvoiceService(t *testing.T) {
	f := newAssetFixture()
	invoices := new(MockInvoices)
	f.svc.Invoices = invoices

	key := "invoices/assets/a/invoice.pdf"
	withInvoice := &models.Asset{ID: uuid.New(), LocationID: f.locationID, InvoiceKey: &key}
	withoutInvoice := &models.Asset{ID: uuid.New(), LocationID: f.locationID}
	f.db.On("GetAsset", mock.Anything, withInvoice.ID).Return(withInvoice, nil)
	f.db.On("GetAsset", mock.Anything, withoutInvoice.ID).Return(withoutInvoice, nil)

	expires := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	invoices.On("PresignURL", mock.Anything, key).Return("https://bucket.s3/presigned", expires, nil)

	get := func(id uuid.UUID) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/api/assets/"+id.String()+"/invoice", nil)
		r = mux.SetURLVars(r, map[string]string{"asset-id": id.String()})
		r = withClaims(r, models.RoleSuperuser, uuid.New(), nil)
		w := httptest.NewRecorder()
		f.svc.GetAssetInvoiceService(w, r)
		return w
	}

	w := get(withInvoice.ID)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.InvoiceResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "https://bucket.s3/presigned", resp.URL)
	assert.Equal(t, "2025-01-01T12:00:00Z", resp.ExpiresAt)

	assert.Equal(t, http.StatusNotFound, get(withoutInvoice.ID).Code)
}

func multipartAssetRequest(t *testing.T, method, target string, req models.AssetRequest, filename string, content []byte) *http.Request {
	t.Helper()
	data, err := json.Marshal(req)
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("data", string(data)))
	part, err := mw.CreateFormFile("invoice", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(method, target, &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestUpdateAssetService(t *testing.T) {
	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")

	tests := []struct {
		name     string
		status   models.AssetStatus
		role     models.Role
		mutate   func(f *assetFixture, req *models.AssetRequest)
		invoice  bool
		expected int
	}{
		{name: "edit keeps sticker", status: models.AssetAvailable, role: models.RoleSuperuser, expected: http.StatusOK},
		{name: "edit with new invoice", status: models.AssetAssigned, role: models.RoleAdmin, invoice: true, expected: http.StatusOK},
		{name: "disposed", status: models.AssetDisposed, role: models.RoleSuperuser, expected: http.StatusConflict},
		{name: "disposed with invoice", status: models.AssetDisposed, role: models.RoleSuperuser, invoice: true, expected: http.StatusConflict},
		{
			name: "admin moves asset away", status: models.AssetAvailable, role: models.RoleAdmin,
			mutate:   func(f *assetFixture, req *models.AssetRequest) { req.LocationID = uuid.New() },
			expected: http.StatusForbidden,
		},
		{
			name: "invalid salvage", status: models.AssetAvailable, role: models.RoleSuperuser,
			mutate:   func(f *assetFixture, req *models.AssetRequest) { req.SalvageValue = decimal.NewFromInt(5000) },
			expected: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAssetFixture()
			invoices := new(MockInvoices)
			f.svc.Invoices = invoices
			callerID := uuid.New()

			oldKey := "invoices/assets/old.pdf"
			current := &models.Asset{ID: uuid.New(), Name: "ThinkPad", StickerSeq: "HO/LAP/0001",
				LocationID: f.locationID, Status: tt.status, InvoiceKey: &oldKey}
			f.db.On("GetAsset", mock.Anything, current.ID).Return(current, nil)

			req := f.request()
			req.Name = "ThinkPad X1 Carbon"
			if tt.mutate != nil {
				tt.mutate(f, &req)
			}

			target := "/api/assets/" + current.ID.String()
			var r *http.Request
			if tt.invoice {
				r = multipartAssetRequest(t, http.MethodPut, target, req, "receipt.pdf", pdf)
			} else {
				// A sticker in the body is ignored
				payload := map[string]interface{}{}
				raw, err := json.Marshal(req)
				require.NoError(t, err)
				require.NoError(t, json.Unmarshal(raw, &payload))
				payload["sticker_seq"] = "XX/YY/9999"
				r = jsonRequest(t, http.MethodPut, target, payload)
			}
			r = mux.SetURLVars(r, map[string]string{"asset-id": current.ID.String()})
			r = withClaims(r, tt.role, callerID, &f.locationID)

			newKey := "invoices/assets/" + current.ID.String() + "/receipt.pdf"
			if tt.expected == http.StatusOK {
				if tt.invoice {
					invoices.On("Upload", mock.Anything, current.ID, "receipt.pdf", "application/pdf", mock.Anything).Return(newKey, nil)
				}
				f.db.On("UpdateAsset", mock.Anything, mock.MatchedBy(func(a *models.Asset) bool {
					if a.ID != current.ID || a.StickerSeq != "" || a.Name != "ThinkPad X1 Carbon" {
						return false
					}
					if tt.invoice {
						return a.InvoiceKey != nil && *a.InvoiceKey == newKey
					}
					return a.InvoiceKey == nil
				}), callerID).Run(func(args mock.Arguments) {
					a := args.Get(1).(*models.Asset)
					a.StickerSeq = current.StickerSeq
					if a.InvoiceKey == nil {
						a.InvoiceKey = current.InvoiceKey
					}
				}).Return(nil)
				f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e events.AssetEvent) bool {
					return e.Type == events.AssetUpdated && e.Sticker == current.StickerSeq
				})).Return(nil)
			}

			w := httptest.NewRecorder()
			f.svc.UpdateAssetService(w, r)

			assert.Equal(t, tt.expected, w.Code)
			if tt.expected != http.StatusOK {
				f.db.AssertNotCalled(t, "UpdateAsset", mock.Anything, mock.Anything, mock.Anything)
				invoices.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
				return
			}

			var updated models.Asset
			decodeBody(t, w, &updated)
			assert.Equal(t, "HO/LAP/0001", updated.StickerSeq)
			require.NotNil(t, updated.InvoiceKey)
			if tt.invoice {
				assert.Equal(t, newKey, *updated.InvoiceKey)
			} else {
				assert.Equal(t, oldKey, *updated.InvoiceKey)
			}
			f.db.AssertExpectations(t)
			invoices.AssertExpectations(t)
		})
	}
}

func TestUnassignAssetService(t *testing.T) {
	f := newAssetFixture()
	callerID, userID := uuid.New(), uuid.New()
	kind := models.AssignedToUser
	assigned := &models.Asset{ID: uuid.New(), StickerSeq: "HO/LAP/0003", LocationID: f.locationID,
		Status: models.AssetAssigned, AssignmentType: &kind, AssignedUserID: &userID}
	available := &models.Asset{ID: uuid.New(), StickerSeq: "HO/LAP/0004", LocationID: f.locationID, Status: models.AssetAvailable}

	f.db.On("GetAsset", mock.Anything, assigned.ID).Return(assigned, nil)
	f.db.On("GetAsset", mock.Anything, available.ID).Return(available, nil)
	f.db.On("UnassignAsset", mock.Anything, assigned.ID, callerID).
		Return(&models.Asset{ID: assigned.ID, StickerSeq: assigned.StickerSeq, Status: models.AssetAvailable}, nil)
	f.db.On("UnassignAsset", mock.Anything, available.ID, callerID).Return(nil, models.ErrNotAssigned)
	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e events.AssetEvent) bool {
		return e.Type == events.AssetUnassigned && e.UserID != nil && *e.UserID == userID
	})).Return(nil).Once()

	unassign := func(id uuid.UUID) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/assets/"+id.String()+"/unassign", nil)
		r = mux.SetURLVars(r, map[string]string{"asset-id": id.String()})
		r = withClaims(r, models.RoleAdmin, callerID, &f.locationID)
		w := httptest.NewRecorder()
		f.svc.UnassignAssetService(w, r)
		return w
	}

	w := unassign(assigned.ID)
	assert.Equal(t, http.StatusOK, w.Code)
	var got models.Asset
	decodeBody(t, w, &got)
	assert.Equal(t, models.AssetAvailable, got.Status)

	w = unassign(available.ID)
	assert.Equal(t, http.StatusConflict, w.Code)
	var resp models.Response
	decodeBody(t, w, &resp)
	assert.Equal(t, models.ErrNotAssigned.Error(), resp.ErrorDetails)

	f.notifier.AssertExpectations(t)
}

func TestGetAssetHistoryService(t *testing.T) {
	f := newAssetFixture()
	actor := uuid.New()
	asset := &models.Asset{ID: uuid.New(), LocationID: f.locationID}
	history := []models.AssetHistory{
		{ID: uuid.New(), AssetID: asset.ID, Action: "created", ActorID: &actor},
		{ID: uuid.New(), AssetID: asset.ID, Action: "assigned", ActorID: &actor, Details: "user"},
	}
	f.db.On("GetAsset", mock.Anything, asset.ID).Return(asset, nil)
	f.db.On("AssetHistory", mock.Anything, asset.ID).Return(history, nil)

	get := func(loc *uuid.UUID) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/api/assets/"+asset.ID.String()+"/history", nil)
		r = mux.SetURLVars(r, map[string]string{"asset-id": asset.ID.String()})
		r = withClaims(r, models.RoleAdmin, uuid.New(), loc)
		w := httptest.NewRecorder()
		f.svc.GetAssetHistoryService(w, r)
		return w
	}

	w := get(&f.locationID)
	assert.Equal(t, http.StatusOK, w.Code)
	var got []models.AssetHistory
	decodeBody(t, w, &got)
	require.Len(t, got, 2)
	assert.Equal(t, "created", got[0].Action)
	assert.Equal(t, "assigned", got[1].Action)

	otherLocation := uuid.New()
	assert.Equal(t, http.StatusNotFound, get(&otherLocation).Code)
	f.db.AssertNumberOfCalls(t, "AssetHistory", 1)
}

func TestSuggestAssetsService(t *testing.T) {
	mk := func(label string) models.Suggestion {
		return models.Suggestion{ID: uuid.New(), Label: label}
	}
	substring := mk("AB/IT/0001 HQ spare monitor")
	prefix := mk("HQ/IT/0002 Monitor")
	candidates := []models.Suggestion{substring, prefix}

	tests := []struct {
		name     string
		role     models.Role
		query    string
		limit    int
		expected []models.Suggestion
	}{
		{"prefix before substring", models.RoleSuperuser, "q=hq", 10, []models.Suggestion{prefix, substring}},
		{"limit", models.RoleSuperuser, "q=hq&limit=1", 1, []models.Suggestion{prefix}},
		{"user sees held assets", models.RoleUser, "q=HQ", 10, []models.Suggestion{prefix, substring}},
		{"admin scoped", models.RoleAdmin, "q=hq", 10, []models.Suggestion{prefix, substring}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAssetFixture()
			callerID := uuid.New()

			f.db.On("SuggestAssets", mock.Anything, mock.Anything, mock.MatchedBy(func(filter models.AssetFilter) bool {
				switch tt.role {
				case models.RoleUser:
					return filter.HolderID != nil && *filter.HolderID == callerID && filter.LocationID == nil
				case models.RoleAdmin:
					return filter.HolderID == nil && filter.LocationID != nil && *filter.LocationID == f.locationID
				}
				return filter.HolderID == nil && filter.LocationID == nil
			}), tt.limit).Return(candidates, nil)

			r := httptest.NewRequest(http.MethodGet, "/api/assets/suggest?"+tt.query, nil)
			r = withClaims(r, tt.role, callerID, &f.locationID)
			w := httptest.NewRecorder()
			f.svc.SuggestAssetsService(w, r)

			assert.Equal(t, http.StatusOK, w.Code)
			var got []models.Suggestion
			decodeBody(t, w, &got)
			assert.Equal(t, tt.expected, got)
			f.db.AssertExpectations(t)
		})
	}
}

func TestSuggestAssetsService_EmptyQuery(t *testing.T) {
	f := newAssetFixture()
	for _, query := range []string{"", "q=", "q=%20%20"} {
		r := httptest.NewRequest(http.MethodGet, "/api/assets/suggest?"+query, nil)
		r = withClaims(r, models.RoleSuperuser, uuid.New(), nil)
		w := httptest.NewRecorder()
		f.svc.SuggestAssetsService(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	}
	f.db.AssertNotCalled(t, "SuggestAssets", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
