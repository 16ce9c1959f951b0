package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/db"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/authn"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/events"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/search"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MaxInvoiceSize is the largest invoice file accepted with an asset.
const MaxInvoiceSize = 10 << 20

var invoiceTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
}

type invoiceUpload struct {
	filename    string
	contentType string
	data        []byte
}

// readAssetRequest decodes either a JSON body or a multipart form with a
// "data" JSON part and an optional "invoice" file.
func readAssetRequest(w http.ResponseWriter, r *http.Request) (models.AssetRequest, *invoiceUpload, error) {
	var req models.AssetRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return req, nil, decodeJSON(r, &req)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxInvoiceSize+1<<20)
	if err := r.ParseMultipartForm(MaxInvoiceSize); err != nil {
		return req, nil, invalid("invoice must not exceed 10 MiB")
	}

	data := r.FormValue("data")
	if data == "" {
		return req, nil, invalid("data is required")
	}
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		return req, nil, invalid("malformed request body")
	}

	file, header, err := r.FormFile("invoice")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil, nil
	}
	if err != nil {
		return req, nil, invalid("invoice could not be read")
	}
	defer file.Close()

	if header.Size > MaxInvoiceSize {
		return req, nil, invalid("invoice must not exceed 10 MiB")
	}
	body, err := io.ReadAll(io.LimitReader(file, MaxInvoiceSize+1))
	if err != nil {
		return req, nil, fmt.Errorf("error reading invoice: %w", err)
	}
	if len(body) > MaxInvoiceSize {
		return req, nil, invalid("invoice must not exceed 10 MiB")
	}

	contentType := http.DetectContentType(body)
	if !invoiceTypes[contentType] {
		return req, nil, invalid("invoice must be a PDF, PNG or JPEG file")
	}

	return req, &invoiceUpload{
		filename:    path.Base(header.Filename),
		contentType: contentType,
		data:        body,
	}, nil
}

// assetFromRequest validates the asset form against the catalogue and the
// caller's scope.
func (svc *Service) assetFromRequest(ctx context.Context, claims authn.Claims, req models.AssetRequest) (*models.Asset, error) {
	as := &models.Asset{
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		CategoryID:   req.CategoryID,
		VendorID:     req.VendorID,
		LocationID:   req.LocationID,
		ProgrammeID:  req.ProgrammeID,
		Price:        req.Price,
		SalvageValue: req.SalvageValue,
	}

	if err := required(map[string]string{"name": as.Name, "purchase_date": req.PurchaseDate}); err != nil {
		return nil, err
	}
	if as.CategoryID == uuid.Nil || as.LocationID == uuid.Nil {
		return nil, invalid("category_id and location_id are required")
	}

	purchased, err := parseDate("purchase_date", req.PurchaseDate)
	if err != nil {
		return nil, err
	}
	if purchased.After(time.Now().UTC()) {
		return nil, invalid("purchase_date cannot be in the future")
	}
	as.PurchaseDate = purchased

	if as.Price.IsNegative() {
		return nil, invalid("price must not be negative")
	}
	if as.SalvageValue.IsNegative() || as.SalvageValue.GreaterThan(as.Price) {
		return nil, invalid("salvage_value must be between 0 and price")
	}

	if !inScope(claims, as.LocationID) {
		return nil, fmt.Errorf("%w: admins may only manage assets in their own location", models.ErrForbidden)
	}

	if c, err := svc.DB.GetCategory(ctx, as.CategoryID); err != nil {
		return nil, err
	} else if c == nil {
		return nil, invalid("category does not exist")
	}
	if l, err := svc.DB.GetLocation(ctx, as.LocationID); err != nil {
		return nil, err
	} else if l == nil {
		return nil, invalid("location does not exist")
	}
	if as.VendorID != nil {
		if v, err := svc.DB.GetVendor(ctx, *as.VendorID); err != nil {
			return nil, err
		} else if v == nil {
			return nil, invalid("vendor does not exist")
		}
	}
	if as.ProgrammeID != nil {
		if p, err := svc.DB.GetProgramme(ctx, *as.ProgrammeID); err != nil {
			return nil, err
		} else if p == nil {
			return nil, invalid("programme does not exist")
		}
	}

	return as, nil
}

func (svc *Service) uploadInvoice(ctx context.Context, assetID uuid.UUID, inv *invoiceUpload) (string, error) {
	if svc.Invoices == nil {
		return "", invalid("invoice uploads are not enabled")
	}
	return svc.Invoices.Upload(ctx, assetID, inv.filename, inv.contentType, bytes.NewReader(inv.data))
}

// CreateAssetService registers an asset and allocates its sticker.
func (svc *Service) CreateAssetService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, callerID, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	req, invoice, err := readAssetRequest(w, r)
	if err != nil {
		HandleError(w, r, err, "Invalid request payload")
		return
	}
	if claims.Role == models.RoleAdmin && req.LocationID == uuid.Nil && claims.LocationID != nil {
		req.LocationID = *claims.LocationID
	}

	as, err := svc.assetFromRequest(r.Context(), claims, req)
	if err != nil {
		HandleError(w, r, err, "Invalid asset")
		return
	}
	as.ID = uuid.New()
	as.CreatedBy = callerID

	// The invoice goes up first so the row never points at a missing object
	if invoice != nil {
		key, err := svc.uploadInvoice(r.Context(), as.ID, invoice)
		if err != nil {
			HandleError(w, r, err, "Failed to upload invoice")
			return
		}
		as.InvoiceKey = &key
	}

	if err := svc.DB.CreateAsset(r.Context(), as); err != nil {
		HandleError(w, r, err, "Failed to create asset in database")
		return
	}

	logger.Info().Str("asset_id", as.ID.String()).Str("sticker", as.StickerSeq).Msg("Asset created successfully")
	svc.notify(r.Context(), events.NewAssetEvent(events.AssetCreated, as.ID, as.StickerSeq, callerID))

	WriteResponse(w, http.StatusCreated, *as, fmt.Sprintf("%s/%s", r.URL.Path, as.ID))
}

// assetFilter reads the listing filters and confines them to the caller.
func assetFilter(r *http.Request, claims authn.Claims, callerID uuid.UUID) (models.AssetFilter, error) {
	q := r.URL.Query()
	f := models.AssetFilter{
		Search: q.Get("q"),
		Status: models.AssetStatus(q.Get("status")),
	}
	if f.Status != "" && !f.Status.Valid() {
		return f, invalid("unknown status %q", f.Status)
	}

	var err error
	for name, dest := range map[string]**uuid.UUID{
		"category_id":         &f.CategoryID,
		"location_id":         &f.LocationID,
		"programme_id":        &f.ProgrammeID,
		"assigned_user_id":    &f.AssignedUserID,
		"assigned_project_id": &f.AssignedProjectID,
	} {
		if *dest, err = queryID(r, name); err != nil {
			return f, err
		}
	}

	if f.SortBy, f.SortDesc, err = search.ParseSort(q.Get("sort"), db.AssetSortColumns, "created_at"); err != nil {
		return f, err
	}
	if q.Get("sort") == "" {
		f.SortDesc = true
	}

	switch claims.Role {
	case models.RoleAdmin:
		f.LocationID = locationScope(claims)
	case models.RoleUser:
		f.HolderID = &callerID
	}
	return f, nil
}

// GetAssetsService lists assets visible to the caller.
func (svc *Service) GetAssetsService(w http.ResponseWriter, r *http.Request) {

	claims, callerID, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	p, err := svc.page(r)
	if err != nil {
		HandleError(w, r, err, "Invalid pagination")
		return
	}

	f, err := assetFilter(r, claims, callerID)
	if err != nil {
		HandleError(w, r, err, "Invalid asset filter")
		return
	}
	f.Limit = p.Limit
	f.Offset = p.Offset

	assets, total, err := svc.DB.ListAssets(r.Context(), f)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve assets from database")
		return
	}

	zerolog.Ctx(r.Context()).Info().Int("asset_count", len(assets)).Msg("Successfully retrieved assets")
	WriteResponse(w, http.StatusOK, listResponse(assets, total, p))
}

// SuggestAssetsService backs the asset autocomplete box.
func (svc *Service) SuggestAssetsService(w http.ResponseWriter, r *http.Request) {

	claims, callerID, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	q := r.URL.Query().Get("q")
	limit, err := search.ParseLimit(r.URL.Query().Get("limit"), search.DefaultSuggestLimit)
	if err != nil {
		HandleError(w, r, err, "Invalid suggestion limit")
		return
	}
	if search.Normalize(q) == "" {
		WriteResponse(w, http.StatusOK, []models.Suggestion{})
		return
	}

	f := models.AssetFilter{LocationID: locationScope(claims)}
	if claims.Role == models.RoleUser {
		f.HolderID = &callerID
	}

	candidates, err := svc.DB.SuggestAssets(r.Context(), q, f, limit)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve asset suggestions")
		return
	}

	WriteResponse(w, http.StatusOK, search.RankSuggestions(q, candidates, limit))
}

// canView reports whether the caller may see the asset.
func (svc *Service) canView(ctx context.Context, claims authn.Claims, callerID uuid.UUID, as *models.Asset) (bool, error) {
	switch claims.Role {
	case models.RoleSuperuser:
		return true, nil
	case models.RoleAdmin:
		return inScope(claims, as.LocationID), nil
	}

	if as.AssignedUserID != nil && *as.AssignedUserID == callerID {
		return true, nil
	}
	if as.AssignedProjectID != nil {
		return svc.DB.IsProjectMember(ctx, *as.AssignedProjectID, callerID)
	}
	return false, nil
}

// loadAsset fetches the asset named in the route and checks visibility.
func (svc *Service) loadAsset(r *http.Request, claims authn.Claims, callerID uuid.UUID) (*models.Asset, error) {
	id, err := pathID(r, "asset-id")
	if err != nil {
		return nil, err
	}

	as, err := svc.DB.GetAsset(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if as == nil {
		return nil, models.ErrNotFound
	}

	ok, err := svc.canView(r.Context(), claims, callerID, as)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Out of scope assets are reported as missing
		return nil, models.ErrNotFound
	}
	return as, nil
}

func (svc *Service) GetAssetService(w http.ResponseWriter, r *http.Request) {

	claims, callerID, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	as, err := svc.loadAsset(r, claims, callerID)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve asset")
		return
	}

	WriteResponse(w, http.StatusOK, *as)
}

// UpdateAssetService edits an asset. The sticker never changes.
func (svc *Service) UpdateAssetService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, callerID, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	current, err := svc.loadAsset(r, claims, callerID)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve asset")
		return
	}
	if current.Status == models.AssetDisposed {
		HandleError(w, r, models.ErrDisposed, "Disposed assets cannot be edited")
		return
	}

	req, invoice, err := readAssetRequest(w, r)
	if err != nil {
		HandleError(w, r, err, "Invalid request payload")
		return
	}

	as, err := svc.assetFromRequest(r.Context(), claims, req)
	if err != nil {
		HandleError(w, r, err, "Invalid asset")
		return
	}
	as.ID = current.ID

	// The key is stored by UpdateAsset, after the row lock and status check
	if invoice != nil {
		key, err := svc.uploadInvoice(r.Context(), as.ID, invoice)
		if err != nil {
			HandleError(w, r, err, "Failed to upload invoice")
			return
		}
		as.InvoiceKey = &key
	}

	if err := svc.DB.UpdateAsset(r.Context(), as, callerID); err != nil {
		HandleError(w, r, err, "Failed to update asset")
		return
	}

	logger.Info().Str("asset_id", as.ID.String()).Msg("Asset updated successfully")
	svc.notify(r.Context(), events.NewAssetEvent(events.AssetUpdated, as.ID, as.StickerSeq, callerID))

	WriteResponse(w, http.StatusOK, *as)
}

// GetAssetHistoryService returns the audit trail of an asset.
func (svc *Service) GetAssetHistoryService(w http.ResponseWriter, r *http.Request) {

	claims, callerID, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	as, err := svc.loadAsset(r, claims, callerID)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve asset")
		return
	}

	history, err := svc.DB.AssetHistory(r.Context(), as.ID)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve asset history")
		return
	}

	WriteResponse(w, http.StatusOK, history)
}

// GetAssetInvoiceService returns a short lived download link for the invoice.
func (svc *Service) GetAssetInvoiceService(w http.ResponseWriter, r *http.Request) {

	claims, callerID, ok := claimsFrom(r)
	if !ok {
		unauthorized(w, r)
		return
	}

	as, err := svc.loadAsset(r, claims, callerID)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve asset")
		return
	}
	if as.InvoiceKey == nil || svc.Invoices == nil {
		HandleError(w, r, fmt.Errorf("%w: asset has no invoice", models.ErrNotFound), "No invoice for asset")
		return
	}

	url, expires, err := svc.Invoices.PresignURL(r.Context(), *as.InvoiceKey)
	if err != nil {
		HandleError(w, r, err, "Failed to presign invoice")
		return
	}

	WriteResponse(w, http.StatusOK, models.InvoiceResponse{URL: url, ExpiresAt: expires.UTC().Format(time.RFC3339)})
}
