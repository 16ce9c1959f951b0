package services

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/sticker"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var maxRate = decimal.NewFromInt(100)

func validateCategory(c *models.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	c.StickerShortCode = strings.ToUpper(strings.TrimSpace(c.StickerShortCode))

	if err := required(map[string]string{"name": c.Name, "sticker_short_code": c.StickerShortCode}); err != nil {
		return err
	}
	if !sticker.ValidShortCode(c.StickerShortCode) {
		return invalid("sticker_short_code must be 2 to 5 letters or digits")
	}
	if c.DepreciationRate.IsNegative() || c.DepreciationRate.GreaterThan(maxRate) {
		return invalid("depreciation_rate must be between 0 and 100")
	}
	if c.UsefulLifeYears <= 0 {
		return invalid("useful_life_years must be greater than 0")
	}
	return nil
}

func (svc *Service) CreateCategoryService(w http.ResponseWriter, r *http.Request) {

	var c models.Category
	if err := decodeJSON(r, &c); err != nil {
		HandleError(w, r, err, "Invalid request payload")
		return
	}
	c.ID = uuid.Nil

	if err := validateCategory(&c); err != nil {
		HandleError(w, r, err, "Invalid category")
		return
	}
	if err := svc.DB.CreateCategory(r.Context(), &c); err != nil {
		HandleError(w, r, err, "Failed to create category in database")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("category_id", c.ID.String()).Msg("Category created successfully")
	WriteResponse(w, http.StatusCreated, c, fmt.Sprintf("%s/%s", r.URL.Path, c.ID))
}

func (svc *Service) GetCategoriesService(w http.ResponseWriter, r *http.Request) {

	q, p, err := svc.listQuery(r)
	if err != nil {
		HandleError(w, r, err, "Invalid pagination")
		return
	}

	categories, total, err := svc.DB.ListCategories(r.Context(), q, p.Limit, p.Offset)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve categories from database")
		return
	}

	WriteResponse(w, http.StatusOK, listResponse(categories, total, p))
}

func (svc *Service) GetCategoryService(w http.ResponseWriter, r *http.Request) {

	id, err := pathID(r, "category-id")
	if err != nil {
		HandleError(w, r, err, "Invalid category id")
		return
	}

	c, err := svc.DB.GetCategory(r.Context(), id)
	if err != nil {
		HandleError(w, r, err, "Failed to retrieve category")
		return
	}
	if c == nil {
		HandleError(w, r, models.ErrNotFound, "Category not found")
		return
	}

	WriteResponse(w, http.StatusOK, *c)
}

func (svc *Service) UpdateCategoryService(w http.ResponseWriter, r *http.Request) {

	id, err := pathID(r, "category-id")
	if err != nil {
		HandleError(w, r, err, "Invalid category id")
		return
	}

	var c models.Category
	if err := decodeJSON(r, &c); err != nil {
		HandleError(w, r, err, "Invalid request payload")
		return
	}
	c.ID = id

	if err := validateCategory(&c); err != nil {
		HandleError(w, r, err, "Invalid category")
		return
	}
	if err := svc.DB.UpdateCategory(r.Context(), &c); err != nil {
		HandleError(w, r, err, "Failed to update category")
		return
	}

	updated, err := svc.DB.GetCategory(r.Context(), id)
	if err != nil || updated == nil {
		HandleError(w, r, fmt.Errorf("error reloading category: %v", err), "Failed to reload category")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("category_id", id.String()).Msg("Category updated successfully")
	WriteResponse(w, http.StatusOK, *updated)
}

func (svc *Service) DeleteCategoryService(w http.ResponseWriter, r *http.Request) {

	id, err := pathID(r, "category-id")
	if err != nil {
		HandleError(w, r, err, "Invalid category id")
		return
	}

	if err := svc.DB.DeleteCategory(r.Context(), id); err != nil {
		HandleError(w, r, err, "Failed to delete category")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("category_id", id.String()).Msg("Category deleted successfully")
	WriteResponse(w, http.StatusNoContent, nil)
}
