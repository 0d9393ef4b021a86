package v1

import (
	"net/http"

	"prosalon-backend/internal/domain"
	"prosalon-backend/internal/usecase"
	"prosalon-backend/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

var validate = validator.New()

// AdminHandler hosts the write side of the catalog. All routes are
// admin-gated; responses here expose raw price pairs.
type AdminHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewAdminHandler(uc *usecase.CatalogUsecase) *AdminHandler {
	return &AdminHandler{catalogUC: uc}
}

type productRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=255"`
	Description string   `json:"description"`
	SKU         string   `json:"sku" validate:"max=64"`
	RetailPrice float64  `json:"retailPrice" validate:"required,gt=0"`
	DealerPrice *float64 `json:"dealerPrice" validate:"omitempty,gt=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	CategoryID  string   `json:"categoryId" validate:"required"`
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		RetailPrice: req.RetailPrice,
		DealerPrice: req.DealerPrice,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	}
	if err := h.catalogUC.CreateProduct(r.Context(), product); err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "product id required")
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	product := &domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		RetailPrice: req.RetailPrice,
		DealerPrice: req.DealerPrice,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	}
	if err := h.catalogUC.UpdateProduct(r.Context(), product); err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "product id required")
		return
	}
	if err := h.catalogUC.DeleteProduct(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// GetProductRaw returns the stored product with both prices, for the admin
// edit form.
func (h *AdminHandler) GetProductRaw(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "product id required")
		return
	}
	product, err := h.catalogUC.GetProductRaw(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

type categoryRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=255"`
	Level    int     `json:"level" validate:"gte=0,lte=2"`
	ParentID *string `json:"parentId"`
}

func (h *AdminHandler) ListCategoriesFlat(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogUC.GetCategoriesFlat(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, categories)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	category := &domain.Category{
		Name:     req.Name,
		Level:    req.Level,
		ParentID: req.ParentID,
	}
	if err := h.catalogUC.CreateCategory(r.Context(), category); err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, category)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "category id required")
		return
	}
	if err := h.catalogUC.DeleteCategory(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
