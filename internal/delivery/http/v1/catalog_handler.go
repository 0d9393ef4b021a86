package v1

import (
	"net/http"

	"prosalon-backend/internal/catalog"
	"prosalon-backend/internal/domain"
	"prosalon-backend/internal/usecase"
	"prosalon-backend/pkg/utils"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: uc}
}

func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	tree, err := h.catalogUC.GetCategoryTree(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, tree)
}

// ResolveCategory resolves a token to a canonical node with its ancestor
// path. When resolution fails the response still carries a derived display
// label, flagged so callers can tell it apart from a canonical match.
func (h *CatalogHandler) ResolveCategory(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.WriteError(w, http.StatusBadRequest, "token is required")
		return
	}

	path, ok, err := h.catalogUC.ResolveCategory(r.Context(), token)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if !ok {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"resolved": false,
			"label":    catalog.DisplayLabel(token),
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"resolved":  true,
		"node":      path.Node,
		"ancestors": path.Ancestors,
	})
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := domain.ProductFilter{
		CategoryToken:          query.Get("category"),
		SubcategoryToken:       query.Get("subcategory"),
		SecondSubcategoryToken: query.Get("secondSubcategory"),
		Search:                 query.Get("search"),
		MinPrice:               utils.ParseFloatPtr(query.Get("minPrice")),
		MaxPrice:               utils.ParseFloatPtr(query.Get("maxPrice")),
		Page:                   utils.ParseInt(query.Get("page"), 1),
		PageSize:               utils.ParseInt(query.Get("limit"), 0),
	}

	products, pagination, err := h.catalogUC.ListProducts(r.Context(), filter, audienceFor(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"products":   products,
		"pagination": pagination,
	})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "product id required")
		return
	}

	product, err := h.catalogUC.GetProduct(r.Context(), id, audienceFor(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}
