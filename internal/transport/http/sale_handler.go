package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/queries/get_sale"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/add_sale_products"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/remove_sale_products"
)

// SaleHandler serves the sale participation endpoints. Sales themselves are
// provisioned by the admin pipeline; sellers only opt listings in and out.
type SaleHandler struct {
	addProducts    *add_sale_products.Interactor
	removeProducts *remove_sale_products.Interactor
	getSale        *get_sale.Query
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(
	addProducts *add_sale_products.Interactor,
	removeProducts *remove_sale_products.Interactor,
	getSale *get_sale.Query,
) *SaleHandler {
	return &SaleHandler{
		addProducts:    addProducts,
		removeProducts: removeProducts,
		getSale:        getSale,
	}
}

// Routes mounts the sale endpoints.
func (h *SaleHandler) Routes(r chi.Router) {
	r.Get("/{saleID}", h.handleGet)
	r.Post("/{saleID}/products", h.handleAddProducts)
	r.Delete("/{saleID}/products", h.handleRemoveProducts)
}

type saleProductsRequest struct {
	ProductIDs []string `json:"productIds"`
}

type removeSaleProductsResponse struct {
	RemovedProducts  []string `json:"removedProducts"`
	NotFoundProducts []string `json:"notFoundProducts"`
	RemovedBundles   []string `json:"removedBundles"`
	UpdatedBundles   []string `json:"updatedBundles"`
}

func (h *SaleHandler) handleAddProducts(w http.ResponseWriter, r *http.Request) {
	var body saleProductsRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		renderBadRequest(w, r, "malformed request body")
		return
	}

	err := h.addProducts.Execute(r.Context(), &add_sale_products.Request{
		CallerID:   CallerID(r.Context()),
		SaleID:     chi.URLParam(r, "saleID"),
		ProductIDs: body.ProductIDs,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (h *SaleHandler) handleRemoveProducts(w http.ResponseWriter, r *http.Request) {
	var body saleProductsRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		renderBadRequest(w, r, "malformed request body")
		return
	}

	resp, err := h.removeProducts.Execute(r.Context(), &remove_sale_products.Request{
		CallerID:   CallerID(r.Context()),
		SaleID:     chi.URLParam(r, "saleID"),
		ProductIDs: body.ProductIDs,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := &removeSaleProductsResponse{
		RemovedProducts:  resp.RemovedProducts,
		NotFoundProducts: resp.NotFoundProducts,
		RemovedBundles:   resp.RemovedBundles,
		UpdatedBundles:   resp.UpdatedBundles,
	}
	if out.RemovedProducts == nil {
		out.RemovedProducts = []string{}
	}
	if out.NotFoundProducts == nil {
		out.NotFoundProducts = []string{}
	}
	if out.RemovedBundles == nil {
		out.RemovedBundles = []string{}
	}
	if out.UpdatedBundles == nil {
		out.UpdatedBundles = []string{}
	}
	render.JSON(w, r, out)
}

func (h *SaleHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	dto, err := h.getSale.Execute(r.Context(), &get_sale.Request{
		SaleID: chi.URLParam(r, "saleID"),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, toSaleResponse(dto))
}
