package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/queries/get_bundle"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/queries/list_bundles"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/create_bundle"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/delete_bundle"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/remove_bundle_product"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/update_bundle"
)

// BundleHandler serves the bundle endpoints.
type BundleHandler struct {
	createBundle  *create_bundle.Interactor
	updateBundle  *update_bundle.Interactor
	deleteBundle  *delete_bundle.Interactor
	removeProduct *remove_bundle_product.Interactor
	getBundle     *get_bundle.Query
	listBundles   *list_bundles.Query
}

// NewBundleHandler creates a new bundle handler.
func NewBundleHandler(
	createBundle *create_bundle.Interactor,
	updateBundle *update_bundle.Interactor,
	deleteBundle *delete_bundle.Interactor,
	removeProduct *remove_bundle_product.Interactor,
	getBundle *get_bundle.Query,
	listBundles *list_bundles.Query,
) *BundleHandler {
	return &BundleHandler{
		createBundle:  createBundle,
		updateBundle:  updateBundle,
		deleteBundle:  deleteBundle,
		removeProduct: removeProduct,
		getBundle:     getBundle,
		listBundles:   listBundles,
	}
}

// Routes mounts the bundle endpoints.
func (h *BundleHandler) Routes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Get("/", h.handleList)
	r.Get("/{bundleID}", h.handleGet)
	r.Patch("/{bundleID}", h.handleUpdate)
	r.Delete("/{bundleID}", h.handleDelete)
	r.Delete("/{bundleID}/products/{productID}", h.handleRemoveProduct)
}

type bundleLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

type createBundleRequest struct {
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Products        []bundleLineRequest `json:"products"`
	DiscountPercent int64               `json:"discountPercent"`
}

func toLines(reqs []bundleLineRequest) []domain.BundleLine {
	lines := make([]domain.BundleLine, 0, len(reqs))
	for _, l := range reqs {
		qty := l.Quantity
		if qty == 0 {
			qty = 1
		}
		lines = append(lines, domain.BundleLine{ProductID: l.ProductID, Quantity: qty})
	}
	return lines
}

func (h *BundleHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body createBundleRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		renderBadRequest(w, r, "malformed request body")
		return
	}

	id, err := h.createBundle.Execute(r.Context(), &create_bundle.Request{
		SellerID:        CallerID(r.Context()),
		Name:            body.Name,
		Description:     body.Description,
		Lines:           toLines(body.Products),
		DiscountPercent: body.DiscountPercent,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, &createdResponse{ID: id})
}

type updateBundleRequest struct {
	Name            *string             `json:"name"`
	Description     *string             `json:"description"`
	DiscountPercent *int64              `json:"discountPercent"`
	AddProducts     []bundleLineRequest `json:"addProducts"`
}

func (h *BundleHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var body updateBundleRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		renderBadRequest(w, r, "malformed request body")
		return
	}

	err := h.updateBundle.Execute(r.Context(), &update_bundle.Request{
		CallerID:        CallerID(r.Context()),
		BundleID:        chi.URLParam(r, "bundleID"),
		Name:            body.Name,
		Description:     body.Description,
		DiscountPercent: body.DiscountPercent,
		AddLines:        toLines(body.AddProducts),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (h *BundleHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.deleteBundle.Execute(r.Context(), &delete_bundle.Request{
		CallerID: CallerID(r.Context()),
		BundleID: chi.URLParam(r, "bundleID"),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (h *BundleHandler) handleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	err := h.removeProduct.Execute(r.Context(), &remove_bundle_product.Request{
		CallerID:  CallerID(r.Context()),
		BundleID:  chi.URLParam(r, "bundleID"),
		ProductID: chi.URLParam(r, "productID"),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (h *BundleHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	dto, err := h.getBundle.Execute(r.Context(), &get_bundle.Request{
		BundleID: chi.URLParam(r, "bundleID"),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, toBundleResponse(dto))
}

func (h *BundleHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	result, err := h.listBundles.Execute(r.Context(), &list_bundles.Request{
		SellerID:  CallerID(r.Context()),
		PageSize:  pageSize,
		PageToken: q.Get("pageToken"),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, toBundleListResponse(result))
}
