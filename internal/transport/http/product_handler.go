package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/update_product"
)

// ProductHandler serves the product endpoints.
type ProductHandler struct {
	createProduct *create_product.Interactor
	updateProduct *update_product.Interactor
	deleteProduct *delete_product.Interactor
	getProduct    *get_product.Query
	listProducts  *list_products.Query
}

// NewProductHandler creates a new product handler.
func NewProductHandler(
	createProduct *create_product.Interactor,
	updateProduct *update_product.Interactor,
	deleteProduct *delete_product.Interactor,
	getProduct *get_product.Query,
	listProducts *list_products.Query,
) *ProductHandler {
	return &ProductHandler{
		createProduct: createProduct,
		updateProduct: updateProduct,
		deleteProduct: deleteProduct,
		getProduct:    getProduct,
		listProducts:  listProducts,
	}
}

// Routes mounts the product endpoints.
func (h *ProductHandler) Routes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Get("/", h.handleList)
	r.Get("/{productID}", h.handleGet)
	r.Patch("/{productID}", h.handleUpdate)
	r.Delete("/{productID}", h.handleDelete)
}

type createProductRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	MRP             float64 `json:"mrp"`
	DiscountPercent int64   `json:"discountPercent"`
	Quantity        int64   `json:"quantity"`
	CategoryID      string  `json:"categoryId"`
}

func (h *ProductHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body createProductRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		renderBadRequest(w, r, "malformed request body")
		return
	}

	mrp, err := domain.NewMoneyFromFloat64(body.MRP)
	if err != nil {
		renderError(w, r, domain.ErrInvalidMRP)
		return
	}

	id, err := h.createProduct.Execute(r.Context(), &create_product.Request{
		SellerID:        CallerID(r.Context()),
		Name:            body.Name,
		Description:     body.Description,
		MRP:             mrp,
		DiscountPercent: body.DiscountPercent,
		Quantity:        body.Quantity,
		CategoryID:      body.CategoryID,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, &createdResponse{ID: id})
}

type updateProductRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	MRP             *float64 `json:"mrp"`
	DiscountPercent *int64   `json:"discountPercent"`
	Quantity        *int64   `json:"quantity"`
	CategoryID      *string  `json:"categoryId"`
}

func (h *ProductHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var body updateProductRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		renderBadRequest(w, r, "malformed request body")
		return
	}

	req := &update_product.Request{
		CallerID:        CallerID(r.Context()),
		ProductID:       chi.URLParam(r, "productID"),
		Name:            body.Name,
		Description:     body.Description,
		DiscountPercent: body.DiscountPercent,
		Quantity:        body.Quantity,
		CategoryID:      body.CategoryID,
	}
	if body.MRP != nil {
		mrp, err := domain.NewMoneyFromFloat64(*body.MRP)
		if err != nil {
			renderError(w, r, domain.ErrInvalidMRP)
			return
		}
		req.MRP = mrp
	}

	if err := h.updateProduct.Execute(r.Context(), req); err != nil {
		renderError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (h *ProductHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.deleteProduct.Execute(r.Context(), &delete_product.Request{
		CallerID:  CallerID(r.Context()),
		ProductID: chi.URLParam(r, "productID"),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (h *ProductHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	dto, err := h.getProduct.Execute(r.Context(), &get_product.Request{
		ProductID: chi.URLParam(r, "productID"),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, toProductResponse(dto))
}

func (h *ProductHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	result, err := h.listProducts.Execute(r.Context(), &list_products.Request{
		SellerID:   CallerID(r.Context()),
		CategoryID: q.Get("categoryId"),
		ActiveOnly: q.Get("active") == "true",
		PageSize:   pageSize,
		PageToken:  q.Get("pageToken"),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, toProductListResponse(result))
}
