package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/add_discount"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/remove_discount"
	"github.com/light-bringer/sellerhub-service/internal/app/catalog/usecases/update_discount"
)

// DiscountHandler serves the discount endpoints.
type DiscountHandler struct {
	addDiscount    *add_discount.Interactor
	updateDiscount *update_discount.Interactor
	removeDiscount *remove_discount.Interactor
}

// NewDiscountHandler creates a new discount handler.
func NewDiscountHandler(
	addDiscount *add_discount.Interactor,
	updateDiscount *update_discount.Interactor,
	removeDiscount *remove_discount.Interactor,
) *DiscountHandler {
	return &DiscountHandler{
		addDiscount:    addDiscount,
		updateDiscount: updateDiscount,
		removeDiscount: removeDiscount,
	}
}

// Routes mounts the discount endpoints.
func (h *DiscountHandler) Routes(r chi.Router) {
	r.Post("/", h.handleAdd)
	r.Put("/{discountID}", h.handleUpdate)
	r.Delete("/{discountID}", h.handleRemove)
}

type addDiscountRequest struct {
	ProductID string    `json:"productId"`
	BundleID  string    `json:"bundleId"`
	Type      string    `json:"type"`
	Value     float64   `json:"value"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

func (h *DiscountHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var body addDiscountRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		renderBadRequest(w, r, "malformed request body")
		return
	}

	value, err := domain.NewMoneyFromFloat64(body.Value)
	if err != nil {
		renderError(w, r, domain.ErrInvalidDiscountValue)
		return
	}

	id, err := h.addDiscount.Execute(r.Context(), &add_discount.Request{
		SellerID:  CallerID(r.Context()),
		ProductID: body.ProductID,
		BundleID:  body.BundleID,
		Type:      domain.DiscountType(body.Type),
		Value:     value,
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, &createdResponse{ID: id})
}

type updateDiscountRequest struct {
	Type      string    `json:"type"`
	Value     float64   `json:"value"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

func (h *DiscountHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var body updateDiscountRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		renderBadRequest(w, r, "malformed request body")
		return
	}

	value, err := domain.NewMoneyFromFloat64(body.Value)
	if err != nil {
		renderError(w, r, domain.ErrInvalidDiscountValue)
		return
	}

	err = h.updateDiscount.Execute(r.Context(), &update_discount.Request{
		CallerID:   CallerID(r.Context()),
		DiscountID: chi.URLParam(r, "discountID"),
		Type:       domain.DiscountType(body.Type),
		Value:      value,
		StartDate:  body.StartDate,
		EndDate:    body.EndDate,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (h *DiscountHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	err := h.removeDiscount.Execute(r.Context(), &remove_discount.Request{
		CallerID:   CallerID(r.Context()),
		DiscountID: chi.URLParam(r, "discountID"),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.NoContent(w, r)
}
