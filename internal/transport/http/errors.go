package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/domain"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the machine code and human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps a domain error chain onto an HTTP status. Unknown errors
// fall through to 500; their detail is logged, not echoed.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyProductName),
		errors.Is(err, domain.ErrInvalidMRP),
		errors.Is(err, domain.ErrInvalidDiscount),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidCategoryID),
		errors.Is(err, domain.ErrEmptyBundle),
		errors.Is(err, domain.ErrEmptyBundleName),
		errors.Is(err, domain.ErrEmptyBundleDescription),
		errors.Is(err, domain.ErrDuplicateBundleProduct),
		errors.Is(err, domain.ErrDiscountTargetRequired),
		errors.Is(err, domain.ErrInvalidDiscountPeriod),
		errors.Is(err, domain.ErrInvalidDiscountValue),
		errors.Is(err, domain.ErrUnknownDiscountType),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, "INVALID_ARGUMENT"

	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHENTICATED"

	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrBundleMemberNotOwned):
		return http.StatusForbidden, "FORBIDDEN"

	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrBundleNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrDiscountNotFound),
		errors.Is(err, domain.ErrSaleNotFound),
		errors.Is(err, domain.ErrProductNotInBundle):
		return http.StatusNotFound, "NOT_FOUND"

	case errors.Is(err, domain.ErrProductNameTaken),
		errors.Is(err, domain.ErrProductAlreadyInSale),
		errors.Is(err, domain.ErrVersionConflict),
		errors.Is(err, domain.ErrProductDeleted):
		return http.StatusConflict, "CONFLICT"

	case errors.Is(err, domain.ErrProductNotEligible),
		errors.Is(err, domain.ErrSaleEnded),
		errors.Is(err, domain.ErrCategoryNotInSale):
		return http.StatusUnprocessableEntity, "FAILED_PRECONDITION"

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT"

	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// renderBadRequest writes a 400 with a message that did not come from a
// domain sentinel, such as an undecodable body.
func renderBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, &ErrorResponse{Error: ErrorBody{Code: "INVALID_ARGUMENT", Message: message}})
}

// renderError writes the error envelope for a domain error.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	render.Status(r, status)
	render.JSON(w, r, &ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}
