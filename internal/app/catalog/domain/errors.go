package domain

import "errors"

// Domain errors as sentinel values. Transport maps these onto HTTP statuses,
// so every error a usecase can surface must wrap one of them.
var (
	// Product errors
	ErrProductNotFound    = errors.New("product not found")
	ErrProductNotEligible = errors.New("product is inactive, deleted or blocked")
	ErrEmptyProductName   = errors.New("invalid or missing product name")
	ErrInvalidMRP         = errors.New("MRP must be greater than 0")
	ErrInvalidDiscount    = errors.New("discount must be between 0 and 100")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrProductNameTaken   = errors.New("a product with this name already exists")
	ErrProductDeleted     = errors.New("product is already deleted")

	// Category errors
	ErrCategoryNotFound  = errors.New("category does not exist or is not active")
	ErrInvalidCategoryID = errors.New("invalid category ID")

	// Bundle errors
	ErrBundleNotFound         = errors.New("bundle not found")
	ErrEmptyBundle            = errors.New("products array is required and must not be empty")
	ErrEmptyBundleName        = errors.New("invalid or missing bundle name")
	ErrEmptyBundleDescription = errors.New("invalid or missing bundle description")
	ErrDuplicateBundleProduct = errors.New("product is already in the bundle")
	ErrProductNotInBundle     = errors.New("product not found in bundle")
	ErrBundleMemberNotOwned   = errors.New("one or more products are not owned by the caller or not active")

	// Discount errors
	ErrDiscountNotFound       = errors.New("discount not found")
	ErrDiscountTargetRequired = errors.New("exactly one of productId or bundleId is required")
	ErrInvalidDiscountPeriod  = errors.New("discount end date must be after start date")
	ErrInvalidDiscountValue   = errors.New("invalid discount value")
	ErrUnknownDiscountType    = errors.New("unknown discount type")

	// Sale errors
	ErrSaleNotFound         = errors.New("sale not found or has been deleted")
	ErrSaleEnded            = errors.New("sale has already ended")
	ErrProductAlreadyInSale = errors.New("product is already added to this sale")
	ErrCategoryNotInSale    = errors.New("product does not belong to any of the sale's categories")

	// Cross-cutting
	ErrMoneyOverflow   = errors.New("money value exceeds storage bounds")
	ErrUnauthorized    = errors.New("missing caller identity")
	ErrNotOwner        = errors.New("caller does not own this resource")
	ErrVersionConflict = errors.New("concurrent modification detected")
	ErrInvalidID       = errors.New("invalid ID format")
)
