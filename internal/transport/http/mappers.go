package http

import (
	"time"

	"github.com/light-bringer/sellerhub-service/internal/app/catalog/contracts"
)

// Wire shapes. The contracts DTOs stay transport-agnostic; these add the
// JSON field names the API documents.

type discountResponse struct {
	DiscountID string    `json:"discountId"`
	Type       string    `json:"type"`
	Value      float64   `json:"value"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Active     bool      `json:"active"`
}

type productResponse struct {
	ProductID       string             `json:"productId"`
	SellerID        string             `json:"sellerId"`
	Name            string             `json:"name"`
	Description     string             `json:"description,omitempty"`
	MRP             float64            `json:"mrp"`
	DiscountPercent int64              `json:"discountPercent"`
	SellingPrice    float64            `json:"sellingPrice"`
	FinalPrice      float64            `json:"finalPrice"`
	Discounts       []discountResponse `json:"discounts"`
	CategoryID      string             `json:"categoryId,omitempty"`
	BundleIDs       []string           `json:"bundleIds,omitempty"`
	AdminDiscount   *int64             `json:"adminDiscount,omitempty"`
	Quantity        int64              `json:"quantity"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

type bundleMemberResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

type bundleResponse struct {
	BundleID        string                 `json:"bundleId"`
	SellerID        string                 `json:"sellerId"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description,omitempty"`
	Members         []bundleMemberResponse `json:"products"`
	DiscountPercent int64                  `json:"discountPercent"`
	MRP             float64                `json:"mrp"`
	SellingPrice    float64                `json:"sellingPrice"`
	FinalPrice      float64                `json:"finalPrice"`
	Discounts       []discountResponse     `json:"discounts"`
	AdminDiscount   *int64                 `json:"adminDiscount,omitempty"`
	IsActive        bool                   `json:"isActive"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

type saleCategoryResponse struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Percent    int64  `json:"percent"`
}

type saleResponse struct {
	SaleID     string                 `json:"saleId"`
	Name       string                 `json:"name"`
	Categories []saleCategoryResponse `json:"categories"`
	Products   []*productResponse     `json:"products"`
	Bundles    []*bundleResponse      `json:"bundles"`
	StartDate  time.Time              `json:"startDate"`
	EndDate    time.Time              `json:"endDate"`
	Running    bool                   `json:"running"`
}

type productListResponse struct {
	Products      []*productResponse `json:"products"`
	NextPageToken string             `json:"nextPageToken,omitempty"`
	TotalCount    int64              `json:"totalCount"`
}

type bundleListResponse struct {
	Bundles       []*bundleResponse `json:"bundles"`
	NextPageToken string            `json:"nextPageToken,omitempty"`
	TotalCount    int64             `json:"totalCount"`
}

type createdResponse struct {
	ID string `json:"id"`
}

func toDiscountResponses(dtos []contracts.DiscountDTO) []discountResponse {
	out := make([]discountResponse, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, discountResponse{
			DiscountID: d.DiscountID,
			Type:       d.Type,
			Value:      d.Value,
			StartDate:  d.StartDate,
			EndDate:    d.EndDate,
			Active:     d.Active,
		})
	}
	return out
}

func toProductResponse(dto *contracts.ProductDTO) *productResponse {
	return &productResponse{
		ProductID:       dto.ProductID,
		SellerID:        dto.SellerID,
		Name:            dto.Name,
		Description:     dto.Description,
		MRP:             dto.MRP,
		DiscountPercent: dto.DiscountPercent,
		SellingPrice:    dto.SellingPrice,
		FinalPrice:      dto.FinalPrice,
		Discounts:       toDiscountResponses(dto.Discounts),
		CategoryID:      dto.CategoryID,
		BundleIDs:       dto.BundleIDs,
		AdminDiscount:   dto.AdminDiscount,
		Quantity:        dto.Quantity,
		IsActive:        dto.IsActive,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	}
}

func toBundleResponse(dto *contracts.BundleDTO) *bundleResponse {
	members := make([]bundleMemberResponse, 0, len(dto.Members))
	for _, m := range dto.Members {
		members = append(members, bundleMemberResponse{
			ProductID: m.ProductID,
			Name:      m.Name,
			Quantity:  m.Quantity,
		})
	}
	return &bundleResponse{
		BundleID:        dto.BundleID,
		SellerID:        dto.SellerID,
		Name:            dto.Name,
		Description:     dto.Description,
		Members:         members,
		DiscountPercent: dto.DiscountPercent,
		MRP:             dto.MRP,
		SellingPrice:    dto.SellingPrice,
		FinalPrice:      dto.FinalPrice,
		Discounts:       toDiscountResponses(dto.Discounts),
		AdminDiscount:   dto.AdminDiscount,
		IsActive:        dto.IsActive,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	}
}

func toSaleResponse(dto *contracts.SaleDTO) *saleResponse {
	categories := make([]saleCategoryResponse, 0, len(dto.Categories))
	for _, c := range dto.Categories {
		categories = append(categories, saleCategoryResponse{
			CategoryID: c.CategoryID,
			Name:       c.Name,
			Percent:    c.Percent,
		})
	}
	products := make([]*productResponse, 0, len(dto.Products))
	for _, p := range dto.Products {
		products = append(products, toProductResponse(p))
	}
	bundles := make([]*bundleResponse, 0, len(dto.Bundles))
	for _, b := range dto.Bundles {
		bundles = append(bundles, toBundleResponse(b))
	}
	return &saleResponse{
		SaleID:     dto.SaleID,
		Name:       dto.Name,
		Categories: categories,
		Products:   products,
		Bundles:    bundles,
		StartDate:  dto.StartDate,
		EndDate:    dto.EndDate,
		Running:    dto.Running,
	}
}

func toProductListResponse(result *contracts.ProductListResult) *productListResponse {
	products := make([]*productResponse, 0, len(result.Products))
	for _, p := range result.Products {
		products = append(products, toProductResponse(p))
	}
	return &productListResponse{
		Products:      products,
		NextPageToken: result.NextPageToken,
		TotalCount:    result.TotalCount,
	}
}

func toBundleListResponse(result *contracts.BundleListResult) *bundleListResponse {
	bundles := make([]*bundleResponse, 0, len(result.Bundles))
	for _, b := range result.Bundles {
		bundles = append(bundles, toBundleResponse(b))
	}
	return &bundleListResponse{
		Bundles:       bundles,
		NextPageToken: result.NextPageToken,
		TotalCount:    result.TotalCount,
	}
}
