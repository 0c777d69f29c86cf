package handler

import (
	"encoding/json"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// --- Request → Service input ---

func toNewProductInput(req storeProductRequest) domain.NewProductInput {
	return domain.NewProductInput{
		Name:            req.Name,
		Description:     req.Description,
		MainImage:       req.MainImage,
		SecondaryImages: req.SecondaryImages,
		SKU:             req.Inventory.SKU,
		QtyInStock:      req.Inventory.QtyInStock,
		Price:           req.Inventory.Price,
		CategoryID:      req.Inventory.CategoryID,
		TypeID:          req.Inventory.TypeID,
	}
}

// --- Domain → Response ---

// newPrice renders the discounted price, or "" so the field is omitted.
func newPrice(p domain.Product) json.Number {
	price, promoted := p.NewPrice()
	if !promoted {
		return ""
	}
	return json.Number(price.String())
}

func toPromotionView(p *domain.Promotion) *promotionView {
	if p == nil {
		return nil
	}
	return &promotionView{ID: p.ID, DiscountRate: p.DiscountRate}
}

func toProductSummary(p domain.Product) productSummary {
	return productSummary{
		ID:        p.ID,
		Name:      p.Name,
		MainImage: p.MainImage,
		Inventory: inventorySummary{
			Price:      p.Inventory.Price,
			QtyInStock: p.Inventory.QtyInStock,
			Category:   categoryView{ID: p.Inventory.Category.ID, Category: p.Inventory.Category.Name},
			Type:       typeView{ID: p.Inventory.Type.ID, Type: p.Inventory.Type.Name},
		},
		Promotion: toPromotionView(p.Promotion),
		NewPrice:  newPrice(p),
	}
}

func toProductDetail(p domain.Product) productDetail {
	images := p.SecondaryImages
	if images == nil {
		images = []string{}
	}
	return productDetail{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		MainImage:       p.MainImage,
		SecondaryImages: images,
		CreatedAt:       p.CreatedAt,
		Inventory: inventoryView{
			ID:         p.Inventory.ID,
			SKU:        p.Inventory.SKU,
			QtyInStock: p.Inventory.QtyInStock,
			Price:      p.Inventory.Price,
			Category:   categoryView{ID: p.Inventory.Category.ID, Category: p.Inventory.Category.Name},
			Type:       typeView{ID: p.Inventory.Type.ID, Type: p.Inventory.Type.Name},
		},
		Promotion: toPromotionView(p.Promotion),
		NewPrice:  newPrice(p),
	}
}

func toProductSummaries(products []domain.Product) []productSummary {
	out := make([]productSummary, len(products))
	for i, p := range products {
		out[i] = toProductSummary(p)
	}
	return out
}

func toProductDetails(products []domain.Product) []productDetail {
	out := make([]productDetail, len(products))
	for i, p := range products {
		out[i] = toProductDetail(p)
	}
	return out
}
