package postgres

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/storefront/commerce-api/internal/core/domain"
)

func toDomainUser(row userModel) (*domain.User, error) {
	role, err := domain.ResolveRole(row.UserTypeID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", row.ID, err)
	}
	return &domain.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.Password,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		PhoneNumber:  row.PhoneNumber,
		Role:         role,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func toDomainProduct(row productModel) domain.Product {
	p := domain.Product{
		ID:              row.ID,
		Name:            row.Name,
		Description:     row.Description,
		MainImage:       row.MainImage,
		SecondaryImages: domain.SplitSecondaryImages(row.SecondaryImages),
		Inventory: domain.Inventory{
			ID:         row.Inventory.ID,
			SKU:        row.Inventory.SKU,
			QtyInStock: row.Inventory.QtyInStock,
			Price:      row.Inventory.Price,
			Category:   domain.Category{ID: row.Inventory.Category.ID, Name: row.Inventory.Category.Category},
			Type:       domain.CategoryType{ID: row.Inventory.Type.ID, Name: row.Inventory.Type.Type},
		},
		CreatedAt: row.CreatedAt,
	}
	if row.Promotion != nil {
		p.Promotion = &domain.Promotion{ID: row.Promotion.ID, DiscountRate: row.Promotion.DiscountRate}
	}
	return p
}

func toDomainProducts(rows []productModel) []domain.Product {
	out := make([]domain.Product, len(rows))
	for i, row := range rows {
		out[i] = toDomainProduct(row)
	}
	return out
}

func toDomainResetCode(row passwordResetModel) *domain.ResetCode {
	return &domain.ResetCode{
		ID:        row.ID,
		UserID:    row.UserID,
		Code:      row.Code,
		Validated: row.Validated,
		CreatedAt: row.CreatedAt,
	}
}

func toDomainCart(row cartModel) *domain.Cart {
	cart := &domain.Cart{ID: row.ID, UserID: row.UserID, Items: make([]domain.CartItem, len(row.Items))}
	for i, it := range row.Items {
		cart.Items[i] = domain.CartItem{ID: it.ID, Product: toDomainProduct(it.Product), Quantity: it.Quantity}
	}
	return cart
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
