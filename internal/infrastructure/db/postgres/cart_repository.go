package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// CartRepository implements ports.CartRepository.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) FindByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	var row cartModel
	err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("cart_items.id") }).
		Preload("Items.Product.Inventory.Category").
		Preload("Items.Product.Inventory.Type").
		Preload("Items.Product.Promotion").
		Where("user_id = ?", userID).
		Take(&row).Error
	if err != nil {
		if notFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDomainCart(row), nil
}

// AddItem creates the cart on first use and merges repeat products into one line.
func (r *CartRepository) AddItem(ctx context.Context, userID, productID int64, quantity int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart := cartModel{UserID: userID, CreatedAt: time.Now().UTC()}
		err := tx.Omit(clause.Associations).
			Where(cartModel{UserID: userID}).
			FirstOrCreate(&cart).Error
		if err != nil {
			return err
		}

		res := tx.Model(&cartItemModel{}).
			Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		item := cartItemModel{CartID: cart.ID, ProductID: productID, Quantity: quantity}
		return tx.Omit(clause.Associations).Create(&item).Error
	})
}
