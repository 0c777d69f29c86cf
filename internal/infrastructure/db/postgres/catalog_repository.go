package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storefront/commerce-api/internal/core/domain"
)

const inventoryJoin = "JOIN product_inventories AS i ON i.id = products.inventory_id"

// CatalogRepository implements ports.CatalogRepository with the GORM query builder.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// products starts a product query with every relation a listing renders.
func (r *CatalogRepository) products(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&productModel{}).
		Preload("Inventory.Category").
		Preload("Inventory.Type").
		Preload("Promotion")
}

func (r *CatalogRepository) FindProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var row productModel
	if err := r.products(ctx).Where("products.id = ?", id).Take(&row).Error; err != nil {
		if notFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p := toDomainProduct(row)
	return &p, nil
}

func (r *CatalogRepository) SearchByName(ctx context.Context, text string) ([]domain.Product, error) {
	var rows []productModel
	err := r.products(ctx).
		Where("LOWER(products.name) LIKE ?", domain.NamePattern(text)).
		Order("products.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainProducts(rows), nil
}

// BestSellers has no ranking column to order by; rows come back in storage order.
func (r *CatalogRepository) BestSellers(ctx context.Context, limit int) ([]domain.Product, error) {
	var rows []productModel
	if err := r.products(ctx).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(rows), nil
}

func (r *CatalogRepository) NewArrivals(ctx context.Context, limit int) ([]domain.Product, error) {
	var rows []productModel
	if err := r.products(ctx).Order("products.id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(rows), nil
}

// filtered applies every predicate present in q. Price bounds are exclusive.
func (r *CatalogRepository) filtered(ctx context.Context, q domain.CatalogQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&productModel{}).Joins(inventoryJoin)
	if q.Text != "" {
		tx = tx.Where("LOWER(products.name) LIKE ?", domain.NamePattern(q.Text))
	}
	if q.CategoryID != nil {
		tx = tx.Where("i.category_id = ?", *q.CategoryID)
	}
	if q.TypeID != nil {
		tx = tx.Where("i.type_id = ?", *q.TypeID)
	}
	if q.MinPrice != nil {
		tx = tx.Where("i.price > ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("i.price < ?", *q.MaxPrice)
	}
	return tx
}

func (r *CatalogRepository) Filter(ctx context.Context, q domain.CatalogQuery) ([]domain.Product, int64, error) {
	var total int64
	if err := r.filtered(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Product{}, 0, nil
	}

	var rows []productModel
	err := r.filtered(ctx, q).
		Select("products.*").
		Preload("Inventory.Category").
		Preload("Inventory.Type").
		Preload("Promotion").
		Order("products.id").
		Offset(q.Offset()).
		Limit(q.Size).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return toDomainProducts(rows), total, nil
}

func (r *CatalogRepository) CreateInventory(ctx context.Context, in domain.NewProductInput) (int64, error) {
	row := inventoryModel{
		SKU:        in.SKU,
		QtyInStock: in.QtyInStock,
		Price:      in.Price,
		CategoryID: in.CategoryID,
		TypeID:     in.TypeID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, in domain.NewProductInput, inventoryID int64) (*domain.Product, error) {
	row := productModel{
		Name:            in.Name,
		Description:     in.Description,
		MainImage:       in.MainImage,
		SecondaryImages: domain.JoinSecondaryImages(in.SecondaryImages),
		InventoryID:     inventoryID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return nil, err
	}
	return r.FindProduct(ctx, row.ID)
}
