package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

type userTypeModel struct {
	ID       int    `gorm:"column:id;primaryKey;autoIncrement:false"`
	UserType string `gorm:"column:user_type;size:32;not null"`
}

func (userTypeModel) TableName() string { return "user_types" }

type userModel struct {
	ID          int64         `gorm:"column:id;primaryKey"`
	Email       string        `gorm:"column:email;size:255;not null;uniqueIndex"`
	Password    string        `gorm:"column:password;not null"`
	FirstName   string        `gorm:"column:first_name;size:100"`
	LastName    string        `gorm:"column:last_name;size:100"`
	PhoneNumber string        `gorm:"column:phone_number;size:32"`
	UserTypeID  int           `gorm:"column:user_type_id;not null"`
	UserType    userTypeModel `gorm:"foreignKey:UserTypeID"`
	CreatedAt   time.Time     `gorm:"column:created_at"`
	UpdatedAt   time.Time     `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type userPaymentModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	User      userModel `gorm:"foreignKey:UserID"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (userPaymentModel) TableName() string { return "user_payments" }

type passwordResetModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	User      userModel `gorm:"foreignKey:UserID"`
	Code      string    `gorm:"column:code;size:16;not null;index"`
	Validated bool      `gorm:"column:validated;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (passwordResetModel) TableName() string { return "password_resets" }

type categoryModel struct {
	ID       int64  `gorm:"column:id;primaryKey"`
	Category string `gorm:"column:category;size:100;not null"`
}

func (categoryModel) TableName() string { return "product_categories" }

type categoryTypeModel struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Type string `gorm:"column:type;size:100;not null"`
}

func (categoryTypeModel) TableName() string { return "category_types" }

type inventoryModel struct {
	ID         int64             `gorm:"column:id;primaryKey"`
	SKU        string            `gorm:"column:sku;size:64"`
	QtyInStock int               `gorm:"column:qty_in_stock;not null;default:0"`
	Price      decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null"`
	CategoryID int64             `gorm:"column:category_id;not null;index"`
	Category   categoryModel     `gorm:"foreignKey:CategoryID"`
	TypeID     int64             `gorm:"column:type_id;not null;index"`
	Type       categoryTypeModel `gorm:"foreignKey:TypeID"`
	CreatedAt  time.Time         `gorm:"column:created_at"`
}

func (inventoryModel) TableName() string { return "product_inventories" }

type productModel struct {
	ID              int64           `gorm:"column:id;primaryKey"`
	Name            string          `gorm:"column:name;size:255;not null"`
	Description     string          `gorm:"column:description;type:text"`
	MainImage       string          `gorm:"column:main_image;size:512"`
	SecondaryImages string          `gorm:"column:secondary_images;type:text"`
	InventoryID     int64           `gorm:"column:inventory_id;not null"`
	Inventory       inventoryModel  `gorm:"foreignKey:InventoryID"`
	Promotion       *promotionModel `gorm:"foreignKey:ProductID"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
}

func (productModel) TableName() string { return "products" }

type promotionModel struct {
	ID           int64 `gorm:"column:id;primaryKey"`
	ProductID    int64 `gorm:"column:product_id;not null;uniqueIndex"`
	DiscountRate int   `gorm:"column:discount_rate;not null"`
}

func (promotionModel) TableName() string { return "promotions" }

type cartModel struct {
	ID        int64           `gorm:"column:id;primaryKey"`
	UserID    int64           `gorm:"column:user_id;not null;uniqueIndex"`
	Items     []cartItemModel `gorm:"foreignKey:CartID"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (cartModel) TableName() string { return "carts" }

type cartItemModel struct {
	ID        int64        `gorm:"column:id;primaryKey"`
	CartID    int64        `gorm:"column:cart_id;not null;index"`
	ProductID int64        `gorm:"column:product_id;not null"`
	Product   productModel `gorm:"foreignKey:ProductID"`
	Quantity  int          `gorm:"column:quantity;not null"`
}

func (cartItemModel) TableName() string { return "cart_items" }
