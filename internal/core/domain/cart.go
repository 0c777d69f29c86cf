package domain

import "github.com/shopspring/decimal"

// CartItem is a product line in a shopping cart.
type CartItem struct {
	ID       int64
	Product  Product
	Quantity int
}

// UnitPrice is the effective (promotion-aware) price of one unit.
func (i CartItem) UnitPrice() decimal.Decimal {
	price, _ := i.Product.NewPrice()
	return price
}

// Subtotal is UnitPrice times Quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the shopping cart owned by one user.
type Cart struct {
	ID     int64
	UserID int64
	Items  []CartItem
}

// Total sums line subtotals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}
