package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultCustomerName = "Walk-in Customer"
	PaymentMethodCash   = "Cash"
	SaleStatusCompleted = "completed"
)

// Sale es inmutable una vez creada. ProductName y UnitPrice son la copia del producto
// al momento de la venta y se conservan aunque el producto se edite o elimine.
type Sale struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"` // UnitPrice × Quantity, exacto
	CustomerName  string          `json:"customerName"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
}
