package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente registrado manualmente.
// TotalSpent y Orders no se sincronizan con las ventas: una venta solo guarda el nombre del cliente.
type Customer struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Address    string          `json:"address"`
	CreatedAt  time.Time       `json:"createdAt"`
	Status     string          `json:"status"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
	Orders     int             `json:"orders"`
}
