package entity

import "time"

// ActivityType clasifica las entradas del feed de actividad.
type ActivityType string

const (
	ActivityInventory ActivityType = "inventory"
	ActivitySale      ActivityType = "sale"
	ActivityCustomer  ActivityType = "customer"
	ActivityAlert     ActivityType = "alert"
	ActivityInfo      ActivityType = "info"
)

// Valid indica si el tipo pertenece al enum conocido.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityInventory, ActivitySale, ActivityCustomer, ActivityAlert, ActivityInfo:
		return true
	}
	return false
}

// Activity es una entrada del feed (más reciente primero). Nunca se edita.
type Activity struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
}
