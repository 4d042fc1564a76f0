package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AddCustomer crea un cliente con TotalSpent y Orders en cero.
func (s *Store) AddCustomer(ctx context.Context, in dto.CreateCustomerRequest) (*entity.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation("name es requerido")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer := entity.Customer{
		ID:         s.newID(),
		Name:       name,
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Address:    strings.TrimSpace(in.Address),
		CreatedAt:  s.now(),
		Status:     entity.StatusActive,
		TotalSpent: decimal.Zero,
	}
	s.customers = append(s.customers, customer)
	s.activities.Record(entity.ActivityCustomer, "New customer added: "+customer.Name, "Customer profile created")
	s.flushLocked(ctx)
	return &customer, nil
}
