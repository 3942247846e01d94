package repository

import (
	"context"
	"errors"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/recordstore"
	"go.uber.org/zap"
)

// CustomerRepository persists the derived customer collection. The
// collection is a view over quotes, never edited in place: each
// recomputation replaces it wholesale.
type CustomerRepository struct {
	store  *recordstore.Store
	logger *zap.Logger
}

func NewCustomerRepository(store *recordstore.Store, logger *zap.Logger) *CustomerRepository {
	return &CustomerRepository{store: store, logger: logger}
}

// List returns the persisted customer collection. Missing or malformed data
// loads as empty.
func (r *CustomerRepository) List(ctx context.Context) []domain.Customer {
	var customers []domain.Customer
	err := r.store.Get(ctx, recordstore.KeyCustomers, &customers)
	switch {
	case err == nil:
	case errors.Is(err, recordstore.ErrKeyNotFound):
	default:
		r.logger.Warn("Failed to load customer collection, treating as empty", zap.Error(err))
	}
	return customers
}

// GetByID returns one customer from the derived collection.
func (r *CustomerRepository) GetByID(ctx context.Context, id int) (*domain.Customer, error) {
	for _, c := range r.List(ctx) {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, ErrCustomerNotFound
}

// Replace overwrites the whole customer collection with the given derived
// set. Total overwrite, not a merge: the previous collection's incidental
// state never survives a rebuild.
func (r *CustomerRepository) Replace(ctx context.Context, customers []domain.Customer) error {
	if customers == nil {
		customers = []domain.Customer{}
	}
	return r.store.Set(ctx, recordstore.KeyCustomers, customers)
}
