package service

import (
	"context"
	"time"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/repository"
	"go.uber.org/zap"
)

// CustomerService reads the derived customer collection. Customers are never
// written here: the sync coordinator rebuilds the collection from quotes.
type CustomerService struct {
	customers *repository.CustomerRepository
	quotes    *repository.QuoteRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewCustomerService(customers *repository.CustomerRepository, quotes *repository.QuoteRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{customers: customers, quotes: quotes, logger: logger, now: time.Now}
}

// List returns the derived customer collection.
func (s *CustomerService) List(ctx context.Context) []domain.Customer {
	return s.customers.List(ctx)
}

// Get returns one customer by positional id.
func (s *CustomerService) Get(ctx context.Context, id int) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

// QuotesFor returns the quotes attributed to a customer, resolved through
// the id list recorded at aggregation time.
func (s *CustomerService) QuotesFor(ctx context.Context, id int) ([]domain.Quote, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(customer.QuoteIDs))
	for _, qid := range customer.QuoteIDs {
		wanted[qid] = true
	}

	quotes, err := s.quotes.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Quote
	for _, q := range quotes {
		if wanted[q.ID] {
			out = append(out, q)
		}
	}
	return out, nil
}

// Stats summarizes the customer collection for the dashboard.
func (s *CustomerService) Stats(ctx context.Context) domain.CustomerStatistics {
	customers := s.customers.List(ctx)
	now := s.now()

	stats := domain.CustomerStatistics{}
	var totalAmount int64
	var totalQuotes int
	for _, c := range customers {
		if c.FirstVisit.Year() == now.Year() && c.FirstVisit.Month() == now.Month() {
			stats.NewThisMonth++
		}
		if c.TotalQuotes > 1 {
			stats.RepeatCustomers++
		}
		totalAmount += c.TotalAmount
		totalQuotes += c.TotalQuotes
	}
	if totalQuotes > 0 {
		stats.AvgOrderValue = totalAmount / int64(totalQuotes)
	}
	return stats
}
