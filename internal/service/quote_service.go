package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/pricing"
	"github.com/abtweb/studio-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuoteService owns the quote lifecycle: pricing and recording new checkout
// submissions, admin status changes, and deletion.
type QuoteService struct {
	quotes   *repository.QuoteRepository
	settings *repository.SettingsRepository
	logger   *zap.Logger
	now      func() time.Time
	rng      *rand.Rand
}

func NewQuoteService(quotes *repository.QuoteRepository, settings *repository.SettingsRepository, logger *zap.Logger) *QuoteService {
	return &QuoteService{
		quotes:   quotes,
		settings: settings,
		logger:   logger,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create prices the submitted selection against the catalog and saved
// settings, then records the quote with status "pending". Client-sent prices
// are never trusted.
func (s *QuoteService) Create(ctx context.Context, req *domain.CreateQuoteRequest) (*domain.Quote, *domain.QuoteBreakdown, error) {
	settings := s.settings.Get(ctx)

	breakdown, err := pricing.Price(req.PackageID, req.OptionIDs, req.Maintenance, settings)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnknownPackage, err)
	}

	now := s.now()
	quote := domain.Quote{
		ID:           uuid.New().String(),
		CustomerInfo: domain.CustomerInfo{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Message: req.Message,
		},
		Package:        breakdown.Package,
		Options:        breakdown.Options,
		Maintenance:    breakdown.Maintenance,
		TotalAmount:    breakdown.TotalAmount,
		Status:         domain.QuoteStatusPending,
		CreatedAt:      now,
		QuoteNumber:    s.quoteNumber(now),
		ProjectName:    req.ProjectName,
		CompletionDate: completionDate(now, breakdown.Duration),
	}

	if err := s.quotes.Append(ctx, quote); err != nil {
		return nil, nil, fmt.Errorf("failed to save quote: %w", err)
	}

	s.logger.Info("Quote created",
		zap.String("quote_id", quote.ID),
		zap.String("quote_number", quote.QuoteNumber),
		zap.String("package", quote.Package.ID),
		zap.Int64("total_amount", quote.TotalAmount),
	)

	return &quote, &domain.QuoteBreakdown{
		ServiceAmount: breakdown.ServiceAmount,
		TaxAmount:     breakdown.TaxAmount,
		TotalAmount:   breakdown.TotalAmount,
	}, nil
}

// List returns all quotes.
func (s *QuoteService) List(ctx context.Context) ([]domain.Quote, error) {
	return s.quotes.List(ctx)
}

// Get returns one quote by id.
func (s *QuoteService) Get(ctx context.Context, id string) (*domain.Quote, error) {
	return s.quotes.GetByID(ctx, id)
}

// UpdateStatus applies an admin status change. "pending" is intake-only and
// rejected here.
func (s *QuoteService) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus) error {
	if !status.AssignableByAdmin() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.quotes.SetStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info("Quote status updated",
		zap.String("quote_id", id), zap.String("status", string(status)))
	return nil
}

// Delete removes a quote permanently.
func (s *QuoteService) Delete(ctx context.Context, id string) error {
	if err := s.quotes.Remove(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Quote deleted", zap.String("quote_id", id))
	return nil
}

// quoteNumber builds a human-facing reference like BT-2026-0828-042.
func (s *QuoteService) quoteNumber(now time.Time) string {
	return fmt.Sprintf("BT-%d-%02d%02d-%03d",
		now.Year(), int(now.Month()), now.Day(), s.rng.Intn(1000))
}

// completionDate formats the expected delivery date the way the confirmation
// page displays it.
func completionDate(now time.Time, durationDays int) string {
	d := now.AddDate(0, 0, durationDays)
	return fmt.Sprintf("%d년 %d월 %d일", d.Year(), int(d.Month()), d.Day())
}
