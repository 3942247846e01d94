package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/recordstore"
	"github.com/abtweb/studio-api/internal/remote"
	"go.uber.org/zap"
)

// QuoteRepository is the accessor for the authoritative quote collection.
// The local record store is the system of record; the optional remote
// mirror takes read priority when reachable and receives best-effort writes.
//
// Read paths are fail-soft: a missing or malformed collection loads as
// empty with a logged warning, never as a caller-visible error.
type QuoteRepository struct {
	store  *recordstore.Store
	mirror *remote.Mirror
	logger *zap.Logger
}

func NewQuoteRepository(store *recordstore.Store, mirror *remote.Mirror, logger *zap.Logger) *QuoteRepository {
	return &QuoteRepository{store: store, mirror: mirror, logger: logger}
}

// List returns all quotes. When the remote mirror is reachable its documents
// win, sorted newest first; otherwise the local collection is returned in
// insertion order. Callers must not assume any particular order.
func (r *QuoteRepository) List(ctx context.Context) ([]domain.Quote, error) {
	if r.mirror.Enabled() {
		docs, err := r.mirror.ListRaw(ctx)
		if err == nil {
			quotes := make([]domain.Quote, 0, len(docs))
			for _, doc := range docs {
				var q domain.Quote
				if err := json.Unmarshal(doc, &q); err != nil {
					r.logger.Warn("Skipping malformed remote quote document", zap.Error(err))
					continue
				}
				quotes = append(quotes, q)
			}
			return quotes, nil
		}
		r.logger.Warn("Remote quote store unavailable, falling back to local store", zap.Error(err))
	}
	return r.loadLocal(ctx), nil
}

// Append adds a quote to the collection. Quotes are append-only: content is
// never edited afterwards, only the status field via SetStatus.
func (r *QuoteRepository) Append(ctx context.Context, quote domain.Quote) error {
	quotes := r.loadLocal(ctx)
	quotes = append(quotes, quote)
	if err := r.store.Set(ctx, recordstore.KeyQuotes, quotes); err != nil {
		return err
	}
	r.mirrorSave(ctx, quote)
	return nil
}

// SetStatus changes the status of one quote in place and persists the whole
// collection back. Returns ErrQuoteNotFound when the id is absent.
func (r *QuoteRepository) SetStatus(ctx context.Context, id string, status domain.QuoteStatus) error {
	quotes := r.loadLocal(ctx)
	for i := range quotes {
		if quotes[i].ID == id {
			quotes[i].Status = status
			if err := r.store.Set(ctx, recordstore.KeyQuotes, quotes); err != nil {
				return err
			}
			r.mirrorSave(ctx, quotes[i])
			return nil
		}
	}
	return ErrQuoteNotFound
}

// Remove deletes one quote by id. Returns ErrQuoteNotFound when absent.
func (r *QuoteRepository) Remove(ctx context.Context, id string) error {
	quotes := r.loadLocal(ctx)
	for i := range quotes {
		if quotes[i].ID == id {
			quotes = append(quotes[:i], quotes[i+1:]...)
			if err := r.store.Set(ctx, recordstore.KeyQuotes, quotes); err != nil {
				return err
			}
			if err := r.mirror.Delete(ctx, id); err != nil {
				r.logger.Warn("Failed to delete quote from remote mirror",
					zap.String("quote_id", id), zap.Error(err))
			}
			return nil
		}
	}
	return ErrQuoteNotFound
}

// GetByID returns one quote from the local collection.
func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	for _, q := range r.loadLocal(ctx) {
		if q.ID == id {
			return &q, nil
		}
	}
	return nil, ErrQuoteNotFound
}

// Count returns the size of the local quote collection.
func (r *QuoteRepository) Count(ctx context.Context) int {
	return len(r.loadLocal(ctx))
}

func (r *QuoteRepository) loadLocal(ctx context.Context) []domain.Quote {
	var quotes []domain.Quote
	err := r.store.Get(ctx, recordstore.KeyQuotes, &quotes)
	switch {
	case err == nil:
	case errors.Is(err, recordstore.ErrKeyNotFound):
	case errors.Is(err, recordstore.ErrMalformedRecord):
		r.logger.Warn("Quote collection is malformed, treating as empty", zap.Error(err))
	default:
		r.logger.Warn("Failed to load quote collection, treating as empty", zap.Error(err))
	}
	return quotes
}

func (r *QuoteRepository) mirrorSave(ctx context.Context, quote domain.Quote) {
	if !r.mirror.Enabled() {
		return
	}
	data, err := json.Marshal(quote)
	if err != nil {
		r.logger.Warn("Failed to encode quote for remote mirror",
			zap.String("quote_id", quote.ID), zap.Error(err))
		return
	}
	if err := r.mirror.Save(ctx, quote.ID, quote.CreatedAt, data); err != nil {
		// best-effort: the local write already succeeded
		r.logger.Warn("Failed to mirror quote to remote store",
			zap.String("quote_id", quote.ID), zap.Error(err))
	}
}
