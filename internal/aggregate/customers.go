// Package aggregate derives the customer and project collections from the
// quote collection. Every function here is pure: output depends only on the
// arguments, so recomputation is idempotent and safe to trigger repeatedly.
package aggregate

import (
	"sort"
	"strings"

	"github.com/abtweb/studio-api/internal/domain"
)

// PlaceholderName is the sentinel shown for quotes submitted without a
// customer name. It never overwrites a real name during aggregation.
const PlaceholderName = "고객명 없음"

// DeriveCustomers rebuilds the customer collection from the quote collection.
//
// Quotes are scanned in their given order; the first quote carrying a key
// creates the customer, later quotes with the same key fold into it. Integer
// ids are assigned 1-based in order of first appearance and are regenerated
// on every rebuild. The result is sorted by last quote date, newest first,
// with ties keeping first-appearance order.
func DeriveCustomers(quotes []domain.Quote) []domain.Customer {
	customers := make([]*domain.Customer, 0)
	index := make(map[CustomerKey]*domain.Customer)

	for _, quote := range quotes {
		key, ok := KeyFor(quote.CustomerInfo)
		if !ok {
			// log-worthy at the caller, but not an error
			continue
		}

		existing, seen := index[key]
		if !seen {
			customer := &domain.Customer{
				ID:            len(customers) + 1,
				Name:          strings.TrimSpace(quote.CustomerInfo.Name),
				Email:         quote.CustomerInfo.Email,
				Phone:         quote.CustomerInfo.Phone,
				FirstVisit:    quote.CreatedAt,
				TotalQuotes:   1,
				TotalAmount:   quote.Amount(),
				Status:        "active",
				LastQuoteDate: quote.CreatedAt,
				QuoteIDs:      []string{quote.ID},
			}
			if customer.Name == "" {
				customer.Name = PlaceholderName
			}
			if key.Kind == KeyName {
				customer.Email = ""
			}
			customers = append(customers, customer)
			index[key] = customer
			continue
		}

		existing.TotalQuotes++
		existing.TotalAmount += quote.Amount()
		existing.QuoteIDs = append(existing.QuoteIDs, quote.ID)
		if quote.CreatedAt.After(existing.LastQuoteDate) {
			existing.LastQuoteDate = quote.CreatedAt
		}
		// Last non-placeholder name wins; phone is last-write-wins even when
		// it replaces an equally valid value. Both inherited behaviors.
		if name := strings.TrimSpace(quote.CustomerInfo.Name); name != "" && name != PlaceholderName {
			existing.Name = name
		}
		if phone := quote.CustomerInfo.Phone; phone != "" && phone != existing.Phone {
			existing.Phone = phone
		}
	}

	// Stable keeps first-appearance order across equal dates, so repeated
	// rebuilds of the same quote set are byte-identical.
	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].LastQuoteDate.After(customers[j].LastQuoteDate)
	})

	out := make([]domain.Customer, len(customers))
	for i, c := range customers {
		out[i] = *c
	}
	return out
}
