package aggregate

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/abtweb/studio-api/internal/domain"
)

// LinkedQuoteIDs returns the set of quote ids already bound to a project.
// A quote in this set must never receive a second project.
func LinkedQuoteIDs(projects []domain.Project) map[string]bool {
	linked := make(map[string]bool)
	for _, p := range projects {
		if p.QuoteID != "" {
			linked[p.QuoteID] = true
		}
	}
	return linked
}

// UnlinkedQuotes returns the quotes eligible for explicit project creation:
// those not already bound to a project.
func UnlinkedQuotes(quotes []domain.Quote, projects []domain.Project) []domain.Quote {
	linked := LinkedQuoteIDs(projects)
	var out []domain.Quote
	for _, q := range quotes {
		if !linked[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

// AutoProjects seeds one project per accepted quote that is not already
// linked to an existing project. Progress, phase, and dates are randomized
// placeholders: this is demo seeding, not scheduling, and is intentionally
// non-deterministic (callers inject rng; tests pass a fixed seed).
func AutoProjects(quotes []domain.Quote, existing []domain.Project, now time.Time, rng *rand.Rand) []domain.Project {
	linked := LinkedQuoteIDs(existing)

	var generated []domain.Project
	for _, quote := range quotes {
		if quote.Status != domain.QuoteStatusAccepted || linked[quote.ID] {
			continue
		}
		name := quote.CustomerInfo.Name
		if name == "" {
			name = "고객"
		}
		generated = append(generated, domain.Project{
			ID:              strconv.Itoa(len(existing) + len(generated) + 1),
			Name:            name + "의 웹사이트",
			CustomerName:    quote.CustomerInfo.Name,
			Package:         quote.Package.Name,
			StartDate:       now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour),
			ExpectedEndDate: now.Add(time.Duration(rng.Intn(14*24)) * time.Hour),
			Progress:        rng.Intn(100),
			Status:          domain.ProjectStatuses[rng.Intn(len(domain.ProjectStatuses))],
			Price:           quote.TotalAmount,
			QuoteID:         quote.ID,
			UpdatedAt:       now,
		})
	}
	return generated
}
