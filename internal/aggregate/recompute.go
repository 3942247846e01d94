package aggregate

import (
	"math/rand"
	"time"

	"github.com/abtweb/studio-api/internal/domain"
)

// Result holds the derived collections produced by one recomputation pass.
type Result struct {
	Customers []domain.Customer
	Projects  []domain.Project
}

// Recompute derives the customer and project collections from the current
// quote collection. Customers are rebuilt from scratch on every call.
// Projects preserve the existing collection (explicit quote links are the
// one piece of state not derivable from quotes); auto-seeding runs only when
// no project collection exists yet.
//
// Recompute is a pure function of its inputs and safe to call repeatedly
// and concurrently with itself.
func Recompute(quotes []domain.Quote, existingProjects []domain.Project, now time.Time, rng *rand.Rand) Result {
	projects := existingProjects
	if len(projects) == 0 {
		projects = AutoProjects(quotes, nil, now, rng)
	}
	return Result{
		Customers: DeriveCustomers(quotes),
		Projects:  projects,
	}
}
