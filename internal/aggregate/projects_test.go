package aggregate_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/abtweb/studio-api/internal/aggregate"
	"github.com/abtweb/studio-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acceptedQuote(id, name string, amount int64, createdAt time.Time) domain.Quote {
	q := quoteAt(id, name, name+"@x.com", "", amount, createdAt)
	q.Status = domain.QuoteStatusAccepted
	q.Package = domain.PackageSelection{ID: "standard", Name: "빌더 6P", Price: 390000}
	return q
}

func TestAutoProjects_OnlyAcceptedQuotes(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(1))

	quotes := []domain.Quote{
		acceptedQuote("q1", "홍길동", 429000, now.AddDate(0, 0, -3)),
		quoteAt("q2", "김철수", "kim@x.com", "", 99000, now.AddDate(0, 0, -2)),
	}

	projects := aggregate.AutoProjects(quotes, nil, now, rng)
	require.Len(t, projects, 1)
	assert.Equal(t, "홍길동의 웹사이트", projects[0].Name)
	assert.Equal(t, "q1", projects[0].QuoteID)
	assert.Equal(t, int64(429000), projects[0].Price)
	assert.True(t, projects[0].Status.Valid())
	assert.GreaterOrEqual(t, projects[0].Progress, 0)
	assert.Less(t, projects[0].Progress, 100)
}

func TestAutoProjects_SkipsAlreadyLinkedQuotes(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(1))

	quotes := []domain.Quote{
		acceptedQuote("q1", "홍길동", 429000, now.AddDate(0, 0, -3)),
		acceptedQuote("q2", "이몽룡", 649000, now.AddDate(0, 0, -2)),
	}
	existing := []domain.Project{{ID: "p1", Name: "기존 프로젝트", QuoteID: "q1"}}

	projects := aggregate.AutoProjects(quotes, existing, now, rng)
	require.Len(t, projects, 1)
	assert.Equal(t, "q2", projects[0].QuoteID)
}

func TestUnlinkedQuotes_ExcludesLinked(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	quotes := []domain.Quote{
		acceptedQuote("q1", "홍길동", 429000, now),
		acceptedQuote("q2", "이몽룡", 649000, now),
		quoteAt("q3", "김철수", "kim@x.com", "", 99000, now),
	}
	projects := []domain.Project{{ID: "p1", QuoteID: "q2"}}

	unlinked := aggregate.UnlinkedQuotes(quotes, projects)
	require.Len(t, unlinked, 2)
	assert.Equal(t, "q1", unlinked[0].ID)
	assert.Equal(t, "q3", unlinked[1].ID)
}

func TestRecompute_SeedsProjectsOnlyWhenEmpty(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(7))
	quotes := []domain.Quote{acceptedQuote("q1", "홍길동", 429000, now.AddDate(0, 0, -1))}

	seeded := aggregate.Recompute(quotes, nil, now, rng)
	require.Len(t, seeded.Projects, 1)

	// an existing collection is preserved verbatim, never re-seeded
	existing := []domain.Project{{ID: "p1", Name: "수동 프로젝트", QuoteID: "q1"}}
	kept := aggregate.Recompute(quotes, existing, now, rng)
	assert.Equal(t, existing, kept.Projects)
}

func TestRecompute_CustomersFollowQuoteDeletion(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(7))
	quotes := []domain.Quote{
		quoteAt("q1", "홍길동", "hong@x.com", "", 99000, now.AddDate(0, 0, -2)),
		quoteAt("q2", "김철수", "kim@x.com", "", 390000, now.AddDate(0, 0, -1)),
	}

	before := aggregate.Recompute(quotes, nil, now, rng)
	require.Len(t, before.Customers, 2)

	after := aggregate.Recompute(quotes[:1], nil, now, rng)
	require.Len(t, after.Customers, 1)
	assert.Equal(t, "홍길동", after.Customers[0].Name)
}
