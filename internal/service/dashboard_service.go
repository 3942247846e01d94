package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/repository"
	"go.uber.org/zap"
)

// DashboardService computes the admin dashboard's headline numbers and chart
// series. Everything here is a read-only view over the three collections.
type DashboardService struct {
	quotes    *repository.QuoteRepository
	customers *CustomerService
	projects  *ProjectService
	logger    *zap.Logger
	now       func() time.Time
}

func NewDashboardService(quotes *repository.QuoteRepository, customers *CustomerService, projects *ProjectService, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		quotes:    quotes,
		customers: customers,
		projects:  projects,
		logger:    logger,
		now:       time.Now,
	}
}

// Metrics assembles the full dashboard payload.
func (s *DashboardService) Metrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	quotes, err := s.quotes.List(ctx)
	if err != nil {
		return nil, err
	}
	customers := s.customers.List(ctx)
	projects := s.projects.List(ctx)
	now := s.now()

	m := &domain.DashboardMetrics{
		TotalQuotes:         len(quotes),
		TotalCustomers:      len(customers),
		ActiveProjects:      activeProjects(projects),
		MonthlyRevenue:      monthlyRevenue(projects, now),
		QuotesLast7Days:     quotesLast7Days(quotes, now),
		PackageDistribution: packageDistribution(quotes),
		RevenueLast6Months:  revenueLast6Months(projects, now),
		RecentActivity:      recentActivity(quotes, projects),
		ProjectStatusCounts: s.projects.StatusCounts(ctx),
		CustomerStats:       s.customers.Stats(ctx),
	}
	return m, nil
}

// activeProjects counts projects not yet completed.
func activeProjects(projects []domain.Project) int {
	n := 0
	for _, p := range projects {
		if p.Status != domain.ProjectStatusCompleted {
			n++
		}
	}
	return n
}

// monthlyRevenue sums the price of projects completed in the current month.
func monthlyRevenue(projects []domain.Project, now time.Time) int64 {
	var total int64
	for _, p := range projects {
		if p.Status == domain.ProjectStatusCompleted &&
			p.UpdatedAt.Year() == now.Year() && p.UpdatedAt.Month() == now.Month() {
			total += p.Price
		}
	}
	return total
}

// quotesLast7Days buckets quote submissions per calendar day, oldest first,
// always emitting seven entries.
func quotesLast7Days(quotes []domain.Quote, now time.Time) []domain.DayCount {
	counts := make(map[string]int)
	for _, q := range quotes {
		counts[q.CreatedAt.Format("2006-01-02")]++
	}

	out := make([]domain.DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		out = append(out, domain.DayCount{Date: day, Count: counts[day]})
	}
	return out
}

// packageDistribution tallies quotes per package tier.
func packageDistribution(quotes []domain.Quote) map[string]int {
	dist := map[string]int{"basic": 0, "standard": 0, "premium": 0}
	for _, q := range quotes {
		dist[q.Package.ID]++
	}
	return dist
}

// revenueLast6Months sums completed-project revenue per calendar month,
// oldest first, always emitting six entries.
func revenueLast6Months(projects []domain.Project, now time.Time) []domain.MonthAmount {
	totals := make(map[string]int64)
	for _, p := range projects {
		if p.Status == domain.ProjectStatusCompleted {
			totals[p.UpdatedAt.Format("2006-01")] += p.Price
		}
	}

	out := make([]domain.MonthAmount, 0, 6)
	for i := 5; i >= 0; i-- {
		month := now.AddDate(0, -i, 0).Format("2006-01")
		out = append(out, domain.MonthAmount{Month: month, Amount: totals[month]})
	}
	return out
}

// recentActivity merges the latest quote submissions and project updates into
// one feed, newest first, capped at ten entries.
func recentActivity(quotes []domain.Quote, projects []domain.Project) []domain.ActivityEntry {
	entries := make([]domain.ActivityEntry, 0, len(quotes)+len(projects))
	for _, q := range quotes {
		entries = append(entries, domain.ActivityEntry{
			Type:  "quote",
			Title: fmt.Sprintf("%s - %s 견적 요청", q.CustomerInfo.Name, q.Package.Name),
			Time:  q.CreatedAt,
		})
	}
	for _, p := range projects {
		entries = append(entries, domain.ActivityEntry{
			Type:  "project",
			Title: fmt.Sprintf("%s 프로젝트 (%s)", p.Name, p.Status),
			Time:  p.UpdatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.After(entries[j].Time)
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}
	return entries
}
