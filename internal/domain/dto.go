package domain

import "time"

// CreateQuoteRequest is the payload submitted by the public checkout flow.
// Prices are never taken from the client; the server prices the selection
// from the package catalog and the saved settings.
type CreateQuoteRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Email       string   `json:"email" validate:"required,email,max=200"`
	Phone       string   `json:"phone" validate:"required,max=30"`
	Message     string   `json:"message" validate:"max=2000"`
	PackageID   string   `json:"packageId" validate:"required,oneof=basic standard premium"`
	OptionIDs   []string `json:"optionIds" validate:"max=20"`
	Maintenance string   `json:"maintenance" validate:"omitempty,oneof=none basic standard premium"`
	ProjectName string   `json:"projectName" validate:"max=200"`
}

// UpdateQuoteStatusRequest changes the status of an existing quote.
type UpdateQuoteStatusRequest struct {
	Status QuoteStatus `json:"status" validate:"required"`
}

// CreateProjectRequest explicitly creates a project linked 1:1 to a quote.
type CreateProjectRequest struct {
	QuoteID   string        `json:"quoteId" validate:"required"`
	Name      string        `json:"name" validate:"required,max=200"`
	StartDate time.Time     `json:"startDate" validate:"required"`
	EndDate   time.Time     `json:"endDate" validate:"required"`
	Status    ProjectStatus `json:"status" validate:"required"`
	Progress  int           `json:"progress" validate:"gte=0,lte=100"`
}

// LoginRequest carries the shared admin secret.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on a successful admin login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// QuoteBreakdown is the priced summary returned with a created quote.
type QuoteBreakdown struct {
	ServiceAmount int64 `json:"serviceAmount"`
	TaxAmount     int64 `json:"taxAmount"`
	TotalAmount   int64 `json:"totalAmount"`
}

// DayCount is a per-day quote count for the dashboard trend chart.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// MonthAmount is a per-month revenue total for the analytics chart.
type MonthAmount struct {
	Month  string `json:"month"`
	Amount int64  `json:"amount"`
}

// ActivityEntry is one row of the dashboard's recent-activity feed.
type ActivityEntry struct {
	Type  string    `json:"type"`
	Title string    `json:"title"`
	Time  time.Time `json:"time"`
}

// DashboardMetrics aggregates the headline numbers and chart series shown
// on the admin dashboard.
type DashboardMetrics struct {
	TotalQuotes         int                `json:"totalQuotes"`
	TotalCustomers      int                `json:"totalCustomers"`
	ActiveProjects      int                `json:"activeProjects"`
	MonthlyRevenue      int64              `json:"monthlyRevenue"`
	QuotesLast7Days     []DayCount         `json:"quotesLast7Days"`
	PackageDistribution map[string]int     `json:"packageDistribution"`
	RevenueLast6Months  []MonthAmount      `json:"revenueLast6Months"`
	RecentActivity      []ActivityEntry    `json:"recentActivity"`
	ProjectStatusCounts map[string]int     `json:"projectStatusCounts"`
	CustomerStats       CustomerStatistics `json:"customerStats"`
}

// CustomerStatistics summarizes the derived customer collection.
type CustomerStatistics struct {
	NewThisMonth    int   `json:"newThisMonth"`
	RepeatCustomers int   `json:"repeatCustomers"`
	AvgOrderValue   int64 `json:"avgOrderValue"`
}
