package domain

import "time"

// QuoteStatus is the lifecycle status of a quote request.
type QuoteStatus string

const (
	QuoteStatusNew         QuoteStatus = "new"
	QuoteStatusReviewing   QuoteStatus = "reviewing"
	QuoteStatusQuoted      QuoteStatus = "quoted"
	QuoteStatusNegotiating QuoteStatus = "negotiating"
	QuoteStatusAccepted    QuoteStatus = "accepted"
	QuoteStatusRejected    QuoteStatus = "rejected"
	// QuoteStatusPending is the initial status assigned by the public checkout flow.
	QuoteStatusPending QuoteStatus = "pending"
)

// AdminQuoteStatuses are the statuses an admin may assign to a quote.
// "pending" is intake-only and not assignable afterwards.
var AdminQuoteStatuses = []QuoteStatus{
	QuoteStatusNew,
	QuoteStatusReviewing,
	QuoteStatusQuoted,
	QuoteStatusNegotiating,
	QuoteStatusAccepted,
	QuoteStatusRejected,
}

// AssignableByAdmin reports whether an admin status change to s is allowed.
func (s QuoteStatus) AssignableByAdmin() bool {
	for _, valid := range AdminQuoteStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// ProjectStatus is the delivery phase of a project.
type ProjectStatus string

const (
	ProjectStatusPlanning    ProjectStatus = "planning"
	ProjectStatusDesign      ProjectStatus = "design"
	ProjectStatusDevelopment ProjectStatus = "development"
	ProjectStatusTesting     ProjectStatus = "testing"
	ProjectStatusCompleted   ProjectStatus = "completed"
)

// ProjectStatuses lists all valid project statuses in phase order.
var ProjectStatuses = []ProjectStatus{
	ProjectStatusPlanning,
	ProjectStatusDesign,
	ProjectStatusDevelopment,
	ProjectStatusTesting,
	ProjectStatusCompleted,
}

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	for _, valid := range ProjectStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// CustomerInfo is the contact information submitted with a quote request.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message,omitempty"`
}

// PackageSelection is the website package chosen in a quote.
type PackageSelection struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// OptionSelection is a single add-on option included in a quote.
type OptionSelection struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// MaintenanceSelection is the maintenance plan attached to a quote, if any.
type MaintenanceSelection struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Quote is a customer's priced request for a website package plus options.
// The quote collection is the source of truth: customers and projects are
// derived views over it. A quote is immutable after creation except for its
// status field.
type Quote struct {
	ID           string                `json:"id"`
	CustomerInfo CustomerInfo          `json:"customerInfo"`
	Package      PackageSelection      `json:"package"`
	Options      []OptionSelection     `json:"options"`
	Maintenance  *MaintenanceSelection `json:"maintenance,omitempty"`
	TotalAmount  int64                 `json:"totalAmount"`
	Status       QuoteStatus           `json:"status"`
	CreatedAt    time.Time             `json:"createdAt"`

	QuoteNumber    string `json:"quoteNumber,omitempty"`
	ProjectName    string `json:"projectName,omitempty"`
	CompletionDate string `json:"completionDate,omitempty"`

	// TestData marks quotes created by the admin seed tooling so they can
	// be removed without touching real submissions.
	TestData bool `json:"isTestData,omitempty"`
}

// Amount returns the quote's contribution to customer totals: the stored
// total when present, falling back to the package price, then zero.
func (q *Quote) Amount() int64 {
	if q.TotalAmount != 0 {
		return q.TotalAmount
	}
	return q.Package.Price
}

// Customer is a derived, deduplicated view over quotes grouped by identity
// key. Customers are never created directly; the aggregation engine rebuilds
// the whole collection from the current quote set, so the integer id is
// positional and not stable across rebuilds.
type Customer struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	FirstVisit    time.Time `json:"firstVisit"`
	TotalQuotes   int       `json:"totalQuotes"`
	TotalAmount   int64     `json:"totalAmount"`
	Status        string    `json:"status"`
	LastQuoteDate time.Time `json:"lastQuoteDate"`
	QuoteIDs      []string  `json:"quoteIds"`
}

// Project is a unit of delivery work, either auto-derived from an accepted
// quote or explicitly created and linked 1:1 to a quote via QuoteID.
type Project struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	CustomerName    string        `json:"customerName"`
	Package         string        `json:"package"`
	StartDate       time.Time     `json:"startDate"`
	ExpectedEndDate time.Time     `json:"expectedEndDate"`
	Progress        int           `json:"progress"`
	Status          ProjectStatus `json:"status"`
	Price           int64         `json:"price"`
	QuoteID         string        `json:"quoteId,omitempty"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// Settings is the singleton admin configuration object.
type Settings struct {
	Company       CompanySettings      `json:"company"`
	Packages      PackageSettings      `json:"packages"`
	Notifications NotificationSettings `json:"notifications"`
	System        SystemSettings       `json:"system"`
}

type CompanySettings struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber"`
	ContactEmail  string `json:"contactEmail"`
	Address       string `json:"address"`
}

// PackageTier holds the price and build duration (in days) of one package.
type PackageTier struct {
	Price    int64 `json:"price"`
	Duration int   `json:"duration"`
}

type PackageSettings struct {
	Basic    PackageTier `json:"basic"`
	Standard PackageTier `json:"standard"`
	Premium  PackageTier `json:"premium"`
}

type NotificationSettings struct {
	Email    bool `json:"email"`
	Quotes   bool `json:"quotes"`
	Projects bool `json:"projects"`
}

type SystemSettings struct {
	AutoBackup     string `json:"autoBackup"`
	SessionTimeout int    `json:"sessionTimeout"`
	DebugMode      bool   `json:"debugMode"`
}

// DefaultSettings returns the factory configuration used when nothing has
// been saved yet.
func DefaultSettings() Settings {
	return Settings{
		Company: CompanySettings{
			Name:          "밝은내일 웹",
			ContactNumber: "010-2212-7714",
			ContactEmail:  "contact@brighttomorrow-web.com",
		},
		Packages: PackageSettings{
			Basic:    PackageTier{Price: 99000, Duration: 3},
			Standard: PackageTier{Price: 390000, Duration: 7},
			Premium:  PackageTier{Price: 590000, Duration: 14},
		},
		Notifications: NotificationSettings{
			Email:    true,
			Quotes:   true,
			Projects: true,
		},
		System: SystemSettings{
			AutoBackup:     "weekly",
			SessionTimeout: 30,
			DebugMode:      false,
		},
	}
}
