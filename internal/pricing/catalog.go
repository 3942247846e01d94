package pricing

// Package, option, and maintenance catalogs for the checkout flow. Package
// prices and build durations can be overridden by the saved admin settings;
// options and maintenance plans are fixed.

// Package is one of the three website tiers.
type Package struct {
	ID       string
	Name     string
	Price    int64
	Duration int // build duration in days
}

// Option is an add-on service selectable during checkout.
type Option struct {
	ID    string
	Name  string
	Price int64
}

// Maintenance is a monthly maintenance plan.
type Maintenance struct {
	ID    string
	Name  string
	Price int64
}

// Packages is the website package catalog keyed by tier id.
var Packages = map[string]Package{
	"basic":    {ID: "basic", Name: "스파크 1P", Price: 99000, Duration: 3},
	"standard": {ID: "standard", Name: "빌더 6P", Price: 390000, Duration: 7},
	"premium":  {ID: "premium", Name: "맥스 10P", Price: 590000, Duration: 14},
}

// Options is the add-on option catalog keyed by option id.
var Options = map[string]Option{
	"domain":    {ID: "domain", Name: "도메인 등록 및 연결 (1년) - 스파크 1P만", Price: 25000},
	"hosting":   {ID: "hosting", Name: "웹 호스팅 (1년)", Price: 35000},
	"email":     {ID: "email", Name: "이메일 호스팅 (1년)", Price: 45000},
	"social":    {ID: "social", Name: "소셜미디어 연동", Price: 35000},
	"payment":   {ID: "payment", Name: "결제 시스템 연동", Price: 80000},
	"booking":   {ID: "booking", Name: "예약 시스템", Price: 65000},
	"seo":       {ID: "seo", Name: "고급 SEO 최적화", Price: 55000},
	"chat":      {ID: "chat", Name: "실시간 채팅 시스템", Price: 40000},
	"analytics": {ID: "analytics", Name: "고급 분석 도구", Price: 50000},
	"multilang": {ID: "multilang", Name: "다국어 지원", Price: 75000},
}

// MaintenancePlans is the maintenance plan catalog keyed by plan id.
var MaintenancePlans = map[string]Maintenance{
	"none":     {ID: "none", Name: "유지보수 없음", Price: 0},
	"basic":    {ID: "basic", Name: "🔧 기본 유지보수", Price: 69000},
	"standard": {ID: "standard", Name: "⚡ 표준 유지보수", Price: 149000},
	"premium":  {ID: "premium", Name: "🚀 프리미엄 유지보수", Price: 249000},
}
