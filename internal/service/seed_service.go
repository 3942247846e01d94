package service

import (
	"context"
	"time"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/recordstore"
	"github.com/abtweb/studio-api/internal/repository"
	"go.uber.org/zap"
)

// SeedService manages the demo dataset: restoring the bundled sample quotes,
// stripping them back out, and wiping the whole store. Sample quotes carry
// the TestData flag so removal never touches real submissions.
type SeedService struct {
	store  *recordstore.Store
	quotes *repository.QuoteRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewSeedService(store *recordstore.Store, quotes *repository.QuoteRepository, logger *zap.Logger) *SeedService {
	return &SeedService{store: store, quotes: quotes, logger: logger, now: time.Now}
}

// Restore merges the sample quotes into the collection, skipping ids that
// already exist. Restoring twice is a no-op.
func (s *SeedService) Restore(ctx context.Context) (int, error) {
	existing, err := s.quotes.List(ctx)
	if err != nil {
		return 0, err
	}
	present := make(map[string]bool, len(existing))
	for _, q := range existing {
		present[q.ID] = true
	}

	added := 0
	for _, sample := range sampleQuotes(s.now()) {
		if present[sample.ID] {
			continue
		}
		if err := s.quotes.Append(ctx, sample); err != nil {
			return added, err
		}
		added++
	}

	s.logger.Info("Sample quotes restored", zap.Int("added", added))
	return added, nil
}

// RemoveTestData deletes every quote flagged as test data.
func (s *SeedService) RemoveTestData(ctx context.Context) (int, error) {
	quotes, err := s.quotes.List(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, q := range quotes {
		if !q.TestData {
			continue
		}
		if err := s.quotes.Remove(ctx, q.ID); err != nil {
			return removed, err
		}
		removed++
	}

	s.logger.Info("Test data removed", zap.Int("removed", removed))
	return removed, nil
}

// ResetAll wipes every collection and the saved settings. Destructive and
// unrecoverable outside of backups.
func (s *SeedService) ResetAll(ctx context.Context) error {
	for _, key := range []string{
		recordstore.KeyQuotes,
		recordstore.KeyCustomers,
		recordstore.KeyProjects,
		recordstore.KeySettings,
	} {
		if err := s.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	s.logger.Warn("All data reset")
	return nil
}

// sampleQuotes returns the bundled demo dataset with submission times
// anchored relative to now.
func sampleQuotes(now time.Time) []domain.Quote {
	return []domain.Quote{
		{
			ID: "sample-001",
			CustomerInfo: domain.CustomerInfo{
				Name:    "허진영",
				Email:   "heo@brighttomorrow.com",
				Phone:   "010-1234-5678",
				Message: "밝은내일 웹사이트 리뉴얼 프로젝트",
			},
			Package: domain.PackageSelection{ID: "premium", Name: "맥스 10P", Price: 590000},
			Options: []domain.OptionSelection{
				{ID: "domain", Name: "도메인 등록 및 연결 (1년)", Price: 25000},
			},
			Maintenance: &domain.MaintenanceSelection{Name: "기본 유지보수 (1개월)", Price: 69000},
			TotalAmount: 684000,
			Status:      domain.QuoteStatusAccepted,
			CreatedAt:   now.AddDate(0, 0, -15),
			QuoteNumber: "BT-2024-1215-001",
			ProjectName: "밝은내일 웹사이트 리뉴얼",
			TestData:    true,
		},
		{
			ID: "sample-002",
			CustomerInfo: domain.CustomerInfo{
				Name:    "김영수",
				Email:   "kim.youngsu@company.com",
				Phone:   "010-9876-5432",
				Message: "회사 홈페이지 제작 요청",
			},
			Package: domain.PackageSelection{ID: "standard", Name: "빌더 6P", Price: 390000},
			Options: []domain.OptionSelection{
				{ID: "seo", Name: "SEO 최적화", Price: 50000},
			},
			Maintenance: &domain.MaintenanceSelection{Name: "기본 유지보수 (1개월)", Price: 69000},
			TotalAmount: 440000,
			Status:      domain.QuoteStatusReviewing,
			CreatedAt:   now.AddDate(0, 0, -12),
			QuoteNumber: "BT-2024-1218-002",
			ProjectName: "김영수 회사 홈페이지",
			TestData:    true,
		},
		{
			ID: "sample-003",
			CustomerInfo: domain.CustomerInfo{
				Name:    "이미나",
				Email:   "lee.mina@shop.com",
				Phone:   "010-5555-1234",
				Message: "온라인 쇼핑몰 제작",
			},
			Package: domain.PackageSelection{ID: "premium", Name: "맥스 10P", Price: 590000},
			Options: []domain.OptionSelection{
				{ID: "payment", Name: "결제 시스템 연동", Price: 100000},
				{ID: "inventory", Name: "재고 관리 시스템", Price: 80000},
			},
			Maintenance: &domain.MaintenanceSelection{Name: "프리미엄 유지보수 (1개월)", Price: 249000},
			TotalAmount: 770000,
			Status:      domain.QuoteStatusNegotiating,
			CreatedAt:   now.AddDate(0, 0, -8),
			QuoteNumber: "BT-2024-1222-003",
			ProjectName: "이미나 쇼핑몰",
			TestData:    true,
		},
	}
}
