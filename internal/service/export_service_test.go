package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/abtweb/studio-api/internal/repository"
	"github.com/abtweb/studio-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExportService_QuotesCSV(t *testing.T) {
	store := setupStore(t)
	quoteRepo := repository.NewQuoteRepository(store, nil, zap.NewNop())
	customerRepo := repository.NewCustomerRepository(store, zap.NewNop())
	settingsRepo := repository.NewSettingsRepository(store, zap.NewNop())
	quoteSvc := service.NewQuoteService(quoteRepo, settingsRepo, zap.NewNop())
	exportSvc := service.NewExportService(quoteRepo, customerRepo, zap.NewNop())
	ctx := context.Background()

	_, _, err := quoteSvc.Create(ctx, createReq())
	require.NoError(t, err)

	data, err := exportSvc.QuotesCSV(ctx)
	require.NoError(t, err)

	// BOM prefix keeps Excel happy with Korean headers
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"고객명", "이메일", "연락처", "패키지", "가격", "상태", "요청일"}, records[0])
	assert.Equal(t, "홍길동", records[1][0])
	assert.Equal(t, "pending", records[1][5])
}

func TestExportService_QuotesXLSX(t *testing.T) {
	store := setupStore(t)
	quoteRepo := repository.NewQuoteRepository(store, nil, zap.NewNop())
	customerRepo := repository.NewCustomerRepository(store, zap.NewNop())
	exportSvc := service.NewExportService(quoteRepo, customerRepo, zap.NewNop())

	data, err := exportSvc.QuotesXLSX(context.Background())
	require.NoError(t, err)
	// xlsx is a zip container
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestExportService_CustomersCSVEmpty(t *testing.T) {
	store := setupStore(t)
	quoteRepo := repository.NewQuoteRepository(store, nil, zap.NewNop())
	customerRepo := repository.NewCustomerRepository(store, zap.NewNop())
	exportSvc := service.NewExportService(quoteRepo, customerRepo, zap.NewNop())

	data, err := exportSvc.CustomersCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
