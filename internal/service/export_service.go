package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// utf8BOM keeps Korean headers readable when the CSV is opened in Excel.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportService renders the quote and customer collections as downloadable
// CSV and XLSX files for the admin dashboard.
type ExportService struct {
	quotes    *repository.QuoteRepository
	customers *repository.CustomerRepository
	logger    *zap.Logger
}

func NewExportService(quotes *repository.QuoteRepository, customers *repository.CustomerRepository, logger *zap.Logger) *ExportService {
	return &ExportService{quotes: quotes, customers: customers, logger: logger}
}

// QuotesCSV renders all quotes as CSV.
func (s *ExportService) QuotesCSV(ctx context.Context) ([]byte, error) {
	quotes, err := s.quotes.List(ctx)
	if err != nil {
		return nil, err
	}
	return writeCSV(quoteHeader, quoteRows(quotes))
}

// CustomersCSV renders the derived customer collection as CSV.
func (s *ExportService) CustomersCSV(ctx context.Context) ([]byte, error) {
	return writeCSV(customerHeader, customerRows(s.customers.List(ctx)))
}

// QuotesXLSX renders all quotes as a single-sheet workbook.
func (s *ExportService) QuotesXLSX(ctx context.Context) ([]byte, error) {
	quotes, err := s.quotes.List(ctx)
	if err != nil {
		return nil, err
	}
	return writeXLSX("견적", quoteHeader, quoteRows(quotes))
}

// CustomersXLSX renders the customer collection as a single-sheet workbook.
func (s *ExportService) CustomersXLSX(ctx context.Context) ([]byte, error) {
	return writeXLSX("고객", customerHeader, customerRows(s.customers.List(ctx)))
}

var quoteHeader = []string{"고객명", "이메일", "연락처", "패키지", "가격", "상태", "요청일"}

func quoteRows(quotes []domain.Quote) [][]string {
	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, []string{
			q.CustomerInfo.Name,
			q.CustomerInfo.Email,
			q.CustomerInfo.Phone,
			q.Package.Name,
			strconv.FormatInt(q.Package.Price, 10),
			string(q.Status),
			q.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rows
}

var customerHeader = []string{"이름", "이메일", "연락처", "첫 방문일", "총 견적 수", "총 주문 금액", "상태"}

func customerRows(customers []domain.Customer) [][]string {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			c.Name,
			c.Email,
			c.Phone,
			c.FirstVisit.Format("2006-01-02"),
			strconv.Itoa(c.TotalQuotes),
			strconv.FormatInt(c.TotalAmount, 10),
			c.Status,
		})
	}
	return rows
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeXLSX(sheet string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, label := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, label); err != nil {
			return nil, err
		}
	}
	for rowIdx, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
