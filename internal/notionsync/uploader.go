package notionsync

import (
	"context"
	"fmt"

	"github.com/dvloznov/finance-logs/internal/domain"
	"github.com/dvloznov/finance-logs/internal/logger"
)

// Uploader forwards expense logs to a Notion expenses database, one page per
// record. It implements pipeline.ExpenseUploader.
type Uploader struct {
	service    NotionService
	databaseID string
}

// NewUploader creates an Uploader writing into the given expenses database.
func NewUploader(service NotionService, databaseID string) *Uploader {
	return &Uploader{
		service:    service,
		databaseID: databaseID,
	}
}

// AddExpenseLog creates one expense page for the record.
func (u *Uploader) AddExpenseLog(ctx context.Context, expense domain.ExpenseLog) error {
	log := logger.FromContext(ctx)

	page, err := u.service.CreatePage(ctx, u.databaseID, ExpenseToNotionProperties(expense))
	if err != nil {
		return fmt.Errorf("add expense log: %w", err)
	}

	log.Debug().
		Str("page_id", string(page.ID)).
		Str("product", expense.Product).
		Float64("expense", expense.Expense).
		Msg("Created expense page")

	return nil
}
