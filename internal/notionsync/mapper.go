package notionsync

import (
	"time"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/finance-logs/internal/domain"
)

// ExpenseToNotionProperties converts an ExpenseLog to the properties of one
// page in the expenses database: Product (title), Date (date), Expense
// (number).
func ExpenseToNotionProperties(log domain.ExpenseLog) notionapi.Properties {
	props := notionapi.Properties{
		"Product": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: log.Product,
					},
				},
			},
		},
		"Expense": notionapi.NumberProperty{
			Number: log.Expense,
		},
	}

	// Date is YYYY-MM-DD from a validated Transaction; a parse failure here
	// would be a programming error, so the property is simply omitted.
	if parsed, err := time.Parse(domain.ExpenseDateLayout, log.Date); err == nil {
		props["Date"] = notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: func() *notionapi.Date {
					d := notionapi.Date(time.Date(
						parsed.Year(), parsed.Month(), parsed.Day(),
						0, 0, 0, 0, time.UTC,
					))
					return &d
				}(),
			},
		}
	}

	return props
}
