package notionsync

import (
	"testing"
	"time"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvloznov/finance-logs/internal/domain"
)

func TestExpenseToNotionProperties(t *testing.T) {
	expense := domain.ExpenseLog{
		Date:    "2024-01-05",
		Product: "Grocery Store",
		Expense: 45,
	}

	props := ExpenseToNotionProperties(expense)

	title, ok := props["Product"].(notionapi.TitleProperty)
	require.True(t, ok, "Product must be the title property")
	require.Len(t, title.Title, 1)
	assert.Equal(t, "Grocery Store", title.Title[0].Text.Content)

	number, ok := props["Expense"].(notionapi.NumberProperty)
	require.True(t, ok)
	assert.Equal(t, 45.0, number.Number)

	date, ok := props["Date"].(notionapi.DateProperty)
	require.True(t, ok)
	require.NotNil(t, date.Date)
	require.NotNil(t, date.Date.Start)

	start := time.Time(*date.Date.Start)
	assert.Equal(t, 2024, start.Year())
	assert.Equal(t, time.January, start.Month())
	assert.Equal(t, 5, start.Day())
}

func TestExpenseToNotionProperties_BadDateOmitted(t *testing.T) {
	props := ExpenseToNotionProperties(domain.ExpenseLog{
		Date:    "not-a-date",
		Product: "x",
		Expense: 1,
	})

	_, hasDate := props["Date"]
	assert.False(t, hasDate)
}
