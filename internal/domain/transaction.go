package domain

import (
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical external date format for extracted
	// transactions. time.Parse also accepts zero-padded values such as
	// "01/05/2024" against this layout.
	DateLayout = "1/2/2006"

	// ExpenseDateLayout is the date format expected by the expense ledger.
	ExpenseDateLayout = "2006-01-02"
)

// TransactionType tags a transaction's classification state.
type TransactionType string

const (
	// TypeUnprocessed is the only type this pipeline assigns. Classification
	// is reserved for a later stage.
	TypeUnprocessed TransactionType = "unprocessed"
)

// Transaction is one normalized transaction extracted from a statement file.
// Construct it with NewTransaction; the zero value is not valid.
type Transaction struct {
	Date        string          // calendar date, MM/DD/YYYY
	Description string          // verbatim from the statement
	Amount      float64         // coerced from the extractor's string output
	Type        TransactionType // set at construction, not mutated here
}

// NewTransaction builds a Transaction from the extractor's raw string fields.
// The date must parse as MM/DD/YYYY and the amount must be numeric; either
// violation returns a *ValidationError and no record.
func NewTransaction(date, description, amount string) (Transaction, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Transaction{}, &ValidationError{
			Field:  "date",
			Value:  date,
			Reason: "doesn't match format MM/DD/YYYY",
		}
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return Transaction{}, &ValidationError{
			Field:  "amount",
			Value:  amount,
			Reason: "not a numeric value",
		}
	}

	return Transaction{
		Date:        date,
		Description: description,
		Amount:      value,
		Type:        TypeUnprocessed,
	}, nil
}

// ExpenseLog is the shape the ledger service accepts for one expense entry.
type ExpenseLog struct {
	Date    string  // YYYY-MM-DD
	Product string  // transaction description
	Expense float64 // transaction amount
}

// ToExpenseLog converts a validated Transaction into the ledger's expense
// shape. The date is re-formatted from MM/DD/YYYY to YYYY-MM-DD; the
// conversion has no failure modes of its own.
func (t Transaction) ToExpenseLog() ExpenseLog {
	// Date was validated at construction, so re-parsing cannot fail.
	parsed, _ := time.Parse(DateLayout, t.Date)

	return ExpenseLog{
		Date:    parsed.Format(ExpenseDateLayout),
		Product: t.Description,
		Expense: t.Amount,
	}
}
