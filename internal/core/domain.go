package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Monthly BudgetPeriod = "monthly"
	Yearly  BudgetPeriod = "yearly"
)

const (
	MaxCategoryLen = 100
	MaxNotesLen    = 500
)

type (
	TransactionType string

	BudgetPeriod string

	// Date is a calendar date with no time-of-day semantics. Date-only
	// strings are timezone-ambiguous, so every Date in the system is
	// interpreted in UTC; filtering and month navigation use the same zone.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID        string
		UserID    string
		Type      TransactionType
		Amount    Money
		Category  string
		Date      Date
		Notes     string
		CreatedAt time.Time // ordering tiebreak for same-day transactions
	}

	Budget struct {
		ID       string
		UserID   string
		Category string
		Amount   Money
		Period   BudgetPeriod
	}

	Profile struct {
		ID        string
		UserID    string
		Username  string
		FullName  string
		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrAmountTooLarge  = errors.New("amount too large")
	ErrEmptyCategory   = errors.New("empty category")
	ErrCategoryTooLong = errors.New("category too long (max 100 characters)")
	ErrNotesTooLong    = errors.New("notes too long (max 500 characters)")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidPeriod   = errors.New("invalid budget period")
	ErrInvalidDate     = errors.New("invalid date")
)

// NewDate creates a Date from year, month (1-12), day, pinned to UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date-only string in YYYY-MM-DD form, interpreted in UTC.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// MonthIndex returns the zero-based calendar month (January is 0). Months are
// addressed with zero-based indexes throughout, matching the wire format.
func (d Date) MonthIndex() int {
	return int(d.Time.Month()) - 1
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// String renders the date-only form used on the wire and in storage.
func (d Date) String() string {
	return d.Time.Format("2006-01-02")
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (p BudgetPeriod) Valid() bool {
	return p == Monthly || p == Yearly
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	if m.Cents > MaxAmountCents {
		return ErrAmountTooLarge
	}
	return nil
}

func validateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return ErrEmptyCategory
	}
	if len(category) > MaxCategoryLen {
		return ErrCategoryTooLong
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := validateCategory(t.Category); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(t.Notes) > MaxNotesLen {
		return ErrNotesTooLong
	}
	return nil
}

func (b Budget) Validate() error {
	if err := validateCategory(b.Category); err != nil {
		return err
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if !b.Period.Valid() {
		return ErrInvalidPeriod
	}
	return nil
}
