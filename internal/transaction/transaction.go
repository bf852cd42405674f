package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmiranda/spendclass/internal/category"
)

var (
	// ErrNotFound is returned when a transaction_id lookup matches no rows.
	ErrNotFound = errors.New("transaction not found")

	// ErrCannotClassify is returned when the classifier's answer is not one
	// of the known categories. The transaction is never persisted.
	ErrCannotClassify = errors.New("unable to classify the transaction category")

	// ErrClassifierUnavailable is returned when the classification backend
	// cannot be reached or errors.
	ErrClassifierUnavailable = errors.New("classification service unavailable")
)

// Transaction represents a recorded financial transaction. Rows are
// write-once: there is no update or delete path.
type Transaction struct {
	ID                 int64
	TransactionID      uuid.UUID // caller-supplied, not unique
	Amount             float64
	CounterpartName    string
	TransactionTimeUTC time.Time
	TransactionType    string
	Category           category.Category
	CreatedAt          time.Time
}

// Filter narrows a transaction query. Nil fields impose no constraint.
type Filter struct {
	CounterpartName *string // case-insensitive substring match
	Category        *category.Category
	StartDate       *time.Time // inclusive
	EndDate         *time.Time // inclusive
}

// CategorySummary is the per-category aggregate over a filtered set.
// Derived on every read, never persisted.
type CategorySummary struct {
	Category         category.Category
	TransactionCount int64
	TotalAmount      float64
}

// CategoryCounterparts lists the distinct counterpart names observed under
// one category within a filtered set, in first-seen order.
type CategoryCounterparts struct {
	Category           category.Category
	UniqueCounterparts []string
}

// CounterpartRow is a distinct (category, counterpart) pair as returned by
// the store, before grouping.
type CounterpartRow struct {
	Category        category.Category
	CounterpartName string
}
