package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmiranda/spendclass/internal/category"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, filter Filter) ([]*Transaction, error)
	ListByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]*Transaction, error)
	SummarizeByCategory(ctx context.Context, filter Filter) ([]CategorySummary, error)
	ListCategoryCounterparts(ctx context.Context, filter Filter) ([]CounterpartRow, error)
}

// Classifier assigns a spending category to a not-yet-persisted transaction.
// Implementations must return ErrCannotClassify (possibly wrapped) when the
// answer is not a known category and ErrClassifierUnavailable when the
// backend cannot be reached.
type Classifier interface {
	Classify(ctx context.Context, params CreateParams) (category.Category, error)
}

type Service struct {
	repo       Repository
	classifier Classifier
}

func NewService(repo Repository, classifier Classifier) *Service {
	return &Service{repo: repo, classifier: classifier}
}

type CreateParams struct {
	TransactionID      uuid.UUID
	Amount             float64
	CounterpartName    string
	TransactionTimeUTC time.Time
	TransactionType    string
}

// Create classifies the candidate transaction and persists it. The write
// only happens once classification has succeeded; any classifier error
// leaves the store untouched.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	cat, err := s.classifier.Classify(ctx, params)
	if err != nil {
		return nil, err
	}

	tx := &Transaction{
		TransactionID:      params.TransactionID,
		Amount:             params.Amount,
		CounterpartName:    params.CounterpartName,
		TransactionTimeUTC: params.TransactionTimeUTC,
		TransactionType:    params.TransactionType,
		Category:           cat,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// GetByTransactionID returns every row carrying the given transaction_id.
// The identifier is caller-supplied and not unique, so the result is a list;
// an empty result is ErrNotFound.
func (s *Service) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]*Transaction, error) {
	txs, err := s.repo.ListByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if len(txs) == 0 {
		return nil, ErrNotFound
	}

	return txs, nil
}

func (s *Service) SummarizeByCategory(ctx context.Context, filter Filter) ([]CategorySummary, error) {
	return s.repo.SummarizeByCategory(ctx, filter)
}

// CounterpartsPerCategory groups the store's distinct (category,
// counterpart) pairs into one record per category present. Categories with
// no matching rows are absent from the result.
func (s *Service) CounterpartsPerCategory(ctx context.Context, filter Filter) ([]CategoryCounterparts, error) {
	rows, err := s.repo.ListCategoryCounterparts(ctx, filter)
	if err != nil {
		return nil, err
	}

	return groupCounterparts(rows), nil
}

func groupCounterparts(rows []CounterpartRow) []CategoryCounterparts {
	index := make(map[category.Category]int)

	var grouped []CategoryCounterparts

	for _, row := range rows {
		i, seen := index[row.Category]
		if !seen {
			i = len(grouped)
			index[row.Category] = i

			grouped = append(grouped, CategoryCounterparts{Category: row.Category})
		}

		if containsName(grouped[i].UniqueCounterparts, row.CounterpartName) {
			continue
		}

		grouped[i].UniqueCounterparts = append(grouped[i].UniqueCounterparts, row.CounterpartName)
	}

	return grouped
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}

	return false
}
