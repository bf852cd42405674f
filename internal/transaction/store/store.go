package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmiranda/spendclass/internal/category"
	"github.com/dmiranda/spendclass/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row from the scanner.
// Expected column order: id, transaction_id, amount, counterpart_name, transaction_time_utc, transaction_type, category, created_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var catStr string

	if err := s.Scan(
		&tx.ID, &tx.TransactionID, &tx.Amount, &tx.CounterpartName,
		&tx.TransactionTimeUTC, &tx.TransactionType, &catStr, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Category = category.Category(catStr)

	return &tx, nil
}

const selectTransactionColumns = `
	id, transaction_id, amount, counterpart_name, transaction_time_utc, transaction_type, category, created_at
`

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, amount, counterpart_name, transaction_time_utc, transaction_type, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.TransactionID,
		tx.Amount,
		tx.CounterpartName,
		tx.TransactionTimeUTC,
		tx.TransactionType,
		tx.Category.String(),
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.Filter) ([]*transaction.Transaction, error) {
	clause, args := buildFilterClause(filter, 1)

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE TRUE` + clause + `
		ORDER BY transaction_time_utc ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

// ListByTransactionID returns every row with the given transaction_id.
// The column is not unique, so zero, one, or many rows are all valid.
func (s *Store) ListByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE transaction_id = $1
		ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions by transaction_id: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

// SummarizeByCategory groups the filtered rows by category with a row count
// and the arithmetic sum of amounts. Categories without matching rows are
// simply absent.
func (s *Store) SummarizeByCategory(ctx context.Context, filter transaction.Filter) ([]transaction.CategorySummary, error) {
	clause, args := buildFilterClause(filter, 1)

	query := `
		SELECT category, COUNT(id), SUM(amount)
		FROM transactions
		WHERE TRUE` + clause + `
		GROUP BY category
		ORDER BY category ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summarizing by category: %w", err)
	}
	defer rows.Close()

	var summaries []transaction.CategorySummary

	for rows.Next() {
		var summary transaction.CategorySummary

		var catStr string

		if err := rows.Scan(&catStr, &summary.TransactionCount, &summary.TotalAmount); err != nil {
			return nil, fmt.Errorf("scanning category summary: %w", err)
		}

		summary.Category = category.Category(catStr)
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating summary rows: %w", err)
	}

	return summaries, nil
}

// ListCategoryCounterparts returns the distinct (category, counterpart)
// pairs in the filtered set, ordered by first appearance.
func (s *Store) ListCategoryCounterparts(ctx context.Context, filter transaction.Filter) ([]transaction.CounterpartRow, error) {
	clause, args := buildFilterClause(filter, 1)

	query := `
		SELECT category, counterpart_name
		FROM transactions
		WHERE TRUE` + clause + `
		GROUP BY category, counterpart_name
		ORDER BY MIN(id) ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing category counterparts: %w", err)
	}
	defer rows.Close()

	var pairs []transaction.CounterpartRow

	for rows.Next() {
		var pair transaction.CounterpartRow

		var catStr string

		if err := rows.Scan(&catStr, &pair.CounterpartName); err != nil {
			return nil, fmt.Errorf("scanning counterpart row: %w", err)
		}

		pair.Category = category.Category(catStr)
		pairs = append(pairs, pair)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating counterpart rows: %w", err)
	}

	return pairs, nil
}
