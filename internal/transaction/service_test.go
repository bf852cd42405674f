package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dmiranda/spendclass/internal/category"
	"github.com/dmiranda/spendclass/internal/transaction"
)

func TestService_Create(t *testing.T) {
	params := transaction.CreateParams{
		TransactionID:      uuid.New(),
		Amount:             -50.00,
		CounterpartName:    "Walmart",
		TransactionTimeUTC: time.Date(2025, 8, 11, 3, 44, 38, 0, time.UTC),
		TransactionType:    "CARD_TRANSACTION",
	}

	type testCase struct {
		name       string
		setupMocks func(c *transaction.MockClassifier, r *transaction.MockRepository)
		wantErr    error
	}

	tests := []testCase{
		{
			name: "ClassifiesThenPersists",
			setupMocks: func(c *transaction.MockClassifier, r *transaction.MockRepository) {
				c.EXPECT().
					Classify(gomock.Any(), params).
					Return(category.Retail, nil)
				r.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						assert.Equal(t, category.Retail, tx.Category)
						tx.ID = 1
						tx.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "ClassificationFailureSkipsWrite",
			setupMocks: func(c *transaction.MockClassifier, r *transaction.MockRepository) {
				c.EXPECT().
					Classify(gomock.Any(), params).
					Return(category.Category(""), transaction.ErrCannotClassify)
			},
			wantErr: transaction.ErrCannotClassify,
		},
		{
			name: "ClassifierUnavailableSkipsWrite",
			setupMocks: func(c *transaction.MockClassifier, r *transaction.MockRepository) {
				c.EXPECT().
					Classify(gomock.Any(), params).
					Return(category.Category(""), transaction.ErrClassifierUnavailable)
			},
			wantErr: transaction.ErrClassifierUnavailable,
		},
		{
			name: "RepoError",
			setupMocks: func(c *transaction.MockClassifier, r *transaction.MockRepository) {
				c.EXPECT().
					Classify(gomock.Any(), params).
					Return(category.Travel, nil)
				r.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			classifier := transaction.NewMockClassifier(ctrl)
			tt.setupMocks(classifier, repo)

			svc := transaction.NewService(repo, classifier)
			got, err := svc.Create(context.Background(), params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotZero(t, got.ID)
			assert.Equal(t, category.Retail, got.Category)
			assert.Equal(t, params.TransactionID, got.TransactionID)
		})
	}
}

func TestService_GetByTransactionID(t *testing.T) {
	txID := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *transaction.MockRepository)
		wantLen   int
		wantErr   error
	}

	tests := []testCase{
		{
			name: "DuplicateIdentifierReturnsAllRows",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListByTransactionID(gomock.Any(), txID).
					Return([]*transaction.Transaction{
						{ID: 1, TransactionID: txID},
						{ID: 2, TransactionID: txID},
					}, nil)
			},
			wantLen: 2,
		},
		{
			name: "EmptyResultIsNotFound",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListByTransactionID(gomock.Any(), txID).
					Return(nil, nil)
			},
			wantErr: transaction.ErrNotFound,
		},
		{
			name: "RepoError",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListByTransactionID(gomock.Any(), txID).
					Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := transaction.NewService(repo, transaction.NewMockClassifier(ctrl))
			got, err := svc.GetByTransactionID(context.Background(), txID)

			if tt.wantErr != nil {
				require.Error(t, err)

				if errors.Is(tt.wantErr, transaction.ErrNotFound) {
					assert.ErrorIs(t, err, transaction.ErrNotFound)
				}

				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_CounterpartsPerCategory(t *testing.T) {
	type testCase struct {
		name string
		rows []transaction.CounterpartRow
		want []transaction.CategoryCounterparts
	}

	tests := []testCase{
		{
			name: "DedupesWithinCategory",
			rows: []transaction.CounterpartRow{
				{Category: category.Travel, CounterpartName: "Delta"},
				{Category: category.Travel, CounterpartName: "Delta"},
				{Category: category.Travel, CounterpartName: "United"},
			},
			want: []transaction.CategoryCounterparts{
				{Category: category.Travel, UniqueCounterparts: []string{"Delta", "United"}},
			},
		},
		{
			name: "GroupsByCategoryFirstSeenOrder",
			rows: []transaction.CounterpartRow{
				{Category: category.Groceries, CounterpartName: "Walmart"},
				{Category: category.Travel, CounterpartName: "Delta"},
				{Category: category.Groceries, CounterpartName: "Whole Foods"},
			},
			want: []transaction.CategoryCounterparts{
				{Category: category.Groceries, UniqueCounterparts: []string{"Walmart", "Whole Foods"}},
				{Category: category.Travel, UniqueCounterparts: []string{"Delta"}},
			},
		},
		{
			name: "EmptySetYieldsNoEntries",
			rows: nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			repo.EXPECT().
				ListCategoryCounterparts(gomock.Any(), transaction.Filter{}).
				Return(tt.rows, nil)

			svc := transaction.NewService(repo, transaction.NewMockClassifier(ctrl))
			got, err := svc.CounterpartsPerCategory(context.Background(), transaction.Filter{})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_SummarizeByCategory(t *testing.T) {
	summaries := []transaction.CategorySummary{
		{Category: category.Retail, TransactionCount: 5, TotalAmount: -150.00},
		{Category: category.Travel, TransactionCount: 2, TotalAmount: -820.50},
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		SummarizeByCategory(gomock.Any(), transaction.Filter{}).
		Return(summaries, nil)

	svc := transaction.NewService(repo, transaction.NewMockClassifier(ctrl))
	got, err := svc.SummarizeByCategory(context.Background(), transaction.Filter{})

	require.NoError(t, err)
	assert.Equal(t, summaries, got)

	var total int64
	for _, s := range got {
		total += s.TransactionCount
	}

	assert.Equal(t, int64(7), total)
}
