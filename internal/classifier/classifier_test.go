package classifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmiranda/spendclass/internal/category"
	"github.com/dmiranda/spendclass/internal/transaction"
)

type fakeGenerator struct {
	answer string
	err    error
	prompt string
}

func (f *fakeGenerator) generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.answer, f.err
}

func testParams() transaction.CreateParams {
	return transaction.CreateParams{
		TransactionID:      uuid.New(),
		Amount:             -50,
		CounterpartName:    "Walmart",
		TransactionTimeUTC: time.Date(2025, 8, 11, 3, 44, 38, 0, time.UTC),
		TransactionType:    "CARD_TRANSACTION",
	}
}

func TestClassifier_Classify(t *testing.T) {
	type testCase struct {
		name    string
		answer  string
		genErr  error
		want    category.Category
		wantErr error
	}

	tests := []testCase{
		{name: "ExactLabel", answer: "Retail", want: category.Retail},
		{name: "LowercaseAnswer", answer: "retail", want: category.Retail},
		{name: "UppercaseWithWhitespace", answer: " TRAVEL\n", want: category.Travel},
		{name: "SentenceAnswer", answer: "I would say Retail", wantErr: transaction.ErrCannotClassify},
		{name: "UnknownCategory", answer: "Entertainment", wantErr: transaction.ErrCannotClassify},
		{name: "EmptyAnswer", answer: "", wantErr: transaction.ErrCannotClassify},
		{name: "UpstreamError", genErr: errors.New("connection refused"), wantErr: transaction.ErrClassifierUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Classifier{gen: &fakeGenerator{answer: tt.answer, err: tt.genErr}}

			got, err := c.Classify(context.Background(), testParams())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	gen := &fakeGenerator{answer: "Retail"}
	c := &Classifier{gen: gen}

	_, err := c.Classify(context.Background(), testParams())
	require.NoError(t, err)

	for _, cat := range category.All() {
		assert.Contains(t, gen.prompt, cat.String())
	}

	assert.Contains(t, gen.prompt, "counterpart name = Walmart")
	assert.Contains(t, gen.prompt, "amount = -50")
	assert.Contains(t, gen.prompt, "transaction type = CARD_TRANSACTION")
	assert.Contains(t, gen.prompt, "Answer with the category name only.")
}
