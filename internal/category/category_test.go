package category_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmiranda/spendclass/internal/category"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    category.Category
		wantErr bool
	}{
		{name: "Lowercase", input: "retail", want: category.Retail},
		{name: "Capitalized", input: "Groceries", want: category.Groceries},
		{name: "Uppercase", input: "TRAVEL", want: category.Travel},
		{name: "MixedCase", input: "uTiLiTiEs", want: category.Utilities},
		{name: "Prefix", input: "ret", wantErr: true},
		{name: "Superstring", input: "retailish", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := category.ParseQuery(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    category.Category
		wantErr bool
	}{
		{name: "Exact", input: "Retail", want: category.Retail},
		{name: "LowercaseWithWhitespace", input: "  retail\n", want: category.Retail},
		{name: "Uppercase", input: "GROCERIES", want: category.Groceries},
		{name: "Sentence", input: "The category is Retail", wantErr: true},
		{name: "Unknown", input: "Entertainment", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := category.ParseAnswer(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryValue(t *testing.T) {
	assert.Equal(t, "retail", category.Retail.QueryValue())

	for _, c := range category.All() {
		parsed, err := category.ParseQuery(c.QueryValue())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}
