package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmiranda/spendclass/internal/transaction"
)

type transactionResponse struct {
	ID                 int64     `json:"id"`
	TransactionID      uuid.UUID `json:"transaction_id"`
	Amount             float64   `json:"amount"`
	CounterpartName    string    `json:"counterpart_name"`
	TransactionTimeUTC time.Time `json:"transaction_time_utc"`
	TransactionType    string    `json:"transaction_type"`
	Category           string    `json:"category"`
	CreatedAt          time.Time `json:"created_at"`
}

type categorySummaryResponse struct {
	Category         string  `json:"category"`
	TransactionCount int64   `json:"transaction_count"`
	TotalAmount      float64 `json:"total_amount"`
}

type categoryCounterpartsResponse struct {
	Category           string   `json:"category"`
	UniqueCounterparts []string `json:"unique_counterparts"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:                 tx.ID,
		TransactionID:      tx.TransactionID,
		Amount:             tx.Amount,
		CounterpartName:    tx.CounterpartName,
		TransactionTimeUTC: tx.TransactionTimeUTC,
		TransactionType:    tx.TransactionType,
		Category:           tx.Category.String(),
		CreatedAt:          tx.CreatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

func toSummaryResponseList(summaries []transaction.CategorySummary) []categorySummaryResponse {
	resp := make([]categorySummaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = categorySummaryResponse{
			Category:         s.Category.String(),
			TransactionCount: s.TransactionCount,
			TotalAmount:      s.TotalAmount,
		}
	}

	return resp
}

func toCounterpartsResponseList(groups []transaction.CategoryCounterparts) []categoryCounterpartsResponse {
	resp := make([]categoryCounterpartsResponse, len(groups))
	for i, g := range groups {
		resp[i] = categoryCounterpartsResponse{
			Category:           g.Category.String(),
			UniqueCounterparts: g.UniqueCounterparts,
		}
	}

	return resp
}
