package transaction

import (
	"time"

	"github.com/MomchilovP/peachtree/internal/authority"
)

type transactionResponse struct {
	ID         int64          `json:"id"`
	Date       time.Time      `json:"date"`
	Contractor string         `json:"contractor"`
	Type       authority.Type `json:"type"`
	Amount     string         `json:"amount"`
	UserID     int64          `json:"user_id"`
}

func toResponse(tx *authority.Transaction) transactionResponse {
	return transactionResponse{
		ID:         tx.ID,
		Date:       tx.Date,
		Contractor: tx.Contractor,
		Type:       tx.Type,
		Amount:     tx.Amount.StringFixed(2),
		UserID:     tx.UserID,
	}
}

func toResponseList(txs []*authority.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
