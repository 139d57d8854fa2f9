package ledger

import (
	"time"

	"github.com/amirasaad/opsledger/pkg/domain/category"
	"github.com/amirasaad/opsledger/pkg/domain/history"
	"github.com/amirasaad/opsledger/pkg/money"
	ledgersvc "github.com/amirasaad/opsledger/pkg/service/ledger"
	"github.com/google/uuid"
)

// TransferRequest represents the request body for moving money between accounts.
type TransferRequest struct {
	SourceID    string  `json:"sourceId" validate:"required,uuid"`
	TargetID    string  `json:"targetId" validate:"required,uuid"`
	Amount      float64 `json:"amount" validate:"required"`
	Description string  `json:"description" validate:"required"`
}

// CreateCategoryRequest represents the request body for a standalone account.
type CreateCategoryRequest struct {
	Title  string `json:"title" validate:"required"`
	Row    int    `json:"row" validate:"required,min=1,max=4"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
	Status string `json:"status" validate:"omitempty,oneof=deposit building built"`
}

// VisibilityRequest sets the visibility of one account.
type VisibilityRequest struct {
	IsVisible *bool `json:"isVisible" validate:"required"`
}

// CategoryResponse is the wire form of an account. Amount is the display string.
type CategoryResponse struct {
	ID        string    `json:"id"`
	ClientID  *string   `json:"clientId,omitempty"`
	Title     string    `json:"title"`
	Amount    string    `json:"amount"`
	Balance   float64   `json:"balance"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	Row       int       `json:"row"`
	Status    string    `json:"status,omitempty"`
	IsVisible bool      `json:"isVisible"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TransactionResponse is the wire form of a history record.
type TransactionResponse struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"categoryId"`
	TransferID  string    `json:"transferId,omitempty"`
	FromUser    string    `json:"fromUser"`
	ToUser      string    `json:"toUser"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
}

// TransferResponse describes a committed transfer.
type TransferResponse struct {
	TransferID   string                `json:"transferId"`
	Source       CategoryResponse      `json:"source"`
	Target       CategoryResponse      `json:"target"`
	Transactions []TransactionResponse `json:"transactions"`
	Attempts     int                   `json:"attempts"`
}

// BalanceResponse carries a balance in both forms.
type BalanceResponse struct {
	CategoryID string  `json:"categoryId"`
	Amount     string  `json:"amount"`
	Balance    float64 `json:"balance"`
}

// ReconcileResponse compares stored balance and history.
type ReconcileResponse struct {
	CategoryID string  `json:"categoryId"`
	Stored     float64 `json:"stored"`
	HistorySum float64 `json:"historySum"`
	Drift      float64 `json:"drift"`
	Consistent bool    `json:"consistent"`
}

// ChangeResponse is one streamed history change.
type ChangeResponse struct {
	Kind        string              `json:"kind"`
	Transaction TransactionResponse `json:"transaction"`
}

func toCategoryResponse(c *category.Category, codec money.Codec) CategoryResponse {
	resp := CategoryResponse{
		ID:        c.ID.String(),
		Title:     c.Title,
		Amount:    codec.Format(c.Balance),
		Balance:   c.Balance.Float64(),
		Icon:      c.Icon,
		Color:     c.Color,
		Row:       int(c.Row),
		Status:    string(c.Status),
		IsVisible: c.IsVisible,
		Version:   c.Version,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.ClientID != nil {
		id := c.ClientID.String()
		resp.ClientID = &id
	}
	return resp
}

func toCategoryResponses(cats []*category.Category, codec money.Codec) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c, codec))
	}
	return out
}

func toTransactionResponse(tx *history.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          tx.ID.String(),
		CategoryID:  tx.CategoryID,
		FromUser:    tx.FromUser,
		ToUser:      tx.ToUser,
		Amount:      tx.Amount.Float64(),
		Description: tx.Description,
		Type:        string(tx.Type),
		Date:        tx.Date,
	}
	if tx.TransferID != uuid.Nil {
		resp.TransferID = tx.TransferID.String()
	}
	return resp
}

func toTransactionResponses(txs []*history.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out
}

func toTransferResponse(res *ledgersvc.TransferResult, codec money.Codec) TransferResponse {
	return TransferResponse{
		TransferID:   res.TransferID.String(),
		Source:       toCategoryResponse(res.Source, codec),
		Target:       toCategoryResponse(res.Target, codec),
		Transactions: toTransactionResponses(res.Transactions),
		Attempts:     res.Attempts,
	}
}
