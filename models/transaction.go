package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID              int64
	UserID          string
	Amount          decimal.Decimal
	Type            string // "income" or "expense"
	TransactionDate time.Time
	Notes           sql.NullString
	CategoryID      sql.NullInt64
	CategoryName    sql.NullString // populated by list joins
}

// TransactionItem is the JSON shape of a single transaction. Amounts are
// rendered as fixed two-decimal strings, never binary floats.
type TransactionItem struct {
	ID              int64   `json:"id"`
	Amount          string  `json:"amount"`
	Type            string  `json:"type"`
	TransactionDate string  `json:"transaction_date"`
	Notes           *string `json:"notes"`
	CategoryID      *int64  `json:"category_id"`
	CategoryName    *string `json:"category_name"`
}

type TransactionPage struct {
	Items       []TransactionItem `json:"items"`
	TotalItems  int               `json:"total_items"`
	TotalPages  int               `json:"total_pages"`
	CurrentPage int               `json:"current_page"`
	HasNext     bool              `json:"has_next"`
	HasPrev     bool              `json:"has_prev"`
}

type CreateTransactionRequest struct {
	Amount          *decimal.Decimal `json:"amount" binding:"required"`
	Type            string           `json:"type" binding:"required,oneof=income expense"`
	TransactionDate string           `json:"transaction_date" binding:"required"`
	Notes           *string          `json:"notes"`
	CategoryID      *int64           `json:"category_id"`
}

// OptionalInt64 is a partial-update field that tells an absent key apart
// from an explicit null. Set is true whenever the key appeared in the body;
// Valid is false when its value was null.
type OptionalInt64 struct {
	Set   bool
	Valid bool
	Value int64
}

func (o *OptionalInt64) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// OptionalString is the string counterpart of OptionalInt64.
type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// UpdateTransactionRequest carries a partial field set: an absent field
// leaves the stored value alone, while an explicit null clears the nullable
// columns (notes, category reference).
type UpdateTransactionRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	Type            *string          `json:"type" binding:"omitempty,oneof=income expense"`
	TransactionDate *string          `json:"transaction_date"`
	Notes           OptionalString   `json:"notes"`
	CategoryID      OptionalInt64    `json:"category_id"`
}
