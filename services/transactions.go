package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fintrack-api/models"
)

type TransactionService struct {
	db         *sql.DB
	categories *CategoryService
}

func NewTransactionService(db *sql.DB) *TransactionService {
	return &TransactionService{db: db, categories: NewCategoryService(db)}
}

// TransactionFilter narrows a listing. Nil date bounds mean unbounded; the
// range is inclusive on both ends. Type is "" for both kinds.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
	Page      int
	PerPage   int
}

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// Create validates and stores a new transaction for the caller. An expense
// must carry a category reference; any provided reference is checked for
// existence and ownership before the row is written.
func (s *TransactionService) Create(ctx context.Context, userID string, req *models.CreateTransactionRequest) (int64, error) {
	if req.Type == "expense" && req.CategoryID == nil {
		return 0, fmt.Errorf("%w: category_id is required for expense", ErrValidation)
	}

	date, err := time.ParseInLocation("2006-01-02", req.TransactionDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("%w: transaction_date must be YYYY-MM-DD", ErrValidation)
	}

	if req.CategoryID != nil {
		if err := s.categories.ValidateForUse(ctx, userID, *req.CategoryID); err != nil {
			return 0, err
		}
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, category_id, amount, type, transaction_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, userID, nullableInt64(req.CategoryID), req.Amount, req.Type, date, nullableString(req.Notes)).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// List returns one page of the caller's transactions, newest first
// (transaction date descending, id descending for same-date entries). A
// page past the end yields empty items with correct totals.
func (s *TransactionService) List(ctx context.Context, userID string, filter TransactionFilter) (*models.TransactionPage, error) {
	page := filter.Page
	if page < 1 {
		page = DefaultPage
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	where := "WHERE t.user_id = $1"
	args := []interface{}{userID}
	next := 2

	if filter.Type != "" {
		where += fmt.Sprintf(" AND t.type = $%d", next)
		args = append(args, filter.Type)
		next++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND t.transaction_date >= $%d", next)
		args = append(args, *filter.StartDate)
		next++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND t.transaction_date <= $%d", next)
		args = append(args, *filter.EndDate)
		next++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM transactions t " + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, err
	}

	listQuery := fmt.Sprintf(`
		SELECT t.id, t.amount, t.type, t.transaction_date, t.notes, t.category_id, c.name
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		%s
		ORDER BY t.transaction_date DESC, t.id DESC
		LIMIT $%d OFFSET $%d
	`, where, next, next+1)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.TransactionItem{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Amount, &t.Type, &t.TransactionDate, &t.Notes, &t.CategoryID, &t.CategoryName); err != nil {
			return nil, err
		}
		items = append(items, toItem(t))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := (total + perPage - 1) / perPage

	return &models.TransactionPage{
		Items:       items,
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}, nil
}

// Get returns a single transaction. A missing row is ErrNotFound; a row
// owned by someone else is ErrForbidden. The two are never merged.
func (s *TransactionService) Get(ctx context.Context, userID string, id int64) (*models.TransactionItem, error) {
	t, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	item := toItem(*t)
	return &item, nil
}

// Update applies a partial field set: absent fields keep their stored
// values, explicit nulls clear the notes and the category reference. A new
// category reference is re-validated for existence and ownership.
func (s *TransactionService) Update(ctx context.Context, userID string, id int64, req *models.UpdateTransactionRequest) error {
	t, err := s.load(ctx, userID, id)
	if err != nil {
		return err
	}

	if req.Amount != nil {
		t.Amount = *req.Amount
	}
	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.TransactionDate != nil {
		date, err := time.ParseInLocation("2006-01-02", *req.TransactionDate, time.UTC)
		if err != nil {
			return fmt.Errorf("%w: transaction_date must be YYYY-MM-DD", ErrValidation)
		}
		t.TransactionDate = date
	}
	if req.Notes.Set {
		t.Notes = sql.NullString{String: req.Notes.Value, Valid: req.Notes.Valid}
	}
	if req.CategoryID.Set {
		if req.CategoryID.Valid {
			if err := s.categories.ValidateForUse(ctx, userID, req.CategoryID.Value); err != nil {
				return err
			}
		}
		t.CategoryID = sql.NullInt64{Int64: req.CategoryID.Value, Valid: req.CategoryID.Valid}
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE transactions
		SET amount = $1, type = $2, transaction_date = $3, notes = $4, category_id = $5
		WHERE id = $6
	`, t.Amount, t.Type, t.TransactionDate, t.Notes, t.CategoryID, id)
	return err
}

// Delete removes a transaction owned by the caller.
func (s *TransactionService) Delete(ctx context.Context, userID string, id int64) error {
	if _, err := s.load(ctx, userID, id); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	return err
}

// load fetches a transaction by id and applies the ownership rule.
func (s *TransactionService) load(ctx context.Context, userID string, id int64) (*models.Transaction, error) {
	var t models.Transaction
	err := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.user_id, t.amount, t.type, t.transaction_date, t.notes, t.category_id, c.name
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.id = $1
	`, id).Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.TransactionDate, &t.Notes, &t.CategoryID, &t.CategoryName)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if t.UserID != userID {
		return nil, ErrForbidden
	}
	return &t, nil
}

func toItem(t models.Transaction) models.TransactionItem {
	item := models.TransactionItem{
		ID:              t.ID,
		Amount:          t.Amount.StringFixed(2),
		Type:            t.Type,
		TransactionDate: t.TransactionDate.Format("2006-01-02"),
	}
	if t.Notes.Valid {
		item.Notes = &t.Notes.String
	}
	if t.CategoryID.Valid {
		item.CategoryID = &t.CategoryID.Int64
	}
	if t.CategoryName.Valid {
		item.CategoryName = &t.CategoryName.String
	}
	return item
}

func nullableInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullableString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
