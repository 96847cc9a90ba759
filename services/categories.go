package services

import (
	"context"
	"database/sql"

	"fintrack-api/models"
	"fintrack-api/utils"
)

type CategoryService struct {
	db *sql.DB
}

func NewCategoryService(db *sql.DB) *CategoryService {
	return &CategoryService{db: db}
}

// ListVisible returns the union of all system-default categories and the
// caller's own custom categories. Other users' customs are never included.
func (s *CategoryService) ListVisible(ctx context.Context, userID string) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, is_custom, user_id
		FROM categories
		WHERE is_custom = FALSE OR user_id = $1
		ORDER BY is_custom ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.IsCustom, &category.UserID); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// Create inserts a custom category owned by the caller. There is no path
// to create a system default through the API.
func (s *CategoryService) Create(ctx context.Context, userID, name string) (*models.Category, error) {
	category := &models.Category{
		Name:     name,
		IsCustom: true,
		UserID:   sql.NullString{String: userID, Valid: true},
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, is_custom, user_id)
		VALUES ($1, TRUE, $2)
		RETURNING id
	`, name, userID).Scan(&category.ID)
	if err != nil {
		return nil, err
	}

	return category, nil
}

// Rename updates a custom category's name. Only the owner of a custom
// category may rename it; system defaults are immutable for everyone.
func (s *CategoryService) Rename(ctx context.Context, userID string, id int64, name string) error {
	if err := s.authorizeMutation(ctx, userID, id); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `UPDATE categories SET name = $1 WHERE id = $2`, name, id)
	return err
}

// Delete removes a custom category. Transactions that referenced it keep
// existing with a cleared category reference; the null-out and the row
// removal happen in one database transaction.
func (s *CategoryService) Delete(ctx context.Context, userID string, id int64) error {
	if err := s.authorizeMutation(ctx, userID, id); err != nil {
		return err
	}

	return utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE transactions SET category_id = NULL WHERE category_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
		return err
	})
}

// authorizeMutation loads the category and applies the ownership rule:
// ErrNotFound when the row is absent, ErrForbidden when it is not a custom
// category owned by the caller.
func (s *CategoryService) authorizeMutation(ctx context.Context, userID string, id int64) error {
	var isCustom bool
	var ownerID sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT is_custom, user_id FROM categories WHERE id = $1`, id).Scan(&isCustom, &ownerID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if !isCustom || !ownerID.Valid || ownerID.String != userID {
		return ErrForbidden
	}
	return nil
}

// ValidateForUse checks that a category referenced by a transaction is
// usable by the given user: it must exist, and a custom category must be
// owned by that user. System defaults are valid for anyone.
func (s *CategoryService) ValidateForUse(ctx context.Context, userID string, id int64) error {
	var isCustom bool
	var ownerID sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT is_custom, user_id FROM categories WHERE id = $1`, id).Scan(&isCustom, &ownerID)
	if err == sql.ErrNoRows {
		return ErrCategoryNotFound
	}
	if err != nil {
		return err
	}

	if isCustom && (!ownerID.Valid || ownerID.String != userID) {
		return ErrForbidden
	}
	return nil
}
