package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"fintrack-api/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func setCategory(id int64) models.OptionalInt64 {
	return models.OptionalInt64{Set: true, Valid: true, Value: id}
}

func TestTransactionService_CreateAndGetRoundTrip(t *testing.T) {
	db := openTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	food := createDefaultCategory(t, db, "Dining")

	id, err := svc.Create(ctx, alice, &models.CreateTransactionRequest{
		Amount:          decPtr("123.45"),
		Type:            "expense",
		TransactionDate: "2024-03-05",
		Notes:           strPtr("team lunch"),
		CategoryID:      &food,
	})
	require.NoError(t, err)

	item, err := svc.Get(ctx, alice, id)
	require.NoError(t, err)

	assert.Equal(t, id, item.ID)
	assert.Equal(t, "123.45", item.Amount)
	assert.Equal(t, "expense", item.Type)
	assert.Equal(t, "2024-03-05", item.TransactionDate)
	require.NotNil(t, item.Notes)
	assert.Equal(t, "team lunch", *item.Notes)
	require.NotNil(t, item.CategoryID)
	assert.Equal(t, food, *item.CategoryID)
}

func TestTransactionService_CreateValidation(t *testing.T) {
	db := openTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	bobCat := createCustomCategory(t, db, bob, "Fishing Gear")

	t.Run("bad date", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, &models.CreateTransactionRequest{
			Amount:          decPtr("10.00"),
			Type:            "income",
			TransactionDate: "05/03/2024",
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown category", func(t *testing.T) {
		missing := int64(99999)
		_, err := svc.Create(ctx, alice, &models.CreateTransactionRequest{
			Amount:          decPtr("10.00"),
			Type:            "expense",
			TransactionDate: "2024-03-05",
			CategoryID:      &missing,
		})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("someone else's custom category", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, &models.CreateTransactionRequest{
			Amount:          decPtr("10.00"),
			Type:            "expense",
			TransactionDate: "2024-03-05",
			CategoryID:      &bobCat,
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("expense without category", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, &models.CreateTransactionRequest{
			Amount:          decPtr("10.00"),
			Type:            "expense",
			TransactionDate: "2024-03-05",
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("income without category is fine", func(t *testing.T) {
		id, err := svc.Create(ctx, alice, &models.CreateTransactionRequest{
			Amount:          decPtr("2000.00"),
			Type:            "income",
			TransactionDate: "2024-03-01",
		})
		require.NoError(t, err)

		item, err := svc.Get(ctx, alice, id)
		require.NoError(t, err)
		assert.Nil(t, item.CategoryID)
	})
}

func TestTransactionService_Pagination(t *testing.T) {
	db := openTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	for i := 0; i < 15; i++ {
		date := fmt.Sprintf("2024-03-%02d", i+1)
		insertTransaction(t, db, alice, nil, "10.00", "income", date)
	}

	page2, err := svc.List(ctx, alice, TransactionFilter{Page: 2, PerPage: 10})
	require.NoError(t, err)

	assert.Len(t, page2.Items, 5)
	assert.Equal(t, 15, page2.TotalItems)
	assert.Equal(t, 2, page2.TotalPages)
	assert.Equal(t, 2, page2.CurrentPage)
	assert.False(t, page2.HasNext)
	assert.True(t, page2.HasPrev)

	t.Run("page beyond range is empty, not an error", func(t *testing.T) {
		page9, err := svc.List(ctx, alice, TransactionFilter{Page: 9, PerPage: 10})
		require.NoError(t, err)
		assert.Empty(t, page9.Items)
		assert.Equal(t, 15, page9.TotalItems)
		assert.Equal(t, 2, page9.TotalPages)
		assert.False(t, page9.HasNext)
	})

	t.Run("defaults apply for missing parameters", func(t *testing.T) {
		page, err := svc.List(ctx, alice, TransactionFilter{})
		require.NoError(t, err)
		assert.Len(t, page.Items, 10)
		assert.Equal(t, 1, page.CurrentPage)
		assert.True(t, page.HasNext)
		assert.False(t, page.HasPrev)
	})
}

func TestTransactionService_Ordering(t *testing.T) {
	db := openTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	older := insertTransaction(t, db, alice, nil, "1.00", "income", "2024-03-01")
	firstOfDay := insertTransaction(t, db, alice, nil, "2.00", "income", "2024-03-05")
	secondOfDay := insertTransaction(t, db, alice, nil, "3.00", "income", "2024-03-05")

	page, err := svc.List(ctx, alice, TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	// Date descending, then id descending: same-date entries come back
	// newest-inserted first.
	assert.Equal(t, secondOfDay, page.Items[0].ID)
	assert.Equal(t, firstOfDay, page.Items[1].ID)
	assert.Equal(t, older, page.Items[2].ID)
}

func TestTransactionService_Filters(t *testing.T) {
	db := openTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	insertTransaction(t, db, alice, nil, "10.00", "expense", "2024-03-01")
	insertTransaction(t, db, alice, nil, "20.00", "expense", "2024-03-15")
	insertTransaction(t, db, alice, nil, "30.00", "income", "2024-03-15")
	insertTransaction(t, db, alice, nil, "40.00", "expense", "2024-04-01")

	t.Run("type filter", func(t *testing.T) {
		page, err := svc.List(ctx, alice, TransactionFilter{Type: "income"})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "30.00", page.Items[0].Amount)
	})

	t.Run("inclusive date range", func(t *testing.T) {
		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		page, err := svc.List(ctx, alice, TransactionFilter{StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		assert.Len(t, page.Items, 3, "both range ends are inclusive")
		assert.Equal(t, 3, page.TotalItems)
	})
}

func TestTransactionService_OwnershipRules(t *testing.T) {
	db := openTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	aliceTx := insertTransaction(t, db, alice, nil, "10.00", "income", "2024-03-01")

	t.Run("missing record is not found", func(t *testing.T) {
		_, err := svc.Get(ctx, bob, 99999)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, bob, 99999), ErrNotFound)
		assert.ErrorIs(t, svc.Update(ctx, bob, 99999, &models.UpdateTransactionRequest{}), ErrNotFound)
	})

	t.Run("existing but foreign record is forbidden", func(t *testing.T) {
		_, err := svc.Get(ctx, bob, aliceTx)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.ErrorIs(t, svc.Delete(ctx, bob, aliceTx), ErrForbidden)
		assert.ErrorIs(t, svc.Update(ctx, bob, aliceTx, &models.UpdateTransactionRequest{}), ErrForbidden)
	})

	t.Run("listing never leaks foreign rows", func(t *testing.T) {
		page, err := svc.List(ctx, bob, TransactionFilter{})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})
}

func TestTransactionService_PartialUpdate(t *testing.T) {
	db := openTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	food := createDefaultCategory(t, db, "Dining")
	bobCat := createCustomCategory(t, db, bob, "Fishing Gear")

	id, err := svc.Create(ctx, alice, &models.CreateTransactionRequest{
		Amount:          decPtr("50.00"),
		Type:            "expense",
		TransactionDate: "2024-03-05",
		Notes:           strPtr("groceries"),
		CategoryID:      &food,
	})
	require.NoError(t, err)

	t.Run("unspecified fields keep their values", func(t *testing.T) {
		err := svc.Update(ctx, alice, id, &models.UpdateTransactionRequest{
			Amount: decPtr("55.25"),
		})
		require.NoError(t, err)

		item, err := svc.Get(ctx, alice, id)
		require.NoError(t, err)
		assert.Equal(t, "55.25", item.Amount)
		assert.Equal(t, "expense", item.Type)
		assert.Equal(t, "2024-03-05", item.TransactionDate)
		require.NotNil(t, item.Notes)
		assert.Equal(t, "groceries", *item.Notes)
		require.NotNil(t, item.CategoryID)
		assert.Equal(t, food, *item.CategoryID)
	})

	t.Run("changed category reference is re-validated", func(t *testing.T) {
		err := svc.Update(ctx, alice, id, &models.UpdateTransactionRequest{CategoryID: setCategory(bobCat)})
		assert.ErrorIs(t, err, ErrForbidden)

		err = svc.Update(ctx, alice, id, &models.UpdateTransactionRequest{CategoryID: setCategory(99999)})
		assert.ErrorIs(t, err, ErrCategoryNotFound)

		// The failed updates must not have touched the row.
		item, err := svc.Get(ctx, alice, id)
		require.NoError(t, err)
		assert.Equal(t, food, *item.CategoryID)
	})

	t.Run("bad date is rejected", func(t *testing.T) {
		err := svc.Update(ctx, alice, id, &models.UpdateTransactionRequest{TransactionDate: strPtr("March 5")})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestTransactionService_ExplicitNullClearsFields(t *testing.T) {
	db := openTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	food := createDefaultCategory(t, db, "Dining")

	id, err := svc.Create(ctx, alice, &models.CreateTransactionRequest{
		Amount:          decPtr("50.00"),
		Type:            "expense",
		TransactionDate: "2024-03-05",
		Notes:           strPtr("groceries"),
		CategoryID:      &food,
	})
	require.NoError(t, err)

	t.Run("absent fields survive a decoded body", func(t *testing.T) {
		var req models.UpdateTransactionRequest
		require.NoError(t, json.Unmarshal([]byte(`{"amount": "60.00"}`), &req))
		require.NoError(t, svc.Update(ctx, alice, id, &req))

		item, err := svc.Get(ctx, alice, id)
		require.NoError(t, err)
		assert.Equal(t, "60.00", item.Amount)
		require.NotNil(t, item.CategoryID)
		assert.Equal(t, food, *item.CategoryID)
		require.NotNil(t, item.Notes)
		assert.Equal(t, "groceries", *item.Notes)
	})

	t.Run("explicit null detaches the category and clears notes", func(t *testing.T) {
		var req models.UpdateTransactionRequest
		require.NoError(t, json.Unmarshal([]byte(`{"category_id": null, "notes": null}`), &req))
		require.NoError(t, svc.Update(ctx, alice, id, &req))

		item, err := svc.Get(ctx, alice, id)
		require.NoError(t, err)
		assert.Nil(t, item.CategoryID)
		assert.Nil(t, item.Notes)
	})
}
