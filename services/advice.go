package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NoDataAdvice is returned without calling the AI service when the range
// holds no transactions at all.
const NoDataAdvice = "📈 No transactions were recorded in this period, so there is nothing to analyze. Keep it up!"

const advisorSystemPrompt = "You are a professional financial planner. " +
	"Based on the data the user provides, give them a short, friendly, conversational financial analysis with advice. " +
	"Make sure to: 1. Identify the main spending areas. 2. Offer one or two concrete money-saving tips. " +
	"3. Use emoji throughout. 4. Close with some encouragement."

type AdviceService struct {
	db *sql.DB
	ai TextGenerator
}

func NewAdviceService(db *sql.DB, ai TextGenerator) *AdviceService {
	return &AdviceService{db: db, ai: ai}
}

// Advise summarizes the caller's spending between start and end (inclusive)
// and asks the AI service for advice on it. The generated text is returned
// verbatim.
func (s *AdviceService) Advise(ctx context.Context, userID string, start, end time.Time) (string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.amount, t.type, c.name
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1
		  AND t.transaction_date >= $2
		  AND t.transaction_date <= $3
	`, userID, start, end)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	totalExpense := decimal.Zero
	byCategory := map[string]decimal.Decimal{}
	count := 0

	for rows.Next() {
		var amount decimal.Decimal
		var txType string
		var categoryName sql.NullString
		if err := rows.Scan(&amount, &txType, &categoryName); err != nil {
			return "", err
		}
		count++

		if txType != "expense" {
			continue
		}
		name := "uncategorized"
		if categoryName.Valid {
			name = categoryName.String
		}
		totalExpense = totalExpense.Add(amount)
		byCategory[name] = byCategory[name].Add(amount)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	if count == 0 {
		return NoDataAdvice, nil
	}

	prompt := buildAdvicePrompt(start, end, totalExpense, byCategory)
	return s.ai.Generate(ctx, advisorSystemPrompt, prompt)
}

// buildAdvicePrompt renders the aggregated spend into the natural-language
// prompt sent to the AI service. Category lines are sorted by name so the
// same data always produces the same prompt.
func buildAdvicePrompt(start, end time.Time, total decimal.Decimal, byCategory map[string]decimal.Decimal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is my spending between %s and %s:\n\n",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	fmt.Fprintf(&b, "Total expenses: %s.\n", total.StringFixed(2))
	b.WriteString("Expenses by category:\n")

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: %s\n", name, byCategory[name].StringFixed(2))
	}

	return b.String()
}
