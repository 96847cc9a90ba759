package services

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"fintrack-api/models"

	"github.com/shopspring/decimal"
)

type DashboardService struct {
	db *sql.DB
}

func NewDashboardService(db *sql.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Summary computes the one-shot dashboard aggregation for the caller,
// anchored to "today":
//
//   - current-month income, expense and balance
//   - last month's expense total against the current month's
//   - current-month expenses grouped by category name, largest first
//   - per-day expense totals over the trailing 30 days, oldest first
//
// Sums with no matching rows come back as "0.00", and trend days without
// spending are simply absent. The operation is read-only.
func (s *DashboardService) Summary(ctx context.Context, userID string, today time.Time) (*models.DashboardSummary, error) {
	today = truncateToDay(today.UTC())
	currentStart, nextStart, lastStart := monthWindows(today)
	trailingStart := today.AddDate(0, 0, -29)

	// One pass over every row that any window can touch.
	lower := lastStart
	if trailingStart.Before(lower) {
		lower = trailingStart
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT t.amount, t.type, t.transaction_date, c.name
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1
		  AND t.transaction_date >= $2
		  AND t.transaction_date < $3
	`, userID, lower, nextStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	currentIncome := decimal.Zero
	currentExpense := decimal.Zero
	lastMonthExpense := decimal.Zero
	byCategory := map[string]decimal.Decimal{}
	byDay := map[string]decimal.Decimal{}

	for rows.Next() {
		var amount decimal.Decimal
		var txType string
		var date time.Time
		var categoryName sql.NullString
		if err := rows.Scan(&amount, &txType, &date, &categoryName); err != nil {
			return nil, err
		}
		date = truncateToDay(date.UTC())

		inCurrentMonth := !date.Before(currentStart) && date.Before(nextStart)

		if txType == "income" && inCurrentMonth {
			currentIncome = currentIncome.Add(amount)
		}

		if txType != "expense" {
			continue
		}

		if inCurrentMonth {
			currentExpense = currentExpense.Add(amount)
			// Uncategorized expenses count toward the totals but have no
			// breakdown slice to land in.
			if categoryName.Valid {
				byCategory[categoryName.String] = byCategory[categoryName.String].Add(amount)
			}
		}
		if !date.Before(lastStart) && date.Before(currentStart) {
			lastMonthExpense = lastMonthExpense.Add(amount)
		}
		if !date.Before(trailingStart) && !date.After(today) {
			day := date.Format("2006-01-02")
			byDay[day] = byDay[day].Add(amount)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.DashboardSummary{
		CurrentMonthSummary: models.MonthSummary{
			Income:  currentIncome.StringFixed(2),
			Expense: currentExpense.StringFixed(2),
			Balance: currentIncome.Sub(currentExpense).StringFixed(2),
		},
		LastMonthComparison: models.MonthComparison{
			LastMonthExpense:    lastMonthExpense.StringFixed(2),
			CurrentMonthExpense: currentExpense.StringFixed(2),
		},
		CategoryBreakdown:    sortedBreakdown(byCategory),
		DailyTrendLast30Days: sortedTrend(byDay),
	}, nil
}

// monthWindows returns the first day of the current month, the first day of
// the next month and the first day of the previous month, all half-open
// window boundaries.
func monthWindows(today time.Time) (currentStart, nextStart, lastStart time.Time) {
	currentStart = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextStart = currentStart.AddDate(0, 1, 0)
	lastStart = currentStart.AddDate(0, -1, 0)
	return currentStart, nextStart, lastStart
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sortedBreakdown orders category totals largest first, with the category
// name as a stable tie-break so a fixed data set always renders the same.
func sortedBreakdown(byCategory map[string]decimal.Decimal) []models.CategoryTotal {
	breakdown := make([]models.CategoryTotal, 0, len(byCategory))
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := byCategory[names[i]], byCategory[names[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		breakdown = append(breakdown, models.CategoryTotal{
			Category: name,
			Total:    byCategory[name].StringFixed(2),
		})
	}
	return breakdown
}

func sortedTrend(byDay map[string]decimal.Decimal) []models.DailyTotal {
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	trend := make([]models.DailyTotal, 0, len(days))
	for _, day := range days {
		trend = append(trend, models.DailyTotal{Date: day, Total: byDay[day].StringFixed(2)})
	}
	return trend
}
