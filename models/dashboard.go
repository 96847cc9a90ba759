package models

type DashboardSummary struct {
	CurrentMonthSummary  MonthSummary    `json:"current_month_summary"`
	LastMonthComparison  MonthComparison `json:"last_month_comparison"`
	CategoryBreakdown    []CategoryTotal `json:"category_breakdown"`
	DailyTrendLast30Days []DailyTotal    `json:"daily_trend_last_30_days"`
}

type MonthSummary struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

type MonthComparison struct {
	LastMonthExpense    string `json:"last_month_expense"`
	CurrentMonthExpense string `json:"current_month_expense"`
}

type CategoryTotal struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type DailyTotal struct {
	Date  string `json:"date"`
	Total string `json:"total"`
}

type AdviceRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}
