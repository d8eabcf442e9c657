package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Finances returns a copy of the transaction ledger in insertion order.
func (s *Service) Finances(ctx context.Context) []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Transaction, len(s.finances))
	copy(out, s.finances)
	return out
}

type TransactionInput struct {
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func (s *Service) AddTransaction(ctx context.Context, input TransactionInput) (Transaction, error) {
	if !ValidTransactionType(input.Type) {
		return Transaction{}, fmt.Errorf("transaction type %q: %w", input.Type, ErrInvalidInput)
	}
	if input.Amount.IsNegative() {
		return Transaction{}, ErrNegativeAmount
	}
	if _, err := time.Parse(dateLayout, input.Date); err != nil {
		return Transaction{}, fmt.Errorf("date %q: %w", input.Date, ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txn := Transaction{
		ID:          s.nextID(),
		Type:        input.Type,
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Date:        input.Date,
	}
	s.finances = append(s.finances, txn)
	s.store.Set(ctx, keyFinances, s.finances)
	s.notify(ctx, "finance", fmt.Sprintf("New %s recorded: %s", txn.Type, txn.Amount.StringFixed(2)))
	return txn, nil
}

// FinancialStats aggregates the ledger day by day from the range's start date
// through today. Totals are the sums of the daily series, so the §8-style
// identity sum(revenue) == totalRevenue always holds. Unknown range keys fall
// back to the current month.
func (s *Service) FinancialStats(ctx context.Context, rangeKey RangeKey) FinancialStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := rangeStart(rangeKey, today)

	// index by day first; the daily walk below stays O(days + transactions)
	incomeByDay := map[string]decimal.Decimal{}
	expenseByDay := map[string]decimal.Decimal{}
	for _, txn := range s.finances {
		switch txn.Type {
		case TransactionIncome:
			incomeByDay[txn.Date] = incomeByDay[txn.Date].Add(txn.Amount)
		case TransactionExpense:
			expenseByDay[txn.Date] = expenseByDay[txn.Date].Add(txn.Amount)
		}
	}

	stats := FinancialStats{
		Labels:   []string{},
		Revenue:  []decimal.Decimal{},
		Expenses: []decimal.Decimal{},
	}
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		label := day.Format(dateLayout)
		revenue := incomeByDay[label]
		expense := expenseByDay[label]
		stats.Labels = append(stats.Labels, label)
		stats.Revenue = append(stats.Revenue, revenue)
		stats.Expenses = append(stats.Expenses, expense)
		stats.TotalRevenue = stats.TotalRevenue.Add(revenue)
		stats.TotalExpenses = stats.TotalExpenses.Add(expense)
	}
	return stats
}

func rangeStart(key RangeKey, today time.Time) time.Time {
	switch key {
	case RangeCurrentWeek:
		// back to Monday
		offset := (int(today.Weekday()) + 6) % 7
		return today.AddDate(0, 0, -offset)
	case RangeLastWeek:
		return today.AddDate(0, 0, -7)
	case RangeCurrentYear:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case RangeCurrentMonth:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

// ParseRangeKey normalizes a query value to a RangeKey, defaulting to the
// current month rather than erroring.
func ParseRangeKey(raw string) RangeKey {
	switch RangeKey(strings.TrimSpace(raw)) {
	case RangeCurrentWeek:
		return RangeCurrentWeek
	case RangeLastWeek:
		return RangeLastWeek
	case RangeCurrentYear:
		return RangeCurrentYear
	default:
		return RangeCurrentMonth
	}
}
