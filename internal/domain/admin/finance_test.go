package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAddTransactionRejectsNegativeAmount(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	_, err := svc.AddTransaction(context.Background(), TransactionInput{
		Type:   TransactionExpense,
		Amount: decimal.NewFromInt(-5),
		Date:   "2025-03-01",
	})
	if !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestAddTransactionRejectsBadDate(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	_, err := svc.AddTransaction(context.Background(), TransactionInput{
		Type:   TransactionIncome,
		Amount: decimal.NewFromInt(10),
		Date:   "03/15/2025",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFinancialStatsCurrentWeekLabels(t *testing.T) {
	// Wednesday; the current ISO week started Monday the 10th
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	_, _ = svc.AddTransaction(ctx, TransactionInput{Type: TransactionIncome, Amount: decimal.NewFromInt(1000), Category: "Sales", Date: "2025-03-10"})
	_, _ = svc.AddTransaction(ctx, TransactionInput{Type: TransactionIncome, Amount: decimal.NewFromInt(500), Category: "Sales", Date: "2025-03-12"})
	_, _ = svc.AddTransaction(ctx, TransactionInput{Type: TransactionExpense, Amount: decimal.NewFromInt(200), Category: "Equipment", Date: "2025-03-11"})

	stats := svc.FinancialStats(ctx, RangeCurrentWeek)

	if len(stats.Labels) != 3 {
		t.Fatalf("expected 3 labels (Mon..Wed), got %d: %v", len(stats.Labels), stats.Labels)
	}
	if stats.Labels[0] != "2025-03-10" || stats.Labels[2] != "2025-03-12" {
		t.Fatalf("unexpected label bounds: %v", stats.Labels)
	}
	if len(stats.Revenue) != len(stats.Labels) || len(stats.Expenses) != len(stats.Labels) {
		t.Fatal("series must parallel the labels")
	}

	sumRevenue := decimal.Zero
	for _, v := range stats.Revenue {
		sumRevenue = sumRevenue.Add(v)
	}
	if !sumRevenue.Equal(stats.TotalRevenue) {
		t.Fatalf("sum(revenue) %s != totalRevenue %s", sumRevenue, stats.TotalRevenue)
	}
	sumExpenses := decimal.Zero
	for _, v := range stats.Expenses {
		sumExpenses = sumExpenses.Add(v)
	}
	if !sumExpenses.Equal(stats.TotalExpenses) {
		t.Fatalf("sum(expenses) %s != totalExpenses %s", sumExpenses, stats.TotalExpenses)
	}
}

func TestFinancialStatsCurrentMonthNet(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	_, _ = svc.AddTransaction(ctx, TransactionInput{Type: TransactionIncome, Amount: decimal.NewFromInt(1000), Category: "Sales", Date: "2024-03-15"})
	_, _ = svc.AddTransaction(ctx, TransactionInput{Type: TransactionExpense, Amount: decimal.NewFromInt(400), Category: "Equipment", Date: "2024-03-14"})

	stats := svc.FinancialStats(ctx, RangeCurrentMonth)

	net := stats.TotalRevenue.Sub(stats.TotalExpenses)
	if !net.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected net 600, got %s", net)
	}
	if stats.Labels[0] != "2024-03-01" {
		t.Fatalf("month range must start on the 1st, got %s", stats.Labels[0])
	}
	if stats.Labels[len(stats.Labels)-1] != "2024-03-20" {
		t.Fatalf("range must end today, got %s", stats.Labels[len(stats.Labels)-1])
	}
	if len(stats.Labels) != 20 {
		t.Fatalf("expected 20 daily labels, got %d", len(stats.Labels))
	}
}

func TestFinancialStatsRangeStarts(t *testing.T) {
	today := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC) // Wednesday

	tests := []struct {
		name string
		key  RangeKey
		want string
	}{
		{name: "current week backs up to Monday", key: RangeCurrentWeek, want: "2025-06-16"},
		{name: "last week is seven days back", key: RangeLastWeek, want: "2025-06-11"},
		{name: "current month is the 1st", key: RangeCurrentMonth, want: "2025-06-01"},
		{name: "current year is Jan 1", key: RangeCurrentYear, want: "2025-01-01"},
		{name: "unknown falls back to month", key: "lastDecade", want: "2025-06-01"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := rangeStart(tc.key, today).Format(dateLayout)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestParseRangeKey(t *testing.T) {
	if ParseRangeKey("currentWeek") != RangeCurrentWeek {
		t.Fatal("currentWeek not recognized")
	}
	if ParseRangeKey("") != RangeCurrentMonth {
		t.Fatal("empty value must default to current month")
	}
	if ParseRangeKey("bogus") != RangeCurrentMonth {
		t.Fatal("unknown value must default to current month")
	}
}
