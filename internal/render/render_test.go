package render

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/expense"
)

func TestDailyChart(t *testing.T) {
	totals := []expense.DayTotal{
		{Day: "2024-01-01", Total: decimal.NewFromInt(15)},
		{Day: "2024-01-02", Total: decimal.NewFromInt(7)},
	}
	png, err := DailyChart(totals)
	if err != nil {
		t.Fatalf("DailyChart: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("output is not a PNG (%d bytes)", len(png))
	}
}

func TestDailyChartEmpty(t *testing.T) {
	if _, err := DailyChart(nil); err == nil {
		t.Fatal("expected error for empty data")
	}
}

func TestWorkbook(t *testing.T) {
	rows := [][]string{
		{"Дата", "Категория", "Сумма", "Комментарий"},
		{"2024-01-01 08:00", "еда", "10", "Обед"},
	}
	data, err := Workbook(rows)
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatalf("output is not a zip archive (%d bytes)", len(data))
	}
}
