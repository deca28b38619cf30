package memory

import (
	"context"
	"testing"
)

func TestAppendAndRowsRoundTrip(t *testing.T) {
	s := New()
	row := []string{"2024-01-01 08:00", "еда", "12.50", "Обед"}
	if err := s.AppendRow(context.Background(), row); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}

	rows, err := s.Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	for i := range row {
		if rows[0][i] != row[i] {
			t.Fatalf("cell %d = %q, want %q", i, rows[0][i], row[i])
		}
	}
}

func TestRowsAreCopies(t *testing.T) {
	s := Seed([][]string{{"2024-01-01 08:00", "еда", "10", "x"}})
	rows, _ := s.Rows(context.Background())
	rows[0][2] = "tampered"

	again, _ := s.Rows(context.Background())
	if again[0][2] != "10" {
		t.Fatal("store row mutated through a returned slice")
	}
}

func TestAppendOrderPreserved(t *testing.T) {
	s := New()
	s.AppendRow(context.Background(), []string{"2024-01-01 08:00", "еда", "1", "a"})
	s.AppendRow(context.Background(), []string{"2024-01-01 09:00", "еда", "2", "b"})
	rows, _ := s.Rows(context.Background())
	if rows[0][3] != "a" || rows[1][3] != "b" {
		t.Fatalf("order not preserved: %v", rows)
	}
}
