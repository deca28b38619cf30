// Package ledger defines the append-only expense store port. A row is
// an ordered field sequence [date, category, amount, comment]; the
// store's first physical row is a header and is never returned by Rows.
package ledger

import "context"

type (
	// Appender appends one row at the end of the ledger. Appends must be
	// serialized by the adapter so insertion order is preserved.
	Appender interface {
		AppendRow(ctx context.Context, row []string) error
	}

	// Lister returns every data row in append order, header excluded.
	Lister interface {
		Rows(ctx context.Context) ([][]string, error)
	}

	// Store is the full ledger capability consumed by the expense service.
	Store interface {
		Appender
		Lister
	}
)

// Header is the ledger's first physical row.
var Header = []string{"Дата", "Категория", "Сумма", "Комментарий"}
