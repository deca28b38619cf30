// Package render turns aggregated ledger data into the artifacts the
// bot replies with: a PNG line chart of spending per day and an XLSX
// workbook of the full ledger.
package render

import (
	"bytes"
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/expense"
)

// DailyChart renders the date→sum mapping as a line chart with one
// point per day, dates ascending on the X axis.
func DailyChart(totals []expense.DayTotal) ([]byte, error) {
	if len(totals) == 0 {
		return nil, errors.New("no expenses to chart")
	}

	p := plot.New()
	p.Title.Text = "Расходы по дням"
	p.X.Label.Text = "Дата"
	p.Y.Label.Text = "Сумма, тг"

	pts := make(plotter.XYs, len(totals))
	labels := make([]string, len(totals))
	for i, t := range totals {
		value, _ := t.Total.Float64()
		pts[i].X = float64(i)
		pts[i].Y = value
		labels[i] = t.Day
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("build line plot: %w", err)
	}
	p.Add(line, points)
	p.NominalX(labels...)

	wt, err := p.WriterTo(10*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf.Bytes(), nil
}
