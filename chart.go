package newgame

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ChartPoint is one labelled value of the presentation-ready monthly curve.
// A blank label means the point is plotted but its axis label was thinned.
type ChartPoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// monthLabelFormat renders "Jan 2006" style axis labels.
const monthLabelFormat = "Jan 2006"

// ChartSeries converts monthly points into chart points with at most
// maxLabels non-blank labels, evenly spaced across the series. The first and
// last points always keep their labels. maxLabels < 2 disables thinning.
func ChartSeries(points []MonthlyPoint, maxLabels int) []ChartPoint {
	out := make([]ChartPoint, len(points))
	for i, p := range points {
		out[i] = ChartPoint{Label: p.Date.Format(monthLabelFormat), Value: p.Value}
	}
	if maxLabels < 2 || len(out) <= maxLabels {
		return out
	}

	// Keep every step-th label; everything else is blanked, not dropped,
	// so the plotted curve keeps one point per month.
	step := ((len(out) - 1) + (maxLabels - 2)) / (maxLabels - 1)
	for i := range out {
		if i%step != 0 && i != len(out)-1 {
			out[i].Label = ""
		}
	}
	return out
}

// FormatUSD renders an amount as a currency string ("$1,234.56").
func FormatUSD(v decimal.Decimal) string {
	cents := v.Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}
