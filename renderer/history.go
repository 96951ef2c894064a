package renderer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mitchypi/newgame"
)

// chartWidth is the cell width of the inline bar chart.
const chartWidth = 40

// HistoryMarkdown renders the monthly valuation curve as a markdown table
// with an inline bar chart. Axis labels are thinned to maxLabels; thinned
// rows keep their value but show a blank month column.
func HistoryMarkdown(points []newgame.MonthlyPoint, maxLabels int) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Portfolio Value by Month\n\n")

	if len(points) == 0 {
		fmt.Fprintln(&b, "No history yet: advance the clock to record a first valuation.")
		return b.String()
	}

	min, max := points[0].Value, points[0].Value
	for _, p := range points[1:] {
		if p.Value.LessThan(min) {
			min = p.Value
		}
		if p.Value.GreaterThan(max) {
			max = p.Value
		}
	}

	fmt.Fprintln(&b, "| Month | Value | |")
	fmt.Fprintln(&b, "|:---|---:|:---|")
	for _, p := range newgame.ChartSeries(points, maxLabels) {
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			p.Label, newgame.FormatUSD(p.Value), bar(p.Value, min, max, chartWidth))
	}

	change := points[len(points)-1].Value.Sub(points[0].Value)
	fmt.Fprintf(&b, "\nChange over period: %s\n", signedUSD(change))
	return b.String()
}

func signedUSD(v decimal.Decimal) string {
	if v.IsPositive() {
		return "+" + newgame.FormatUSD(v)
	}
	return newgame.FormatUSD(v)
}
