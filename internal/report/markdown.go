package report

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
)

// Markdown renders a summary of r: headline figures, a year by year table and,
// depending on the strategy, the mortgage or the blend composition.
func Markdown(r simulation.SimulationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.Name)
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Final value | %s |\n", Money(r.FinalValue))
	fmt.Fprintf(&b, "| Total invested | %s |\n", Money(r.TotalInvested))
	fmt.Fprintf(&b, "| Total return | %s |\n", Money(r.TotalReturn))
	fmt.Fprintf(&b, "| Annualized return | %s |\n", Percent(r.ReturnPercentage))

	yearly(&b, r.MonthlyData)

	switch p := r.Parameters.(type) {
	case simulation.RealEstateParameters:
		mortgage(&b, p.PropertyValue-p.DownPayment, p.Years*12, p.FinancingRate)
	case simulation.MixedParameters:
		mortgage(&b, p.PropertyValue-p.DownPayment, p.Years*12, p.FinancingRate)
	case simulation.OptimizationParameters:
		blend(&b, p)
	}

	return b.String()
}

// yearly lists the last month of every year, plus the final month when the
// series does not end on a year boundary.
func yearly(b *strings.Builder, data []simulation.MonthlyDataPoint) {
	if len(data) == 0 {
		return
	}
	property := data[0].PropertyValue != nil

	fmt.Fprintln(b, "\n## Year by year")
	fmt.Fprintln(b)
	if property {
		fmt.Fprintln(b, "| Year | Invested | Gross value | Net value | Taxes | Property | Debt |")
		fmt.Fprintln(b, "|---:|---:|---:|---:|---:|---:|---:|")
	} else {
		fmt.Fprintln(b, "| Year | Invested | Gross value | Net value | Taxes |")
		fmt.Fprintln(b, "|---:|---:|---:|---:|---:|")
	}

	for i, p := range data {
		if p.Month%12 != 0 && i != len(data)-1 {
			continue
		}
		year := fmt.Sprintf("%d", (p.Month+11)/12)
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |", year,
			Money(p.Invested), Money(p.GrossValue), Money(p.NetValue), Money(p.Taxes))
		if property {
			fmt.Fprintf(b, " %s | %s |", Money(deref(p.PropertyValue)), Money(deref(p.Debt)))
		}
		fmt.Fprintln(b)
	}
}

func mortgage(b *strings.Builder, financed float64, months int, rate float64) {
	schedule := simulation.AmortizationSchedule(financed, months, rate)
	if financed <= 0 || len(schedule) == 0 {
		return
	}

	var interest float64
	for _, in := range schedule {
		interest += in.Interest
	}

	fmt.Fprintln(b, "\n## Mortgage (SAC)")
	fmt.Fprintln(b)
	fmt.Fprintln(b, "| | |")
	fmt.Fprintln(b, "|:---|---:|")
	fmt.Fprintf(b, "| Financed | %s |\n", Money(financed))
	fmt.Fprintf(b, "| Installments | %d |\n", len(schedule))
	fmt.Fprintf(b, "| First installment | %s |\n", Money(schedule[0].Payment))
	fmt.Fprintf(b, "| Last installment | %s |\n", Money(schedule[len(schedule)-1].Payment))
	fmt.Fprintf(b, "| Total interest | %s |\n", Money(interest))
}

func blend(b *strings.Builder, p simulation.OptimizationParameters) {
	fmt.Fprintln(b, "\n## Allocation")
	fmt.Fprintln(b)
	fmt.Fprintln(b, "| Source | Weight |")
	fmt.Fprintln(b, "|:---|---:|")
	for i, w := range p.Weights {
		source := fmt.Sprintf("#%d", i+1)
		if i < len(p.SourceIDs) {
			source = p.SourceIDs[i]
		}
		fmt.Fprintf(b, "| %s | %s |\n", source, Percent(w*100))
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
