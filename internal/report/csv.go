package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
)

// CSVHeader is the first row written by WriteCSV.
var CSVHeader = []string{
	"month", "invested", "gross_value", "net_value", "taxes",
	"property_value", "debt", "rent_income",
}

// WriteCSV writes one row per month of r. Property columns stay empty for
// strategies that do not hold a property.
func WriteCSV(w io.Writer, r simulation.SimulationResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, p := range r.MonthlyData {
		row := []string{
			strconv.Itoa(p.Month),
			fixed(p.Invested),
			fixed(p.GrossValue),
			fixed(p.NetValue),
			fixed(p.Taxes),
			optional(p.PropertyValue),
			optional(p.Debt),
			optional(p.RentIncome),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write month %d: %w", p.Month, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return fixed(*v)
}
