package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/validation"
)

type fixedIncomeCmd struct {
	output
	params  simulation.FixedIncomeParameters
	incType string
}

func (*fixedIncomeCmd) Name() string     { return "fixed-income" }
func (*fixedIncomeCmd) Synopsis() string { return "project a CDI or IPCA+ investment" }
func (*fixedIncomeCmd) Usage() string {
	return `simulate fixed-income [-type CDI|IPCA+] [-initial n] [-monthly n] [-rate n] [-years n] [-inflation n] [-tax n] [-csv] [-raw]

  Projects a fixed income investment month by month. Rates are annual percentages.
`
}

func (c *fixedIncomeCmd) SetFlags(f *flag.FlagSet) {
	c.output.setFlags(f)
	f.StringVar(&c.incType, "type", string(simulation.CDI), "instrument type (CDI, IPCA+)")
	f.Float64Var(&c.params.InitialAmount, "initial", 10000, "initial amount")
	f.Float64Var(&c.params.MonthlyContribution, "monthly", 500, "monthly contribution")
	f.Float64Var(&c.params.InterestRate, "rate", 12, "annual interest rate %")
	f.IntVar(&c.params.Years, "years", 10, "investment horizon in years")
	f.Float64Var(&c.params.InflationRate, "inflation", 4, "annual inflation rate %")
	f.Float64Var(&c.params.TaxRate, "tax", 15, "income tax rate % on gains")
}

func (c *fixedIncomeCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	c.params.Type = simulation.FixedIncomeType(c.incType)
	if err := validation.ValidateFixedIncome(c.params); err != nil {
		return c.fail(subcommands.ExitUsageError, err)
	}
	return c.finish(simulation.ProjectFixedIncome(c.params))
}

type realEstateCmd struct {
	output
	params simulation.RealEstateParameters
}

func (*realEstateCmd) Name() string     { return "real-estate" }
func (*realEstateCmd) Synopsis() string { return "project a financed rental property" }
func (*realEstateCmd) Usage() string {
	return `simulate real-estate [-property n] [-down n] [-financing n] [-appreciation n] [-rent n] [-construction n] [-years n] [-inflation n] [-csv] [-raw]

  Projects a property bought with an SAC mortgage and rented out after construction.
  Appreciation is a monthly percentage; the other rates are annual.
`
}

func (c *realEstateCmd) SetFlags(f *flag.FlagSet) {
	c.output.setFlags(f)
	f.Float64Var(&c.params.PropertyValue, "property", 500000, "property value")
	f.Float64Var(&c.params.DownPayment, "down", 150000, "down payment")
	f.Float64Var(&c.params.FinancingRate, "financing", 10, "annual financing rate %")
	f.Float64Var(&c.params.AppreciationRate, "appreciation", 0.5, "monthly appreciation rate %")
	f.Float64Var(&c.params.MonthlyRent, "rent", 2500, "monthly rent")
	f.IntVar(&c.params.ConstructionYears, "construction", 0, "years before the property can be rented")
	f.IntVar(&c.params.Years, "years", 20, "investment horizon in years")
	f.Float64Var(&c.params.InflationRate, "inflation", 4, "annual inflation rate %")
}

func (c *realEstateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := validation.ValidateRealEstate(c.params); err != nil {
		return c.fail(subcommands.ExitUsageError, err)
	}
	return c.finish(simulation.ProjectRealEstate(c.params))
}

type mixedCmd struct {
	output
	params simulation.MixedParameters
}

func (*mixedCmd) Name() string     { return "mixed" }
func (*mixedCmd) Synopsis() string { return "project a financed property plus CDI contributions" }
func (*mixedCmd) Usage() string {
	return `simulate mixed [-property n] [-down n] [-financing n] [-appreciation n] [-cdi n] [-monthly n] [-tax n] [-years n] [-inflation n] [-csv] [-raw]

  Projects a financed property while investing a monthly contribution in CDI.
`
}

func (c *mixedCmd) SetFlags(f *flag.FlagSet) {
	c.output.setFlags(f)
	f.Float64Var(&c.params.PropertyValue, "property", 400000, "property value")
	f.Float64Var(&c.params.DownPayment, "down", 100000, "down payment")
	f.Float64Var(&c.params.FinancingRate, "financing", 9, "annual financing rate %")
	f.Float64Var(&c.params.AppreciationRate, "appreciation", 0.4, "monthly appreciation rate %")
	f.Float64Var(&c.params.CDIRate, "cdi", 11, "annual CDI rate %")
	f.Float64Var(&c.params.MonthlyContribution, "monthly", 1500, "monthly CDI contribution")
	f.Float64Var(&c.params.TaxRate, "tax", 15, "income tax rate % on CDI interest")
	f.IntVar(&c.params.Years, "years", 20, "investment horizon in years")
	f.Float64Var(&c.params.InflationRate, "inflation", 4, "annual inflation rate %")
}

func (c *mixedCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := validation.ValidateMixed(c.params); err != nil {
		return c.fail(subcommands.ExitUsageError, err)
	}
	return c.finish(simulation.ProjectMixed(c.params))
}
