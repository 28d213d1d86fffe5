package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/service"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/validation"
)

type optimizeCmd struct {
	output
	scenarios   string
	constraints simulation.Constraints
	concurrency int
}

func (*optimizeCmd) Name() string     { return "optimize" }
func (*optimizeCmd) Synopsis() string { return "project several scenarios and blend them" }
func (*optimizeCmd) Usage() string {
	return `simulate optimize -scenarios <file.json> [-target n] [-risk n] [-max n] [-j n] [-csv] [-raw]

  Projects every scenario in the file and prints the optimized blend. The file
  holds a batch request: {"scenarios": [{"type": "fixed-income", "parameters": {...}}, ...]}.
  An "optimize" object in the file overrides the constraint flags.
`
}

func (c *optimizeCmd) SetFlags(f *flag.FlagSet) {
	c.output.setFlags(f)
	f.StringVar(&c.scenarios, "scenarios", "", "path of the scenarios JSON file")
	f.Float64Var(&c.constraints.TargetReturn, "target", 0, "target return %")
	f.Float64Var(&c.constraints.RiskTolerance, "risk", 50, "risk tolerance % (0-100)")
	f.Float64Var(&c.constraints.MaxAllocation, "max", 100, "maximum allocation % per scenario")
	f.IntVar(&c.concurrency, "j", 4, "number of scenarios projected in parallel")
}

func (c *optimizeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.scenarios == "" {
		return c.fail(subcommands.ExitUsageError, errors.New("-scenarios is required"))
	}

	req, err := c.load()
	if err != nil {
		return c.fail(subcommands.ExitUsageError, err)
	}
	if req.Optimize == nil {
		req.Optimize = &c.constraints
	}
	if err := validation.ValidateBatch(req); err != nil {
		return c.fail(subcommands.ExitUsageError, err)
	}

	params := make([]simulation.Parameters, len(req.Scenarios))
	for i, sc := range req.Scenarios {
		if params[i], err = sc.Decode(); err != nil {
			return c.fail(subcommands.ExitUsageError, fmt.Errorf("scenario %d: %w", i, err))
		}
	}

	results, err := service.ProjectConcurrently(ctx, params, max(c.concurrency, 1))
	if err != nil {
		return c.fail(subcommands.ExitFailure, err)
	}

	blended, err := simulation.Optimize(results, *req.Optimize)
	if err != nil {
		return c.fail(subcommands.ExitFailure, err)
	}
	return c.finish(blended)
}

func (c *optimizeCmd) load() (request.BatchRequest, error) {
	var req request.BatchRequest

	data, err := os.ReadFile(c.scenarios)
	if err != nil {
		return req, fmt.Errorf("failed to read scenarios: %w", err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("failed to parse %s: %w", c.scenarios, err)
	}
	return req, nil
}
