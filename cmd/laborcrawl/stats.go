package main

import (
	"fmt"
	"sort"

	"github.com/hylin/laborcrawl"
	"github.com/hylin/laborcrawl/fs"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	store := fs.NewResultStore(c.Input)
	rows, err := store.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", laborcrawl.ErrorMessage(err))
		return err
	}

	if len(rows) == 0 {
		fmt.Fprintf(deps.Stdout, "No results in %s. Run 'laborcrawl crawl' first.\n", c.Input)
		return nil
	}

	var withSalary []*laborcrawl.ResultRow
	var sum float64
	for _, row := range rows {
		if row.MonthlySalary != nil {
			withSalary = append(withSalary, row)
			sum += *row.MonthlySalary
		}
	}

	fmt.Fprintf(deps.Stdout, "Total cases:        %d\n", len(rows))
	fmt.Fprintf(deps.Stdout, "Cases with salary:  %d\n", len(withSalary))

	if len(withSalary) == 0 {
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Mean monthly salary: %.0f\n", sum/float64(len(withSalary)))

	sort.Slice(withSalary, func(i, j int) bool {
		return *withSalary[i].MonthlySalary > *withSalary[j].MonthlySalary
	})

	top := c.Top
	if top <= 0 || top > len(withSalary) {
		top = len(withSalary)
	}

	fmt.Fprintf(deps.Stdout, "Top %d salaries:\n", top)
	for i, row := range withSalary[:top] {
		fmt.Fprintf(deps.Stdout, "  %d. %.0f  %s  %s\n",
			i+1, *row.MonthlySalary, stringOrNull(row.JobTitle), row.CaseID)
	}

	return nil
}
