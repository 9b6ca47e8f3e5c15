package report

import (
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/lucasbern/sweeprun"
)

// PrintOptimisationSummary renders the parent (inherited/fixed) params above
// the searched params and best score an Optimised root converged on (spec §6
// Output). Valid once root.IsDone.
func PrintOptimisationSummary(root *sweeprun.OptimisedNode) {
	printParamTable(os.Stdout, "Parent parameters", root.ParentParams())

	searched := root.SearchedParams()
	names := sortedParamNames(searched)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(append(append([]string{}, names...), "best_score"))

	row := make([]string, 0, len(names)+1)
	for _, name := range names {
		row = append(row, searched[name])
	}
	row = append(row, formatFloat(root.BestScore()))
	table.Append(row)
	table.Render()
}

func printParamTable(w *os.File, title string, params map[string]string) {
	if len(params) == 0 {
		return
	}
	names := sortedParamNames(params)

	table := tablewriter.NewWriter(w)
	table.SetCaption(true, title)
	table.SetHeader(names)

	row := make([]string, 0, len(names))
	for _, name := range names {
		row = append(row, params[name])
	}
	table.Append(row)
	table.Render()
}

func sortedParamNames(params map[string]string) []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
