// Package report renders a Comparison root's ranked results and an Optimised
// root's best-parameter summary (spec §6 Output), using
// gonum.org/v1/gonum/stat for the mean/standard-deviation columns and
// github.com/olekukonko/tablewriter to print them.
package report

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/stat"

	"github.com/lucasbern/sweeprun"
)

type rankedRow struct {
	params map[string]string
	mean   float64
	stddev float64
	n      int
}

// PrintRankedComparison groups root's finished tasks by parameter
// assignment, computes each group's mean and standard deviation score, and
// prints them sorted by mean descending (spec §6).
func PrintRankedComparison(root *sweeprun.ComparisonNode) {
	names := root.ParamNames()

	scoresByKey := make(map[string][]float64)
	paramsByKey := make(map[string]map[string]string)

	for _, t := range root.FinishedTasks() {
		score, ok := t.Score()
		if !ok {
			continue
		}
		key := groupKey(names, t.Params)
		scoresByKey[key] = append(scoresByKey[key], score)
		paramsByKey[key] = t.Params
	}

	rows := make([]rankedRow, 0, len(scoresByKey))
	for key, scores := range scoresByKey {
		mean, stddev := stat.MeanStdDev(scores, nil)
		rows = append(rows, rankedRow{params: paramsByKey[key], mean: mean, stddev: stddev, n: len(scores)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].mean > rows[j].mean })

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(append(append([]string{}, names...), "mean", "stddev", "n"))
	for _, row := range rows {
		line := make([]string, 0, len(names)+3)
		for _, name := range names {
			line = append(line, row.params[name])
		}
		line = append(line, formatFloat(row.mean), formatFloat(row.stddev), strconv.Itoa(row.n))
		table.Append(line)
	}
	table.Render()
}

// groupKey joins a task's values for names in order, using a separator that
// cannot appear in a formatted parameter value.
func groupKey(names []string, params map[string]string) string {
	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(params[name])
		sb.WriteByte('\x1f')
	}
	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
