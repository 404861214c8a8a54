// Package report aggregates stored expenses into per-category totals
// for the summary endpoint and the CLI.
package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"expenserule/internal/models"
	"expenserule/internal/registry"

	"github.com/shopspring/decimal"
)

// BuildSummary aggregates expenses by category with exact decimal
// sums. Totals come back in registry order; categories with no
// expenses are omitted. Rows whose category the registry no longer
// knows are appended at the end, sorted by name, so no expense ever
// drops out of the report.
func BuildSummary(reg *registry.Registry, expenses []models.Expense) []models.CategoryTotal {
	totals := make(map[string]*models.CategoryTotal)
	for _, e := range expenses {
		t, ok := totals[e.Category]
		if !ok {
			line := e.ScheduleCLine
			if cat, found := reg.ByName(e.Category); found {
				line = cat.Line
			}
			t = &models.CategoryTotal{Category: e.Category, Line: line}
			totals[e.Category] = t
		}
		t.Count++
		t.Total = t.Total.Add(e.Amount)
	}

	result := make([]models.CategoryTotal, 0, len(totals))
	for _, cat := range reg.All() {
		if t, ok := totals[cat.Name]; ok {
			result = append(result, *t)
			delete(totals, cat.Name)
		}
	}

	rest := make([]models.CategoryTotal, 0, len(totals))
	for _, t := range totals {
		rest = append(rest, *t)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Category < rest[j].Category })

	return append(result, rest...)
}

// RenderTable writes the totals as an aligned text table ending with a
// grand total row.
func RenderTable(w io.Writer, totals []models.CategoryTotal) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tCATEGORY\tCOUNT\tTOTAL")

	grand := decimal.Zero
	count := 0
	for _, t := range totals {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", t.Line, t.Category, t.Count, t.Total.StringFixed(2))
		grand = grand.Add(t.Total)
		count += t.Count
	}

	fmt.Fprintf(tw, "\tTOTAL\t%d\t%s\n", count, grand.StringFixed(2))
	return tw.Flush()
}
