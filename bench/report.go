package bench

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderResults renders a comparison table of benchmark results suitable for
// terminal output.
func RenderResults(results []*Result) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)

	w.AppendHeader(table.Row{
		"Label", "Backend", "Elapsed", "Puts", "Gets", "Hits",
		"Misses", "Inserts", "Updates", "Evictions",
	})

	for _, res := range results {
		w.AppendRow(table.Row{
			res.Label, res.Backend, res.Elapsed, res.Puts,
			res.Gets, res.Hits, res.Misses, res.Inserts,
			res.Updates, res.Evictions,
		})
	}

	return w.Render()
}
