package plan

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Table prints one row per step with its segment endpoints, timing and fire action.
func (p *Plan) Table() string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s plan", p.Classification))
	t.AppendHeader(table.Row{"#", "Step", "Start", "End", "Length (in)", "Duration", "Fire"})
	for i, step := range p.Steps {
		row := table.Row{i, step.Name, "", "", "", "", ""}
		if seg := step.Segment; seg != nil {
			row[2] = seg.Start().String()
			row[3] = seg.End().String()
			row[4] = fmt.Sprintf("%.1f", seg.Length())
			row[5] = seg.Duration().Round(10 * time.Millisecond).String()
		}
		if step.Fire != nil {
			row[6] = fmt.Sprintf("%s @ %.2f", step.Fire.Mode, step.Fire.Power)
		}
		t.AppendRow(row)
	}
	return t.Render()
}
