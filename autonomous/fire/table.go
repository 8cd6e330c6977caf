package fire

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Table samples the profile a mode runs every step seconds and prints the kicker command
// and any turns at each sample. Samples where the kicker holds show "-".
func (ps Profiles) Table(mode Mode, step float64) string {
	profile := ps.For(mode)
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s fire, %.1fs", mode, profile.Duration))
	t.AppendHeader(table.Row{"t (s)", "Kicker", "Turns (deg)"})
	if step <= 0 {
		step = 0.5
	}
	// integer steps so the last sample lands on the duration exactly
	n := int(profile.Duration/step + 1e-9)
	for i := 0; i <= n; i++ {
		at := float64(i) * step
		kicker := "-"
		if pos, ok := profile.Kicks.Evaluate(at); ok {
			kicker = fmt.Sprintf("%.2f", pos)
		}
		turns := ""
		if mode == ModePowershot {
			for _, w := range profile.Turns.Active(at) {
				turns += fmt.Sprintf("%+.0f ", w.AngleDeg)
			}
		}
		t.AppendRow(table.Row{fmt.Sprintf("%.2f", at), kicker, turns})
	}
	return t.Render()
}
