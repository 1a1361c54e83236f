package monitor

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tmc-evolve/evolve"
	"github.com/lixenwraith/tmc-evolve/objective"
	"github.com/lixenwraith/tmc-evolve/parameter"
)

// Canvas is the drawing surface; tcell.Screen satisfies it
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

var (
	styleHeader = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleText   = tcell.StyleDefault
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFocus  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleWarn   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBar    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
)

var sparkRunes = []rune(" ▁▂▃▄▅▆▇█")

type runView struct {
	last    evolve.Event
	best    []float64
	noMatch int
}

// Dashboard keeps the latest state of every run and renders it
type Dashboard struct {
	objective objective.Objective
	order     []string
	runs      map[string]*runView
	focus     int
	finished  bool
}

// NewDashboard creates an empty dashboard scoring rows with obj
func NewDashboard(obj objective.Objective) *Dashboard {
	return &Dashboard{
		objective: obj,
		runs:      make(map[string]*runView),
	}
}

// Apply records an event and reports whether it carried a new best score
func (d *Dashboard) Apply(ev evolve.Event) bool {
	rv, ok := d.runs[ev.RunID]
	if !ok {
		rv = &runView{}
		d.runs[ev.RunID] = rv
		d.order = append(d.order, ev.RunID)
	}

	rv.last = ev
	if ev.NoMatch {
		rv.noMatch++
	}
	if ev.Stats.Count > 0 {
		rv.best = append(rv.best, ev.Stats.Best)
		if len(rv.best) > parameter.MonitorHistoryWidth {
			rv.best = rv.best[len(rv.best)-parameter.MonitorHistoryWidth:]
		}
	}
	return ev.NewBest
}

// Next moves the detail view to the following run
func (d *Dashboard) Next() {
	if len(d.order) > 0 {
		d.focus = (d.focus + 1) % len(d.order)
	}
}

// Focused returns the run id shown in detail, empty before any event
func (d *Dashboard) Focused() string {
	if len(d.order) == 0 {
		return ""
	}
	return d.order[d.focus]
}

// Finish marks every run as done
func (d *Dashboard) Finish() { d.finished = true }

// Draw renders the dashboard; the caller clears and shows the canvas
func (d *Dashboard) Draw(c Canvas) {
	w, h := c.Size()
	y := 0

	header := fmt.Sprintf("tmc-evolve  objective=%s  runs=%d", d.objective.Name(), len(d.order))
	if d.finished {
		header += "  finished"
	}
	drawText(c, 0, y, w, styleHeader, header)
	y += 2

	for i, id := range d.order {
		if y >= h-1 {
			break
		}
		style := styleText
		switch {
		case i == d.focus:
			style = styleFocus
		case d.runs[id].last.NoMatch:
			style = styleWarn
		}
		drawText(c, 0, y, w, style, d.runLine(id))
		y++
	}
	y++

	if focus := d.Focused(); focus != "" && y < h-1 {
		rv := d.runs[focus]

		drawText(c, 0, y, w, styleHeader, "best ")
		drawText(c, 5, y, w, styleBar, sparkline(rv.best))
		y += 2

		drawText(c, 0, y, w, styleDim, fmt.Sprintf("%3s  %-12s %12s %5s  %s", "#", "id", "score", "iter", "encoding"))
		y++
		for i, e := range rv.last.Current {
			if y >= h-1 {
				break
			}
			line := fmt.Sprintf("%3d  %-12s %12s %5d  %s", i+1, e.ID, formatScore(d.objective.Score(e)), e.Iter, e.Ligands)
			drawText(c, 0, y, w, styleText, line)
			y++
		}
	}

	if h > 0 {
		drawText(c, 0, h-1, w, styleDim, "q/Esc quit  Tab next run")
	}
}

func (d *Dashboard) runLine(id string) string {
	rv := d.runs[id]
	ev := rv.last
	line := fmt.Sprintf("run %s  iter %d/%d  pop %d", id, ev.Iteration, ev.Total, len(ev.Current))
	if ev.Stats.Count > 0 {
		line += fmt.Sprintf("  best %s  avg %s", formatScore(ev.Stats.Best), formatScore(ev.Stats.Average))
	}
	line += fmt.Sprintf("  matched %d", len(ev.Matched))
	if rv.noMatch > 0 {
		line += fmt.Sprintf("  no-match %d", rv.noMatch)
	}
	return line
}

func formatScore(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4g", v)
}

// sparkline scales values between their own minimum and maximum
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	out := make([]rune, len(values))
	top := len(sparkRunes) - 1
	for i, v := range values {
		level := top
		if hi > lo {
			level = 1 + int(math.Round((v-lo)/(hi-lo)*float64(top-1)))
		}
		out[i] = sparkRunes[level]
	}
	return string(out)
}

// drawText writes s from (x, y), clipped at width w
func drawText(c Canvas, x, y, w int, style tcell.Style, s string) {
	for _, r := range s {
		if x >= w {
			return
		}
		c.SetContent(x, y, r, nil, style)
		x++
	}
}
