// Package telemetry publishes run progress over websocket and prometheus
package telemetry

import (
	"encoding/json"
	"math"

	"github.com/lixenwraith/tmc-evolve/evolve"
	"github.com/lixenwraith/tmc-evolve/objective"
	"github.com/lixenwraith/tmc-evolve/space"
)

// Message is the JSON form of one iteration event
type Message struct {
	RunID     string   `json:"run_id"`
	Objective string   `json:"objective"`
	Iteration int      `json:"iteration"`
	Total     int      `json:"total"`
	Proposed  []string `json:"proposed"`
	Matched   []Row    `json:"matched"`
	Current   []Row    `json:"current"`
	Best      *float64 `json:"best,omitempty"`
	Worst     *float64 `json:"worst,omitempty"`
	Average   *float64 `json:"average,omitempty"`
	NoMatch   bool     `json:"no_match"`
	NewBest   bool     `json:"new_best"`
}

// Row is one scored complex; Score is omitted when undefined
type Row struct {
	ID       string   `json:"id"`
	Encoding string   `json:"encoding"`
	Score    *float64 `json:"score,omitempty"`
	Iter     int      `json:"iter"`
}

// NewMessage converts an event, scoring rows with the event's objective
func NewMessage(ev evolve.Event) Message {
	obj, _ := objective.Parse(ev.Objective)

	m := Message{
		RunID:     ev.RunID,
		Objective: ev.Objective,
		Iteration: ev.Iteration,
		Total:     ev.Total,
		Proposed:  ev.Proposed,
		Matched:   rows(ev.Matched, obj),
		Current:   rows(ev.Current, obj),
		NoMatch:   ev.NoMatch,
		NewBest:   ev.NewBest,
	}
	if m.Proposed == nil {
		m.Proposed = []string{}
	}
	if ev.Stats.Count > 0 {
		m.Best = finite(ev.Stats.Best)
		m.Worst = finite(ev.Stats.Worst)
		m.Average = finite(ev.Stats.Average)
	}
	return m
}

// JSON encodes the message
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

func rows(entries []space.Entry, obj objective.Objective) []Row {
	out := make([]Row, len(entries))
	for i, e := range entries {
		out[i] = Row{ID: e.ID, Encoding: e.Ligands.String(), Iter: e.Iter}
		if obj != nil {
			out[i].Score = finite(obj.Score(e))
		}
	}
	return out
}

// finite returns nil for values JSON cannot carry
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
