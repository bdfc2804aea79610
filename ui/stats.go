package ui

import (
	"fmt"

	"github.com/pthm-cable/snakevo/telemetry"
)

// StatsPanelData is the input for the generation stats panel.
type StatsPanelData struct {
	Stats   telemetry.GenerationStats
	Have    bool
	TickCap int
}

// generationSections describes the generation stats panel.
var generationSections = []SectionDescriptor{
	{
		ID:    "fitness",
		Title: "Last Generation",
		Visible: func(d any) bool {
			return d.(*StatsPanelData).Have
		},
		Fields: []FieldDescriptor{
			{ID: "gen", Label: "Generation", Widget: WidgetText,
				TextGetter: func(d any) string { return fmt.Sprintf("%d", d.(*StatsPanelData).Stats.Generation) }},
			{ID: "best", Label: "Best", Widget: WidgetBar,
				Getter:   func(d any) float32 { return float32(d.(*StatsPanelData).Stats.BestFitness) },
				RangeMax: fitnessRange},
			{ID: "mean", Label: "Mean", Widget: WidgetBar,
				Getter:   func(d any) float32 { return float32(d.(*StatsPanelData).Stats.MeanFitness) },
				RangeMax: fitnessRange},
			{ID: "median", Label: "Median", Widget: WidgetText, Format: "%.1f",
				Getter: func(d any) float32 { return float32(d.(*StatsPanelData).Stats.MedianFitness) }},
			{ID: "std", Label: "Std", Widget: WidgetText, Format: "%.2f",
				Getter: func(d any) float32 { return float32(d.(*StatsPanelData).Stats.StdFitness) }},
		},
	},
	{
		ID:    "food",
		Title: "Food",
		Visible: func(d any) bool {
			return d.(*StatsPanelData).Have
		},
		Fields: []FieldDescriptor{
			{ID: "best_score", Label: "Best score", Widget: WidgetText,
				TextGetter: func(d any) string { return fmt.Sprintf("%d", d.(*StatsPanelData).Stats.BestScore) }},
			{ID: "mean_score", Label: "Mean score", Widget: WidgetText, Format: "%.2f",
				Getter: func(d any) float32 { return float32(d.(*StatsPanelData).Stats.MeanScore) }},
			{ID: "max_len", Label: "Max length", Widget: WidgetText,
				TextGetter: func(d any) string { return fmt.Sprintf("%d", d.(*StatsPanelData).Stats.MaxLength) }},
			{ID: "degenerate", Label: "Degenerate", Widget: WidgetText,
				TextGetter: func(d any) string { return fmt.Sprintf("%v", d.(*StatsPanelData).Stats.Degenerate) }},
		},
	},
}

// fitnessRange scales fitness bars to the tick cap, or to the best value
// when the cap is unlimited.
func fitnessRange(d any) float32 {
	data := d.(*StatsPanelData)
	if data.TickCap > 0 {
		return float32(data.TickCap + 1)
	}
	return float32(data.Stats.BestFitness)
}

// StatsPanel renders the last generation's statistics.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the panel.
func (s *StatsPanel) Draw(data StatsPanelData) {
	r := s.renderer
	padding := r.Theme.Padding
	panelHeight := r.Theme.LineHeight*14 + padding*2

	r.DrawPanel(s.x, s.y, s.width, panelHeight)

	y := s.y + padding
	if !data.Have {
		r.DrawLabelValue(s.x+padding, y, "Generation", "running")
		return
	}
	for _, sd := range generationSections {
		y = r.DrawSection(s.x+padding, y, sd, &data, s.width-padding*2)
	}
}
