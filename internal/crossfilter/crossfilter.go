// Package crossfilter links a pie chart's segment selection to the category
// filter of another view. Transitions are pure: they take a selection state
// and return the next one.
package crossfilter

import "github.com/noah-isme/campus-credit-api/internal/models"

// Visual contract for selected and dimmed segments.
const (
	ActiveStroke      = "#333"
	ActiveStrokeWidth = 2
	DimmedOpacity     = 0.5
	FullOpacity       = 1.0
)

// DefaultPalette is the segment color order used when a chart has no palette of its own.
var DefaultPalette = []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#A67BF4"}

// Select toggles the segment at index. Selecting the active index clears the
// selection; any other index becomes active together with its category label.
func Select(state models.SelectionState, index int, label string) models.SelectionState {
	if state.ActivePieIndex != nil && *state.ActivePieIndex == index {
		return Clear(state)
	}
	next := state
	idx := index
	category := label
	next.ActivePieIndex = &idx
	next.CategoryFilter = &category
	return next
}

// Clear resets the chart-linked selection.
func Clear(state models.SelectionState) models.SelectionState {
	next := state
	next.ActivePieIndex = nil
	next.CategoryFilter = nil
	return next
}

// Active reports whether a segment is currently selected.
func Active(state models.SelectionState) bool {
	return state.ActivePieIndex != nil
}

// SegmentStyles renders the per-segment styling for count segments. With no
// active segment every slice is fully opaque; otherwise only the active one is.
func SegmentStyles(count int, palette []string, active *int) []models.SegmentStyle {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	styles := make([]models.SegmentStyle, 0, count)
	for i := 0; i < count; i++ {
		style := models.SegmentStyle{
			Index:   i,
			Color:   palette[i%len(palette)],
			Opacity: FullOpacity,
			Stroke:  "none",
		}
		switch {
		case active == nil:
		case *active == i:
			style.Active = true
			style.Stroke = ActiveStroke
			style.StrokeWidth = ActiveStrokeWidth
		default:
			style.Opacity = DimmedOpacity
		}
		styles = append(styles, style)
	}
	return styles
}

// PieOptions returns the display options of a pie chart, filling in the renderer defaults.
func PieOptions(height int, showLegend bool) models.ChartOptions {
	opts := DefaultOptions(models.ChartPie)
	if height > 0 {
		opts.Height = height
	}
	opts.ShowLegend = showLegend
	return opts
}

// DefaultOptions returns the renderer defaults for kind.
func DefaultOptions(kind models.ChartKind) models.ChartOptions {
	return models.ChartOptions{
		Kind:        kind,
		Colors:      append([]string(nil), DefaultPalette...),
		DataKey:     "value",
		XAxisKey:    "name",
		Height:      300,
		ShowGrid:    true,
		ShowTooltip: true,
		ShowLegend:  false,
	}
}
