package models

// ChartKind selects the visualisation rendered by the presentation layer.
type ChartKind string

const (
	ChartArea ChartKind = "area"
	ChartBar  ChartKind = "bar"
	ChartPie  ChartKind = "pie"
)

// ChartPoint is a named value plotted on a chart.
type ChartPoint struct {
	Name  string  `db:"name" json:"name"`
	Value float64 `db:"value" json:"value"`
}

// ChartOptions are the display options handed to the chart renderer.
type ChartOptions struct {
	Kind        ChartKind `json:"kind"`
	Colors      []string  `json:"colors"`
	DataKey     string    `json:"dataKey"`
	XAxisKey    string    `json:"xAxisKey"`
	Height      int       `json:"height"`
	ShowGrid    bool      `json:"showGrid"`
	ShowTooltip bool      `json:"showTooltip"`
	ShowLegend  bool      `json:"showLegend"`
}

// SegmentStyle is the per-segment visual contract for pie charts.
type SegmentStyle struct {
	Index       int     `json:"index"`
	Color       string  `json:"color"`
	Opacity     float64 `json:"opacity"`
	Stroke      string  `json:"stroke"`
	StrokeWidth int     `json:"strokeWidth"`
	Active      bool    `json:"active"`
}

// DistributionScope names one of the credit distribution pies.
type DistributionScope string

const (
	DistributionDashboard DistributionScope = "dashboard"
	DistributionCredits   DistributionScope = "credits"
)

// StatCard is a headline figure on the overview dashboard.
type StatCard struct {
	Key           string  `db:"key" json:"key"`
	Title         string  `db:"title" json:"title"`
	Value         string  `db:"value" json:"value"`
	TrendValue    float64 `db:"trend_value" json:"trend_value"`
	TrendPositive bool    `db:"trend_positive" json:"trend_positive"`
	Description   string  `db:"description" json:"description"`
}

// TodoLevel grades how urgent a pending task is.
type TodoLevel string

const (
	TodoWarning TodoLevel = "warning"
	TodoInfo    TodoLevel = "info"
	TodoDanger  TodoLevel = "danger"
)

// TodoItem is a pending task shown on the overview dashboard.
type TodoItem struct {
	Key   string    `db:"key" json:"key"`
	Title string    `db:"title" json:"title"`
	Count int       `db:"count" json:"count"`
	Level TodoLevel `db:"level" json:"level"`
}
