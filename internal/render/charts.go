// Package render turns the engine's result sets into transport-neutral
// chart payloads: a horizontal bar chart of construction costs, a
// 10-year stacked area chart of operating costs, and a donut chart of
// the total cost of ownership.
package render

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/frontrange/dccost/internal/engine"
)

// serverHardwareComponent gets its bar label drawn inside the bar;
// it is typically the widest bar and an outside label would clip.
const serverHardwareComponent = "Server hardware"

// Annotation is a text callout placed inside a chart.
type Annotation struct {
	Component string `json:"component"`
	Text      string `json:"text"`
}

// BarChart describes a horizontal bar chart of construction costs.
// Bars appear in breakdown order (cost descending).
type BarChart struct {
	Title       string       `json:"title"`
	XAxisTitle  string       `json:"x_axis_title"`
	YAxisTitle  string       `json:"y_axis_title"`
	Components  []string     `json:"components"`
	Values      []float64    `json:"values"`
	BarLabels   []string     `json:"bar_labels"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Series is one component's year-by-year cost line.
type Series struct {
	Component string    `json:"component"`
	Values    []float64 `json:"values"`
}

// AreaChart describes the 10-year stacked area chart of operating
// costs per component.
type AreaChart struct {
	Title  string   `json:"title"`
	Years  []int    `json:"years"`
	Series []Series `json:"series"`
}

// DonutSegment is one slice of the TCO donut.
type DonutSegment struct {
	Component string  `json:"component"`
	Value     float64 `json:"value"`
	Percent   float64 `json:"percent"`
}

// DonutChart describes the total-cost-of-ownership donut chart.
type DonutChart struct {
	Title    string         `json:"title"`
	Hole     float64        `json:"hole"`
	Segments []DonutSegment `json:"segments"`
}

// Charts bundles the three renderable figures for one cost report.
type Charts struct {
	Construction BarChart   `json:"construction_chart"`
	Operations   AreaChart  `json:"operations_line_chart"`
	TCO          DonutChart `json:"operations_donut"`
}

// Build produces all three chart payloads from a cost report.
func Build(report *engine.CostReport) Charts {
	return Charts{
		Construction: BuildBarChart(report.Construction),
		Operations:   BuildAreaChart(report.Forecast),
		TCO:          BuildDonutChart(report.TCO),
	}
}

// BuildBarChart renders the construction breakdown as a horizontal bar
// chart. Every bar carries an outside "$<n>M" label except the server
// hardware bar, whose label moves inside as an annotation.
func BuildBarChart(breakdown engine.ConstructionBreakdown) BarChart {
	chart := BarChart{
		Title:      fmt.Sprintf("Total Construction Cost: $%.0f Million (USD)", breakdown.TotalUSDM),
		XAxisTitle: "Cost (USD Millions)",
		YAxisTitle: "Component",
	}
	for _, item := range breakdown.Items {
		chart.Components = append(chart.Components, item.Component)
		chart.Values = append(chart.Values, item.TotalCostUSDM)
		if item.Component == serverHardwareComponent {
			chart.BarLabels = append(chart.BarLabels, "")
			chart.Annotations = append(chart.Annotations, Annotation{
				Component: item.Component,
				Text:      fmt.Sprintf("$%.0fM", item.TotalCostUSDM),
			})
			continue
		}
		chart.BarLabels = append(chart.BarLabels, fmt.Sprintf("$%.0fM", item.TotalCostUSDM))
	}
	return chart
}

// BuildAreaChart renders the operating forecast as per-component
// series over the 10-year horizon.
func BuildAreaChart(forecast engine.OperatingForecast) AreaChart {
	chart := AreaChart{
		Title: fmt.Sprintf("First Year Operations and Maintenance Cost: $%.0fM", forecast.FirstYearTotalUSDM),
	}
	for i := 0; i < engine.ForecastYears; i++ {
		chart.Years = append(chart.Years, forecast.BaseYear+i)
	}

	values := make(map[string][]float64, len(forecast.Components))
	for _, entry := range forecast.Entries {
		values[entry.Component] = append(values[entry.Component], entry.AnnualCostUSDM)
	}
	for _, component := range forecast.Components {
		chart.Series = append(chart.Series, Series{Component: component, Values: values[component]})
	}
	return chart
}

// BuildDonutChart renders the TCO breakdown as a donut with
// label+percent segments.
func BuildDonutChart(tco engine.TCOBreakdown) DonutChart {
	chart := DonutChart{
		Title: fmt.Sprintf("Total 10 Year Cost of Ownership: $%.0fM", tco.GrandTotalUSDM),
		Hole:  0.5,
	}
	for _, entry := range tco.Entries {
		percent := 0.0
		if tco.GrandTotalUSDM > 0 {
			percent = entry.ValueUSDM / tco.GrandTotalUSDM * 100
		}
		chart.Segments = append(chart.Segments, DonutSegment{
			Component: entry.Component,
			Value:     entry.ValueUSDM,
			Percent:   percent,
		})
	}
	return chart
}

// EncodeJSON marshals a chart payload (or any result set) to JSON.
func EncodeJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}
