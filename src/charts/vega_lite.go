package charts

import "sentiment-dashboard/src/models"

const vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// -----------------------------------------------------------------------------
// Vega-Lite document types (only the parts the dashboard uses)
// -----------------------------------------------------------------------------

type VegaLiteSpec struct {
	Schema   string          `json:"$schema"`
	Title    string          `json:"title,omitempty"`
	Data     VegaData        `json:"data"`
	Mark     VegaMark        `json:"mark"`
	Encoding VegaEncoding    `json:"encoding"`
	Height   int             `json:"height"`
	Width    string          `json:"width"`
	Params   []VegaParameter `json:"params,omitempty"`
}

type VegaData struct {
	Values []models.MRecordView `json:"values"`
}

type VegaMark struct {
	Type        string        `json:"type"`
	Color       interface{}   `json:"color,omitempty"`
	StrokeWidth int           `json:"strokeWidth,omitempty"`
	Interpolate string        `json:"interpolate,omitempty"`
	Line        *VegaLineMark `json:"line,omitempty"`
}

type VegaLineMark struct {
	Color       string `json:"color"`
	StrokeWidth int    `json:"strokeWidth"`
}

type VegaGradient struct {
	Gradient string     `json:"gradient"`
	Stops    []VegaStop `json:"stops"`
	X1       float64    `json:"x1"`
	X2       float64    `json:"x2"`
	Y1       float64    `json:"y1"`
	Y2       float64    `json:"y2"`
}

type VegaStop struct {
	Color  string  `json:"color"`
	Offset float64 `json:"offset"`
}

type VegaEncoding struct {
	X       VegaChannel   `json:"x"`
	Y       VegaChannel   `json:"y"`
	Tooltip []VegaChannel `json:"tooltip,omitempty"`
}

type VegaChannel struct {
	Field string     `json:"field"`
	Type  string     `json:"type"`
	Title string     `json:"title,omitempty"`
	Axis  *VegaAxis  `json:"axis,omitempty"`
	Scale *VegaScale `json:"scale,omitempty"`
}

type VegaAxis struct {
	LabelAngle    int `json:"labelAngle,omitempty"`
	LabelFontSize int `json:"labelFontSize"`
	TitleFontSize int `json:"titleFontSize"`
}

type VegaScale struct {
	Zero   *bool     `json:"zero,omitempty"`
	Domain []float64 `json:"domain,omitempty"`
}

// VegaParameter with an interval selection bound to scales gives pan/zoom.
type VegaParameter struct {
	Name   string `json:"name"`
	Select string `json:"select"`
	Bind   string `json:"bind"`
}

// -----------------------------------------------------------------------------

// VegaLiteRenderer builds the price and sentiment charts.
type VegaLiteRenderer struct {
	PriceTitle      string
	PriceColor      string
	SentimentColor  string
	PriceHeight     int
	SentimentHeight int
}

// -----------------------------------------------------------------------------

func NewVegaLiteRenderer(priceTitle string) *VegaLiteRenderer {
	if priceTitle == "" {
		priceTitle = "Close Price"
	}
	return &VegaLiteRenderer{
		PriceTitle:      priceTitle,
		PriceColor:      "#2563EB",
		SentimentColor:  "#16A34A",
		PriceHeight:     380,
		SentimentHeight: 320,
	}
}

// -----------------------------------------------------------------------------

func (r *VegaLiteRenderer) Format() string {
	return "vega-lite"
}

// -----------------------------------------------------------------------------

// PriceChart is a bold line of close against date with a free y scale.
func (r *VegaLiteRenderer) PriceChart(records []models.MRecordView) interface{} {
	zero := false
	return &VegaLiteSpec{
		Schema: vegaLiteSchema,
		Data:   VegaData{Values: nonNil(records)},
		Mark:   VegaMark{Type: "line", Color: r.PriceColor, StrokeWidth: 4},
		Encoding: VegaEncoding{
			X: dateChannel(),
			Y: VegaChannel{
				Field: "close",
				Type:  "quantitative",
				Title: r.PriceTitle,
				Scale: &VegaScale{Zero: &zero},
				Axis:  &VegaAxis{LabelFontSize: 12, TitleFontSize: 14},
			},
			Tooltip: []VegaChannel{
				{Field: "date", Type: "temporal", Title: "Date"},
				{Field: "close", Type: "quantitative", Title: "Close Price"},
			},
		},
		Height: r.PriceHeight,
		Width:  "container",
		Params: panZoom(),
	}
}

// -----------------------------------------------------------------------------

// SentimentChart is a gradient area of the filled score on a fixed [-1, 1] axis.
func (r *VegaLiteRenderer) SentimentChart(records []models.MRecordView) interface{} {
	return &VegaLiteSpec{
		Schema: vegaLiteSchema,
		Data:   VegaData{Values: nonNil(records)},
		Mark: VegaMark{
			Type:        "area",
			Interpolate: "monotone",
			Line:        &VegaLineMark{Color: r.SentimentColor, StrokeWidth: 3},
			Color: &VegaGradient{
				Gradient: "linear",
				Stops: []VegaStop{
					{Color: "#BBF7D0", Offset: 0},
					{Color: r.SentimentColor, Offset: 1},
				},
				X1: 1, X2: 1, Y1: 1, Y2: 0,
			},
		},
		Encoding: VegaEncoding{
			X: dateChannel(),
			Y: VegaChannel{
				Field: "avg_sentiment_score",
				Type:  "quantitative",
				Title: "Sentiment Score",
				Scale: &VegaScale{Domain: []float64{-1, 1}},
				Axis:  &VegaAxis{LabelFontSize: 12, TitleFontSize: 14},
			},
			Tooltip: []VegaChannel{
				{Field: "date", Type: "temporal", Title: "Date"},
				{Field: "avg_sentiment_score", Type: "quantitative", Title: "Sentiment"},
			},
		},
		Height: r.SentimentHeight,
		Width:  "container",
		Params: panZoom(),
	}
}

// -----------------------------------------------------------------------------

func dateChannel() VegaChannel {
	return VegaChannel{
		Field: "date",
		Type:  "temporal",
		Title: "Date",
		Axis:  &VegaAxis{LabelAngle: -45, LabelFontSize: 12, TitleFontSize: 14},
	}
}

func panZoom() []VegaParameter {
	return []VegaParameter{{Name: "grid", Select: "interval", Bind: "scales"}}
}

func nonNil(records []models.MRecordView) []models.MRecordView {
	if records == nil {
		return []models.MRecordView{}
	}
	return records
}
