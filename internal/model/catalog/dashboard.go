package catalog

// Dashboard aggregates the company overview charts.
type Dashboard struct {
	KPIs           []KPIPoint `json:"kpis" yaml:"kpis"`
	WasteBreakdown []Slice    `json:"wasteBreakdown" yaml:"wasteBreakdown"`
	Alerts         []Alert    `json:"alerts" yaml:"alerts"`
}

// KPIPoint is one month of the performance series.
type KPIPoint struct {
	Month   string  `json:"month" yaml:"month"`
	Waste   float64 `json:"waste" yaml:"waste"`
	Savings float64 `json:"savings" yaml:"savings"`
	CO2     float64 `json:"co2" yaml:"co2"`
}

// Slice is a named share of a pie chart.
type Slice struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Color string  `json:"color" yaml:"color"`
}

// Alert flags inventory that needs attention.
type Alert struct {
	ID       int    `json:"id" yaml:"id"`
	Type     string `json:"type" yaml:"type"`
	Item     string `json:"item" yaml:"item"`
	Quantity string `json:"quantity" yaml:"quantity"`
	Urgency  string `json:"urgency" yaml:"urgency"`
}

// Carbon summarises the personal carbon tracker.
type Carbon struct {
	Monthly          []EmissionPoint `json:"monthly" yaml:"monthly"`
	Breakdown        []Slice         `json:"breakdown" yaml:"breakdown"`
	Baseline         float64         `json:"baseline" yaml:"baseline"`
	Target           float64         `json:"target" yaml:"target"`
	Total            float64         `json:"total" yaml:"-"`
	ProgressToTarget float64         `json:"progressToTarget" yaml:"-"`
	Achievements     []Achievement   `json:"achievements" yaml:"achievements"`
}

// EmissionPoint pairs actual monthly emissions with the target.
type EmissionPoint struct {
	Month     string  `json:"month" yaml:"month"`
	Emissions float64 `json:"emissions" yaml:"emissions"`
	Target    float64 `json:"target" yaml:"target"`
}

// Achievement is a carbon tracker badge.
type Achievement struct {
	Name   string `json:"name" yaml:"name"`
	Earned bool   `json:"earned" yaml:"earned"`
}

// Totals fills Total and ProgressToTarget from the breakdown.
// Progress measures how far the total has moved from baseline toward target.
func (c *Carbon) Totals() {
	var total float64
	for _, s := range c.Breakdown {
		total += s.Value
	}
	c.Total = total

	span := c.Baseline - c.Target
	if span <= 0 {
		c.ProgressToTarget = 0
		return
	}
	c.ProgressToTarget = clampPercent((c.Baseline - total) / span * 100)
}
