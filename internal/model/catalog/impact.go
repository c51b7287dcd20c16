package catalog

// Impact backs the environmental impact tracker.
type Impact struct {
	Metrics          []ImpactMetric    `json:"metrics" yaml:"metrics"`
	Milestones       []Milestone       `json:"milestones" yaml:"milestones"`
	Monthly          []EmissionPoint   `json:"monthly" yaml:"monthly"`
	EmissionSources  []Slice           `json:"emissionSources" yaml:"emissionSources"`
	ReductionTargets []ReductionTarget `json:"reductionTargets" yaml:"reductionTargets"`
	CurrentEmissions float64           `json:"currentEmissions" yaml:"currentEmissions"`
	TargetEmissions  float64           `json:"targetEmissions" yaml:"targetEmissions"`
	ReductionPercent float64           `json:"reductionPercent" yaml:"-"`
}

// ImpactMetric is a cumulative figure tracked against a goal.
type ImpactMetric struct {
	Title    string  `json:"title" yaml:"title"`
	Current  float64 `json:"current" yaml:"current"`
	Target   float64 `json:"target" yaml:"target"`
	Unit     string  `json:"unit" yaml:"unit"`
	Progress float64 `json:"progress" yaml:"-"`
}

// Milestone is a recent sustainability win.
type Milestone struct {
	Title string `json:"title" yaml:"title"`
	Date  string `json:"date" yaml:"date"`
	Type  string `json:"type" yaml:"type"`
}

// ReductionTarget compares a monthly footprint with where it should be.
type ReductionTarget struct {
	Category  string  `json:"category" yaml:"category"`
	Current   float64 `json:"current" yaml:"current"`
	Target    float64 `json:"target" yaml:"target"`
	Reduction float64 `json:"reduction" yaml:"reduction"`
	Unit      string  `json:"unit" yaml:"unit"`
}

// Derive fills metric progress and the headroom below the emissions target.
// ReductionPercent is negative when emissions exceed the target.
func (i *Impact) Derive() {
	for n := range i.Metrics {
		m := &i.Metrics[n]
		m.Progress = percentOf(m.Current, m.Target)
	}
	if i.TargetEmissions > 0 {
		i.ReductionPercent = (i.TargetEmissions - i.CurrentEmissions) / i.TargetEmissions * 100
	}
}

func (i Impact) clone() Impact {
	i.Metrics = append([]ImpactMetric(nil), i.Metrics...)
	i.Milestones = append([]Milestone(nil), i.Milestones...)
	i.Monthly = append([]EmissionPoint(nil), i.Monthly...)
	i.EmissionSources = append([]Slice(nil), i.EmissionSources...)
	i.ReductionTargets = append([]ReductionTarget(nil), i.ReductionTargets...)
	return i
}
