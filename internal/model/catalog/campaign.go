package catalog

// Campaign is a donation drive shown on the donations page.
type Campaign struct {
	ID          int     `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Goal        float64 `json:"goal" yaml:"goal"`
	Raised      float64 `json:"raised" yaml:"raised"`
	Donors      int     `json:"donors" yaml:"donors"`
	DaysLeft    int     `json:"daysLeft" yaml:"daysLeft"`
	Category    string  `json:"category" yaml:"category"`
	Impact      string  `json:"impact" yaml:"impact"`
	Progress    float64 `json:"progress" yaml:"-"`
}

// FundingProgress returns raised/goal as a percentage in [0, 100].
func (c Campaign) FundingProgress() float64 {
	return percentOf(c.Raised, c.Goal)
}

// ImpactStat is a headline counter such as trees planted.
type ImpactStat struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return clampPercent(part / whole * 100)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
