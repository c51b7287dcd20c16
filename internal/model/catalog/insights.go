package catalog

// Analytics backs the analytics and reports overview.
type Analytics struct {
	Monthly               []SustainabilityPoint `json:"monthly" yaml:"monthly"`
	WasteByCategory       []Slice               `json:"wasteByCategory" yaml:"wasteByCategory"`
	SupplierPerformance   []SupplierScore       `json:"supplierPerformance" yaml:"supplierPerformance"`
	SustainabilityReports []AnalyticsReport     `json:"sustainabilityReports" yaml:"sustainabilityReports"`
	OperationalReports    []AnalyticsReport     `json:"operationalReports" yaml:"operationalReports"`
}

// SustainabilityPoint is one month of savings figures.
type SustainabilityPoint struct {
	Month          string  `json:"month" yaml:"month"`
	WasteReduction float64 `json:"wasteReduction" yaml:"wasteReduction"`
	CarbonSaved    float64 `json:"carbonSaved" yaml:"carbonSaved"`
	EnergySaved    float64 `json:"energySaved" yaml:"energySaved"`
	Cost           float64 `json:"cost" yaml:"cost"`
}

// SupplierScore rates a supplier on a 0-100 scale per dimension.
type SupplierScore struct {
	Name           string  `json:"name" yaml:"name"`
	Rating         float64 `json:"rating" yaml:"rating"`
	Sustainability float64 `json:"sustainability" yaml:"sustainability"`
	Cost           float64 `json:"cost" yaml:"cost"`
	Delivery       float64 `json:"delivery" yaml:"delivery"`
}

// AnalyticsReport is a generated document listed on the analytics tabs.
type AnalyticsReport struct {
	ID            int      `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Type          string   `json:"type" yaml:"type"`
	GeneratedDate string   `json:"generatedDate" yaml:"generatedDate"`
	Period        string   `json:"period" yaml:"period"`
	Status        string   `json:"status" yaml:"status"`
	Format        string   `json:"format" yaml:"format"`
	Size          string   `json:"size" yaml:"size"`
	Metrics       []string `json:"metrics" yaml:"metrics"`
	Description   string   `json:"description" yaml:"description"`
}

// Reports backs the reports page.
type Reports struct {
	Trend             []ReportTrendPoint `json:"trend" yaml:"trend"`
	ImpactMetrics     []ReportMetric     `json:"impactMetrics" yaml:"impactMetrics"`
	CategoryBreakdown []Slice            `json:"categoryBreakdown" yaml:"categoryBreakdown"`
	Reports           []Report           `json:"reports" yaml:"reports"`
	KPIs              []KPITarget        `json:"kpis" yaml:"kpis"`
}

// ReportTrendPoint is one month of the reports trend chart.
type ReportTrendPoint struct {
	Month          string  `json:"month" yaml:"month"`
	WasteReduction float64 `json:"wasteReduction" yaml:"wasteReduction"`
	EnergySaved    float64 `json:"energySaved" yaml:"energySaved"`
	CarbonOffset   float64 `json:"carbonOffset" yaml:"carbonOffset"`
}

type ReportMetric struct {
	Name     string  `json:"name" yaml:"name"`
	Value    float64 `json:"value" yaml:"value"`
	Unit     string  `json:"unit" yaml:"unit"`
	Change   string  `json:"change" yaml:"change"`
	Positive bool    `json:"positive" yaml:"positive"`
}

// Report is a downloadable report. Category drives the period filter.
type Report struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type" yaml:"type"`
	Date        string `json:"date" yaml:"date"`
	Size        string `json:"size" yaml:"size"`
	Status      string `json:"status" yaml:"status"`
	Category    string `json:"category" yaml:"category"`
}

// KPITarget is a percentage goal with derived progress.
type KPITarget struct {
	Label    string  `json:"label" yaml:"label"`
	Current  float64 `json:"current" yaml:"current"`
	Target   float64 `json:"target" yaml:"target"`
	Unit     string  `json:"unit" yaml:"unit"`
	Progress float64 `json:"progress" yaml:"-"`
}

func (a Analytics) clone() Analytics {
	a.Monthly = append([]SustainabilityPoint(nil), a.Monthly...)
	a.WasteByCategory = append([]Slice(nil), a.WasteByCategory...)
	a.SupplierPerformance = append([]SupplierScore(nil), a.SupplierPerformance...)
	a.SustainabilityReports = cloneAnalyticsReports(a.SustainabilityReports)
	a.OperationalReports = cloneAnalyticsReports(a.OperationalReports)
	return a
}

func cloneAnalyticsReports(reports []AnalyticsReport) []AnalyticsReport {
	out := make([]AnalyticsReport, len(reports))
	for i, r := range reports {
		r.Metrics = append([]string(nil), r.Metrics...)
		out[i] = r
	}
	return out
}

// clone copies r keeping only reports in category; "" or "all" keeps everything.
func (r Reports) clone(category string) Reports {
	r.Trend = append([]ReportTrendPoint(nil), r.Trend...)
	r.ImpactMetrics = append([]ReportMetric(nil), r.ImpactMetrics...)
	r.CategoryBreakdown = append([]Slice(nil), r.CategoryBreakdown...)
	r.KPIs = append([]KPITarget(nil), r.KPIs...)

	filter := Filter{Category: category}
	reports := make([]Report, 0, len(r.Reports))
	for _, rep := range r.Reports {
		if filter.matches(rep.Category, rep.Title, rep.Description) {
			reports = append(reports, rep)
		}
	}
	r.Reports = reports
	return r
}
