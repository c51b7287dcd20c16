package catalog

import (
	"strings"
)

// Store exposes the static platform data to HTTP handlers.
type Store interface {
	Listings(f Filter) []Listing
	ListingCategories() []string
	Suppliers(f Filter) []Supplier
	SupplierCategories() []string
	Campaigns() []Campaign
	Campaign(id int) (Campaign, bool)
	ImpactStats() []ImpactStat
	DonationOptions() []int
	Dashboard() Dashboard
	Carbon() Carbon
	Impact() Impact
	Analytics() Analytics
	Training() Training
	Reports(category string) Reports
	Profile() Profile
	Overview() Overview
}

// MemoryStore implements Store over an in-memory copy of Data.
type MemoryStore struct {
	data Data
}

// NewMemoryStore returns a MemoryStore with derived figures filled in.
func NewMemoryStore(data Data) *MemoryStore {
	campaigns := make([]Campaign, len(data.Campaigns))
	for i, c := range data.Campaigns {
		c.Progress = c.FundingProgress()
		campaigns[i] = c
	}
	data.Campaigns = campaigns
	data.Carbon.Totals()
	data.Impact.Derive()

	kpis := make([]KPITarget, len(data.Reports.KPIs))
	for i, k := range data.Reports.KPIs {
		k.Progress = percentOf(k.Current, k.Target)
		kpis[i] = k
	}
	data.Reports.KPIs = kpis

	courses := make([]Course, len(data.Training.Courses))
	for i, c := range data.Training.Courses {
		c.Status = c.LearnerStatus()
		courses[i] = c
	}
	data.Training.Courses = courses

	return &MemoryStore{data: data}
}

// Listings returns listings matching f in catalog order.
func (s *MemoryStore) Listings(f Filter) []Listing {
	out := make([]Listing, 0, len(s.data.Listings))
	for _, l := range s.data.Listings {
		if f.matches(l.Category, l.Title, l.Description) {
			out = append(out, l)
		}
	}
	return out
}

// ListingCategories returns the marketplace category options, "all" first.
func (s *MemoryStore) ListingCategories() []string {
	return append([]string(nil), s.data.ListingCategories...)
}

// Suppliers returns suppliers matching f in catalog order.
func (s *MemoryStore) Suppliers(f Filter) []Supplier {
	out := make([]Supplier, 0, len(s.data.Suppliers))
	for _, sup := range s.data.Suppliers {
		if f.matches(sup.Category, sup.Name, sup.Description) {
			sup.Certifications = append([]string(nil), sup.Certifications...)
			sup.Specialties = append([]string(nil), sup.Specialties...)
			out = append(out, sup)
		}
	}
	return out
}

// SupplierCategories returns the supplier category options, "all" first.
func (s *MemoryStore) SupplierCategories() []string {
	return append([]string(nil), s.data.SupplierCategories...)
}

// Campaigns lists donation campaigns.
func (s *MemoryStore) Campaigns() []Campaign {
	return append([]Campaign(nil), s.data.Campaigns...)
}

// Campaign looks up a campaign by identifier.
func (s *MemoryStore) Campaign(id int) (Campaign, bool) {
	for _, c := range s.data.Campaigns {
		if c.ID == id {
			return c, true
		}
	}
	return Campaign{}, false
}

func (s *MemoryStore) ImpactStats() []ImpactStat {
	return append([]ImpactStat(nil), s.data.ImpactStats...)
}

func (s *MemoryStore) DonationOptions() []int {
	return append([]int(nil), s.data.DonationOptions...)
}

func (s *MemoryStore) Dashboard() Dashboard {
	d := s.data.Dashboard
	return Dashboard{
		KPIs:           append([]KPIPoint(nil), d.KPIs...),
		WasteBreakdown: append([]Slice(nil), d.WasteBreakdown...),
		Alerts:         append([]Alert(nil), d.Alerts...),
	}
}

func (s *MemoryStore) Carbon() Carbon {
	c := s.data.Carbon
	c.Monthly = append([]EmissionPoint(nil), c.Monthly...)
	c.Breakdown = append([]Slice(nil), c.Breakdown...)
	c.Achievements = append([]Achievement(nil), c.Achievements...)
	return c
}

func (s *MemoryStore) Impact() Impact {
	return s.data.Impact.clone()
}

func (s *MemoryStore) Analytics() Analytics {
	return s.data.Analytics.clone()
}

func (s *MemoryStore) Training() Training {
	return s.data.Training.clone()
}

// Reports returns the reports page with the report list narrowed to category.
func (s *MemoryStore) Reports(category string) Reports {
	return s.data.Reports.clone(category)
}

func (s *MemoryStore) Profile() Profile {
	return s.data.Profile.clone()
}

func (s *MemoryStore) Overview() Overview {
	return s.data.Overview.clone()
}

// matches applies the page filters: exact category unless "all", then a
// case-insensitive substring search over the name and description.
func (f Filter) matches(category, name, description string) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, "all") && f.Category != category {
		return false
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), term) ||
		strings.Contains(strings.ToLower(description), term)
}
