package catalog_test

import (
	"math"
	"testing"

	"github.com/greenchain/backend/internal/model/catalog"
)

func newStore(t *testing.T) *catalog.MemoryStore {
	t.Helper()
	return catalog.NewMemoryStore(catalog.Seed())
}

func TestSeedDecodesEmbeddedData(t *testing.T) {
	data := catalog.Seed()

	if len(data.Listings) != 6 {
		t.Fatalf("expected 6 listings, got %d", len(data.Listings))
	}
	if len(data.Suppliers) != 5 {
		t.Fatalf("expected 5 suppliers, got %d", len(data.Suppliers))
	}
	if len(data.Campaigns) != 4 {
		t.Fatalf("expected 4 campaigns, got %d", len(data.Campaigns))
	}
	if data.Listings[0].Sustainability.WaterSave != "1,200L" {
		t.Fatalf("unexpected water save: %q", data.Listings[0].Sustainability.WaterSave)
	}
	if data.Suppliers[0].Sustainability.RenewableEnergy != "100%" {
		t.Fatalf("unexpected renewable energy: %q", data.Suppliers[0].Sustainability.RenewableEnergy)
	}
	if data.ListingCategories[0] != "all" || data.SupplierCategories[0] != "all" {
		t.Fatal("expected category lists to start with all")
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := catalog.Parse([]byte("listings: [")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestListingsFilter(t *testing.T) {
	store := newStore(t)

	if got := store.Listings(catalog.Filter{}); len(got) != 6 {
		t.Fatalf("expected all listings, got %d", len(got))
	}
	if got := store.Listings(catalog.Filter{Category: "all"}); len(got) != 6 {
		t.Fatalf("expected all listings for category all, got %d", len(got))
	}

	metals := store.Listings(catalog.Filter{Category: "Metals"})
	if len(metals) != 1 || metals[0].Title != "Industrial Steel Scrap" {
		t.Fatalf("unexpected metals listings: %+v", metals)
	}

	// "recycling" appears in the descriptions of steel, plastic and electronics listings.
	recycling := store.Listings(catalog.Filter{Search: "RECYCLING"})
	if len(recycling) != 3 {
		t.Fatalf("expected 3 recycling listings, got %d", len(recycling))
	}

	if got := store.Listings(catalog.Filter{Search: "  steel "}); len(got) != 1 {
		t.Fatalf("expected padded search to match one listing, got %d", len(got))
	}

	if got := store.Listings(catalog.Filter{Search: "steel", Category: "Paper"}); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestSuppliersFilter(t *testing.T) {
	store := newStore(t)

	got := store.Suppliers(catalog.Filter{Search: "packaging"})
	if len(got) != 1 || got[0].Name != "Green Packaging Solutions" {
		t.Fatalf("unexpected suppliers: %+v", got)
	}

	if got := store.Suppliers(catalog.Filter{Category: "Energy"}); len(got) != 1 {
		t.Fatalf("expected one energy supplier, got %d", len(got))
	}
}

func TestCampaignProgress(t *testing.T) {
	store := newStore(t)

	c, ok := store.Campaign(2)
	if !ok {
		t.Fatal("expected campaign 2")
	}
	if c.Progress != 75 {
		t.Fatalf("expected 75%% progress, got %v", c.Progress)
	}

	if _, ok := store.Campaign(99); ok {
		t.Fatal("expected missing campaign")
	}

	over := catalog.Campaign{Goal: 100, Raised: 250}
	if over.FundingProgress() != 100 {
		t.Fatalf("expected capped progress, got %v", over.FundingProgress())
	}
	if (catalog.Campaign{Raised: 10}).FundingProgress() != 0 {
		t.Fatal("expected zero progress without goal")
	}
}

func TestCarbonTotals(t *testing.T) {
	store := newStore(t)

	carbon := store.Carbon()
	if carbon.Total != 270 {
		t.Fatalf("expected total 270, got %v", carbon.Total)
	}
	if math.Abs(carbon.ProgressToTarget-37.5) > 1e-9 {
		t.Fatalf("expected 37.5%% progress, got %v", carbon.ProgressToTarget)
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	store := newStore(t)

	listings := store.Listings(catalog.Filter{})
	listings[0].Title = "mutated"
	dash := store.Dashboard()
	dash.Alerts[0].Item = "mutated"

	if store.Listings(catalog.Filter{})[0].Title == "mutated" {
		t.Fatal("listing mutation leaked into store")
	}
	if store.Dashboard().Alerts[0].Item == "mutated" {
		t.Fatal("dashboard mutation leaked into store")
	}
}

func TestNestedSlicesAreCopied(t *testing.T) {
	store := newStore(t)

	suppliers := store.Suppliers(catalog.Filter{})
	want := suppliers[0].Certifications[0]
	suppliers[0].Certifications[0] = "mutated"
	suppliers[0].Specialties[0] = "mutated"
	if got := store.Suppliers(catalog.Filter{})[0]; got.Certifications[0] != want || got.Specialties[0] == "mutated" {
		t.Fatalf("supplier slices shared with store: %+v", got)
	}

	analytics := store.Analytics()
	analytics.SustainabilityReports[0].Metrics[0] = "mutated"
	if store.Analytics().SustainabilityReports[0].Metrics[0] == "mutated" {
		t.Fatal("report metrics shared with store")
	}

	profile := store.Profile()
	profile.Company.Sustainability.Goals[0] = "mutated"
	profile.Notifications["weeklyReports"] = false
	again := store.Profile()
	if again.Company.Sustainability.Goals[0] == "mutated" || !again.Notifications["weeklyReports"] {
		t.Fatal("profile shared with store")
	}
}

func TestImpactDerivedFigures(t *testing.T) {
	impact := newStore(t).Impact()

	if len(impact.Metrics) != 4 || len(impact.ReductionTargets) != 4 {
		t.Fatalf("unexpected impact page: %+v", impact)
	}
	if math.Abs(impact.Metrics[0].Progress-56.94) > 1e-9 {
		t.Fatalf("expected 56.94%% CO2 progress, got %v", impact.Metrics[0].Progress)
	}
	if math.Abs(impact.ReductionPercent-10) > 1e-9 {
		t.Fatalf("expected 10%% below target, got %v", impact.ReductionPercent)
	}

	over := catalog.Impact{CurrentEmissions: 150, TargetEmissions: 120}
	over.Derive()
	if over.ReductionPercent >= 0 {
		t.Fatalf("expected negative headroom above target, got %v", over.ReductionPercent)
	}
}

func TestReportsDerivedAndFiltered(t *testing.T) {
	store := newStore(t)

	reports := store.Reports("")
	if reports.KPIs[1].Progress != 90 {
		t.Fatalf("expected 90%% energy KPI progress, got %v", reports.KPIs[1].Progress)
	}
	if got := store.Reports("all"); len(got.Reports) != 5 {
		t.Fatalf("expected all reports, got %d", len(got.Reports))
	}
	if got := store.Reports("Annual"); len(got.Reports) != 1 || got.Reports[0].Title != "Annual Impact Summary" {
		t.Fatalf("unexpected annual reports: %+v", got.Reports)
	}
	if got := store.Reports("Weekly"); len(got.Reports) != 0 {
		t.Fatalf("expected no weekly reports, got %d", len(got.Reports))
	}
}

func TestCourseStatus(t *testing.T) {
	courses := newStore(t).Training().Courses

	want := []string{"not started", "in progress", "in progress", "not started"}
	for i, c := range courses {
		if c.Status != want[i] {
			t.Fatalf("course %d: got %q want %q", c.ID, c.Status, want[i])
		}
	}
	if (catalog.Course{Progress: 100}).LearnerStatus() != "completed" {
		t.Fatal("expected completed course")
	}
}
