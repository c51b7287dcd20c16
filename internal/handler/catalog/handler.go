package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/greenchain/backend/internal/model/catalog"
	"github.com/greenchain/backend/pkg/utils"
)

// Handler serves the static platform pages' data.
type Handler struct {
	store catalog.Store
}

// New creates the catalog handler.
func New(store catalog.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts one read-only route group per platform page.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/marketplace/listings", h.handleListings)
	r.Get("/marketplace/categories", h.handleListingCategories)
	r.Get("/suppliers", h.handleSuppliers)
	r.Get("/suppliers/categories", h.handleSupplierCategories)
	r.Get("/donations/campaigns", h.handleCampaigns)
	r.Get("/donations/campaigns/{campaignID}", h.handleCampaign)
	r.Get("/donations/impact", h.handleDonationImpact)
	r.Get("/dashboard", h.handleDashboard)
	r.Get("/carbon", h.handleCarbon)
	r.Get("/impact", h.handleImpact)
	r.Get("/analytics", h.handleAnalytics)
	r.Get("/training", h.handleTraining)
	r.Get("/reports", h.handleReports)
	r.Get("/profile", h.handleProfile)
	r.Get("/overview", h.handleOverview)
}

func filterFrom(r *http.Request) catalog.Filter {
	q := r.URL.Query()
	return catalog.Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
}

func (h *Handler) handleListings(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Listings(filterFrom(r)))
}

func (h *Handler) handleListingCategories(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.ListingCategories())
}

func (h *Handler) handleSuppliers(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Suppliers(filterFrom(r)))
}

func (h *Handler) handleSupplierCategories(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.SupplierCategories())
}

func (h *Handler) handleCampaigns(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Campaigns())
}

func (h *Handler) handleCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "campaignID"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid campaign id")
		return
	}

	campaign, ok := h.store.Campaign(id)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "campaign not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, campaign)
}

func (h *Handler) handleDonationImpact(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"stats":           h.store.ImpactStats(),
		"donationOptions": h.store.DonationOptions(),
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Dashboard())
}

func (h *Handler) handleCarbon(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Carbon())
}

func (h *Handler) handleImpact(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Impact())
}

func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Analytics())
}

func (h *Handler) handleTraining(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Training())
}

// handleReports accepts ?category=Monthly|Quarterly|Annual|all.
func (h *Handler) handleReports(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Reports(r.URL.Query().Get("category")))
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Profile())
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Overview())
}
