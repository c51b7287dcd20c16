package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/greenchain/backend/internal/handler/catalog"
	"github.com/greenchain/backend/internal/handler/copilot"
	middlewarePkg "github.com/greenchain/backend/internal/middleware"
	catalogModel "github.com/greenchain/backend/internal/model/catalog"
	copilotService "github.com/greenchain/backend/internal/service/copilot"
	"github.com/greenchain/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(store catalogModel.Store, copilotSvc *copilotService.Service, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(allowedOrigins))

	catalogHandler := catalog.New(store)
	copilotHandler := copilot.New(copilotSvc)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		catalogHandler.RegisterRoutes(api)
		copilotHandler.RegisterRoutes(api)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "route not found")
	})

	return r
}
