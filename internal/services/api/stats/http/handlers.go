// Package http provides http transport for search telemetry stats
package http

import (
	stdhttp "net/http"

	"shopguide/internal/modkit/httpkit"
	"shopguide/internal/services/api/stats/domain"
)

// Register mounts stats endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// searches by relaxation step
	httpkit.PostJSON[domain.StepsInput](r, "/steps", h.steps)
	// searches by category
	httpkit.PostJSON[domain.CategoriesInput](r, "/categories", h.categories)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /stats/steps Stats statsSteps
// @Summary Searches by relaxation step
// @Tags Stats
// @Accept json
// @Produce json
// @Param payload body domain.StepsInput true "Query"
// @Success 200 {array} domain.StepRow "ok"
// @Failure 503 {object} httpkit.Envelope "telemetry not configured"
// @Router /stats/steps [post]
func (h *handlers) steps(r *stdhttp.Request, in domain.StepsInput) (any, error) {
	return h.svc.Steps(r.Context(), in)
}

// swagger:route POST /stats/categories Stats statsCategories
// @Summary Searches by category
// @Tags Stats
// @Accept json
// @Produce json
// @Param payload body domain.CategoriesInput true "Query"
// @Success 200 {array} domain.CategoryRow "ok"
// @Failure 503 {object} httpkit.Envelope "telemetry not configured"
// @Router /stats/categories [post]
func (h *handlers) categories(r *stdhttp.Request, in domain.CategoriesInput) (any, error) {
	return h.svc.Categories(r.Context(), in)
}
