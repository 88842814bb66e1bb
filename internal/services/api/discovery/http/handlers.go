// Package http provides http transport for discovery
package http

import (
	stdhttp "net/http"

	"shopguide/internal/core/schema"
	"shopguide/internal/core/specificity"
	"shopguide/internal/modkit/httpkit"
	perr "shopguide/internal/platform/errors"
	"shopguide/internal/services/api/discovery/domain"
	idom "shopguide/internal/services/interview/domain"
	sdom "shopguide/internal/services/search/domain"
)

// Deps are the ports the handlers call
type Deps struct {
	Conversations idom.ConversationPort
	Search        sdom.ServicePort
	Registry      *schema.Registry
	Scorer        *specificity.Scorer
}

// Register mounts the router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{d: d}
	httpkit.Post(r, "/sessions", h.start)
	httpkit.PostJSON[domain.MessageInput](r, "/sessions/{id}/messages", h.message)
	httpkit.Delete(r, "/sessions/{id}", h.reset)
	httpkit.PostJSON[domain.SearchInput](r, "/search", h.search)
	httpkit.PostJSON[domain.ScoreInput](r, "/score", h.score)
	httpkit.Get(r, "/domains", h.domains)
}

type handlers struct{ d Deps }

// swagger:route POST /discovery/sessions Discovery start
// @Summary Start a discovery session
// @Tags discovery
// @Produce json
// @Success 201 {object} domain.SessionCreated "created"
// @Router /discovery/sessions [post]
func (h *handlers) start(r *stdhttp.Request) (any, error) {
	s, err := h.d.Conversations.Start(r.Context())
	if err != nil {
		return nil, err
	}
	return httpkit.Created(domain.SessionCreated{SessionID: s.ID, MaxQuestions: s.MaxQuestions}), nil
}

// swagger:route POST /discovery/sessions/{id}/messages Discovery message
// @Summary Send a shopper message
// @Description Returns a clarifying question, or the handoff with search results
// @Tags discovery
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param payload body domain.MessageInput true "Message"
// @Success 200 {object} idom.TurnResult "ok"
// @Failure 409 {object} httpkit.Envelope "session halted"
// @Failure 422 {object} httpkit.Envelope "unknown schema"
// @Failure 502 {object} httpkit.Envelope "search failed"
// @Router /discovery/sessions/{id}/messages [post]
func (h *handlers) message(r *stdhttp.Request, in domain.MessageInput) (any, error) {
	id := httpkit.Param(r, "id")
	ctx := httpkit.WithSession(r, id)
	return h.d.Conversations.Process(ctx, id, in.Text, in.ExcludeIDs)
}

// swagger:route DELETE /discovery/sessions/{id} Discovery reset
// @Summary Forget a session
// @Tags discovery
// @Param id path string true "Session id"
// @Success 204 "no content"
// @Router /discovery/sessions/{id} [delete]
func (h *handlers) reset(r *stdhttp.Request) (any, error) {
	if err := h.d.Conversations.Reset(r.Context(), httpkit.Param(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// swagger:route POST /discovery/search Discovery search
// @Summary Search with relaxation
// @Tags discovery
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Filters"
// @Success 200 {object} sdom.Outcome "ok"
// @Failure 502 {object} httpkit.Envelope "search failed"
// @Router /discovery/search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.d.Search.Search(r.Context(), in.Filters, in.Limit, in.ExcludeIDs)
}

// swagger:route POST /discovery/score Discovery score
// @Summary Score query specificity
// @Tags discovery
// @Accept json
// @Produce json
// @Param payload body domain.ScoreInput true "Query"
// @Success 200 {object} specificity.Result "ok"
// @Router /discovery/score [post]
func (h *handlers) score(_ *stdhttp.Request, in domain.ScoreInput) (any, error) {
	if h.d.Scorer == nil {
		return nil, perr.Unavailablef("scorer not configured")
	}
	return h.d.Scorer.Evaluate(in.Query, in.Filters), nil
}

// swagger:route GET /discovery/domains Discovery domains
// @Summary List shopping domains and their slots
// @Tags discovery
// @Produce json
// @Success 200 {object} domain.DomainsView "ok"
// @Router /discovery/domains [get]
func (h *handlers) domains(_ *stdhttp.Request) (any, error) {
	return domain.DomainsView{Domains: h.d.Registry.All()}, nil
}
