package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopguide/internal/core/schema"
	perr "shopguide/internal/platform/errors"
	"shopguide/internal/platform/logger"
	"shopguide/internal/services/interview/domain"
	sdomain "shopguide/internal/services/search/domain"
)

// ConversationConfig holds session lifecycle settings
type ConversationConfig struct {
	MaxQuestions int
	SessionTTL   time.Duration
	SearchLimit  int
}

// Conversations loads a session, runs one engine turn, searches on handoff and
// saves the session back
type Conversations struct {
	engine   domain.EnginePort
	registry *schema.Registry
	store    domain.SessionStore
	search   sdomain.ServicePort
	cfg      ConversationConfig
	newID    func() string
	now      func() time.Time
}

var _ domain.ConversationPort = (*Conversations)(nil)

// NewConversations wires the conversation flow
func NewConversations(engine domain.EnginePort, reg *schema.Registry, store domain.SessionStore, search sdomain.ServicePort, cfg ConversationConfig) *Conversations {
	if engine == nil || reg == nil || store == nil || search == nil {
		panic("interview: conversations require an engine, registry, session store and search port")
	}
	return &Conversations{
		engine:   engine,
		registry: reg,
		store:    store,
		search:   search,
		cfg:      cfg,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Start creates and saves an empty session
func (c *Conversations) Start(ctx context.Context) (*domain.Session, error) {
	s := domain.NewSession(c.newID(), c.cfg.MaxQuestions, c.now().UTC())
	if err := c.store.Save(ctx, s, c.cfg.SessionTTL); err != nil {
		return nil, err
	}
	logger.C(logger.WithSession(ctx, s.ID)).Debug().Msg("session started")
	return s, nil
}

// Process runs one user message; an unknown session id starts a new session
// under that id
func (c *Conversations) Process(ctx context.Context, sessionID, text string, excludeIDs []string) (domain.TurnResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.TurnResult{}, perr.WithField(perr.InvalidArgf("session id required"), "session_id")
	}
	ctx = logger.WithSession(ctx, sessionID)

	s, err := c.store.Load(ctx, sessionID)
	switch {
	case perr.IsCode(err, perr.ErrorCodeNotFound):
		s = domain.NewSession(sessionID, c.cfg.MaxQuestions, c.now().UTC())
	case err != nil:
		return domain.TurnResult{}, err
	}

	reply, err := c.engine.ProcessMessage(ctx, s, text)
	if err != nil {
		if s.Phase == domain.PhaseHalted {
			c.save(ctx, s)
		}
		return domain.TurnResult{}, err
	}

	res := domain.TurnResult{SessionID: s.ID, Reply: reply}
	if reply.Kind == domain.ReplyHandoff {
		sch, _ := c.registry.Lookup(s.Domain)
		f := ToFilters(sch, *reply.Handoff, s.UserText())
		out, err := c.search.Search(ctx, f, c.cfg.SearchLimit, excludeIDs)
		if err != nil {
			c.save(ctx, s)
			return domain.TurnResult{}, err
		}
		s.Phase = domain.PhaseComplete
		res.Filters = &f
		res.Results = &out
	}

	s.UpdatedAt = c.now().UTC()
	if err := c.store.Save(ctx, s, c.cfg.SessionTTL); err != nil {
		return domain.TurnResult{}, err
	}
	res.Phase = s.Phase
	return res, nil
}

// Reset forgets a session
func (c *Conversations) Reset(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return perr.WithField(perr.InvalidArgf("session id required"), "session_id")
	}
	return c.store.Delete(ctx, sessionID)
}

// save persists s on an error path; the turn error wins over a save error
func (c *Conversations) save(ctx context.Context, s *domain.Session) {
	s.UpdatedAt = c.now().UTC()
	if err := c.store.Save(ctx, s, c.cfg.SessionTTL); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("session save failed")
	}
}
