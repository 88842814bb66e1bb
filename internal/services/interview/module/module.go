// Package module implements the interview service module
package module

import (
	"shopguide/internal/adapters/llm"
	"shopguide/internal/core/schema"
	"shopguide/internal/core/specificity"
	"shopguide/internal/modkit"
	"shopguide/internal/modkit/httpkit"
	"shopguide/internal/platform/logger"
	"shopguide/internal/services/interview/domain"
	"shopguide/internal/services/interview/repo"
	"shopguide/internal/services/interview/service"
	sdomain "shopguide/internal/services/search/domain"
)

// Ports exposed by the interview module
type Ports struct {
	Conversations domain.ConversationPort
	Engine        domain.EnginePort
	Registry      *schema.Registry
	Scorer        *specificity.Scorer
}

// Module implements the interview service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the interview module over the search port
// sessions live in redis when deps.Redis is set, else in process
func New(deps modkit.Deps, search sdomain.ServicePort) *Module {
	opts := FromConfig(deps.Cfg)
	log := logger.Named("interview")

	reg := loadRegistry(opts.SchemaPath)

	var (
		cls domain.Classifier
		ext domain.Extractor
		gen domain.Generator
	)
	if deps.Chat != nil {
		cls, ext, gen = llm.NewClassifier(deps.Chat), llm.NewExtractor(deps.Chat), llm.NewGenerator(deps.Chat)
		log.Info().Msg("interview capabilities use the chat model")
	} else {
		cls, ext, gen = llm.Keyword{}, llm.NewKeywordExtractor(reg), llm.Template{}
		log.Warn().Msg("no chat model configured; using keyword capabilities")
	}

	var store domain.SessionStore
	if deps.Redis != nil {
		store = repo.NewRedis(deps.Redis)
	} else {
		store = repo.NewMemory(opts.SessionTTL, opts.SessionTTL/2)
	}

	scorer := specificity.New(opts.Policy)
	eng := service.NewEngine(reg, cls, ext, gen, opts.Engine,
		service.WithScorer(scorer), service.WithEngineLogger(log))
	conv := service.NewConversations(eng, reg, store, search, service.ConversationConfig{
		MaxQuestions: opts.Engine.MaxQuestions,
		SessionTTL:   opts.SessionTTL,
	})

	return &Module{deps: deps, ports: Ports{Conversations: conv, Engine: eng, Registry: reg, Scorer: scorer}}
}

func loadRegistry(path string) *schema.Registry {
	log := logger.Named("interview")
	if path == "" {
		return schema.MustDefault()
	}
	reg, err := schema.Load(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("schema catalog load failed")
	}
	log.Info().Strs("domains", reg.Domains()).Str("path", path).Msg("schema catalog loaded")
	return reg
}

func (m *Module) Name() string { return "interview" }
func (m *Module) Ports() any   { return m.ports }

// MountRoutes is a no-op; conversations are served by the discovery API
func (m *Module) MountRoutes(httpkit.Router) {}
