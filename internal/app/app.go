// Package app is the composition root: it opens storage, builds the LLM
// provider and wires every pipeline service.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/careerpath/internal/adaptive"
	"github.com/abhisek/careerpath/internal/career"
	"github.com/abhisek/careerpath/internal/chat"
	"github.com/abhisek/careerpath/internal/config"
	"github.com/abhisek/careerpath/internal/learningplan"
	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/logger"
	"github.com/abhisek/careerpath/internal/resume"
	"github.com/abhisek/careerpath/internal/roadmap"
	"github.com/abhisek/careerpath/internal/skillgap"
	"github.com/abhisek/careerpath/internal/store"
	"github.com/abhisek/careerpath/internal/tracking"
)

// Options configures New.
type Options struct {
	Config *config.Config
	Logger *logger.Logger

	// Provider replaces the provider built from Config.LLM when set.
	Provider llm.Provider
}

// App holds the wired services. Close releases storage connections.
type App struct {
	Store    *store.Store
	Provider llm.Provider
	Log      *logger.Logger

	Resumes   *resume.Service
	SkillGaps *skillgap.Service
	Plans     *learningplan.Service
	Roadmaps  *roadmap.Service
	Adaptive  *adaptive.Engine
	Tracking  *tracking.Service
	Chat      *chat.Service
	Career    *career.Service

	closers []func() error
}

// New opens the configured database (and redis, when an address is set)
// and builds the services on top of it.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	dbCfg, err := cfg.DatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	st, err := store.OpenWith(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a := &App{Store: st, Log: log, closers: []func() error{st.Close}}

	conversations := st.ConversationRepo()
	if cfg.Redis.Addr != "" {
		rdb, err := store.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		conversations = store.NewRedisConversationRepo(rdb)
		log.Info("conversation log backed by redis", "addr", cfg.Redis.Addr)
	}

	provider := opts.Provider
	if provider == nil {
		provider, err = llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("build LLM provider: %w", err)
		}
	}
	a.Provider = provider

	gapCfg := skillgap.DefaultConfig()
	roadmapCfg := roadmap.DefaultConfig()
	careerCfg := career.DefaultConfig()
	if role := cfg.Pipeline.DefaultRole; role != "" {
		gapCfg.DefaultRole = role
		roadmapCfg.DefaultRole = role
		careerCfg.DefaultRole = role
	}
	chatCfg := chat.DefaultConfig()
	chatCfg.Model = cfg.Pipeline.ChatModel
	if cfg.Pipeline.ChatHistoryLimit > 0 {
		chatCfg.HistoryLimit = cfg.Pipeline.ChatHistoryLimit
	}

	a.Resumes = resume.NewService(st.ResumeRepo(), log)
	a.SkillGaps = skillgap.NewService(provider, st.ResumeRepo(), st.SkillProfileRepo(), gapCfg, log)
	a.Plans = learningplan.NewService(provider, st.ResumeRepo(), st.SkillProfileRepo(), st.LearningPathRepo(),
		learningplan.DefaultConfig(), log)
	a.Roadmaps = roadmap.NewService(provider, st.ResumeRepo(), st.SkillProfileRepo(), st.RoadmapRepo(), roadmapCfg, log)
	a.Adaptive = adaptive.NewEngine(st.QuizRepo(), st.ProgressRepo(), st.SkillProfileRepo(), st.LearningPathRepo(),
		a.Plans, log)
	a.Tracking = tracking.NewService(st.QuizRepo(), st.ProgressRepo(), log)
	a.Chat = chat.NewService(provider, conversations, st.LearningPathRepo(), chatCfg, log)
	a.Career = career.NewService(provider, st.ResumeRepo(), st.SkillProfileRepo(), careerCfg, log)

	log.Debug("app wired", "provider", provider.ModelID(), "database", dbCfg.Driver)
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
