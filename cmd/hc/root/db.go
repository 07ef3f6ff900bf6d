package root

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"habitchart/internal/config"
	"habitchart/internal/engine"
	"habitchart/internal/logging"
	"habitchart/internal/notion"
	"habitchart/internal/storage"
)

// env is everything a command needs once flags are parsed.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	svc    *engine.Service
}

// openService loads the config, opens the snapshot and wires the service.
// When needSource is false a missing Notion secret is tolerated and the
// service can only read the stored snapshot.
func openService(ctx context.Context, needSource bool) (*env, func(), error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	logger, err := logging.New(level, flags.dev)
	if err != nil {
		return nil, nil, err
	}

	source, err := cfg.Source(notion.WithLogger(logger.Named("notion")))
	switch {
	case err == nil:
	case errors.Is(err, config.ErrMissingSecret) && !needSource:
		logger.Debug("no notion secret; snapshot only")
		source = nil
	default:
		_ = logger.Sync()
		return nil, nil, err
	}

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	logger.Debug("snapshot opened", zap.String("path", cfg.DBPath))

	cal := cfg.Calendar()
	svc := engine.NewService(
		db,
		source,
		engine.NewNormalizer(cal, cfg.Fields),
		engine.NewScorer(cal, cfg.Categories),
		logger,
	)
	cleanup := func() {
		_ = db.Close()
		_ = logger.Sync()
	}
	return &env{cfg: cfg, logger: logger, svc: svc}, cleanup, nil
}
