package commands

import (
	"go.uber.org/zap"

	"tableflip.dev/ideabook/pkg/app"
	"tableflip.dev/ideabook/pkg/logging"
	"tableflip.dev/ideabook/pkg/notify"
	"tableflip.dev/ideabook/pkg/store"
)

// openService loads the configuration and opens the idea book it names.
func openService() (*app.Service, store.Config, *zap.Logger, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := logging.New(logs.Over(cfg))
	if err != nil {
		return nil, nil, nil, err
	}
	svc, err := app.Open(cfg,
		app.WithNotifier(notify.NewConsole()),
		app.WithLogger(logger.Named("ideabook")),
	)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, nil, err
	}
	return svc, cfg, logger, nil
}
