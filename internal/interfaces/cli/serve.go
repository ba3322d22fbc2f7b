package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	appanalysis "github.com/turtacn/ChemPatent-Insight/internal/application/analysis"
	"github.com/turtacn/ChemPatent-Insight/internal/config"
	domain "github.com/turtacn/ChemPatent-Insight/internal/domain/analysis"
	"github.com/turtacn/ChemPatent-Insight/internal/domain/task"
	"github.com/turtacn/ChemPatent-Insight/internal/infrastructure/monitoring/logging"
	promm "github.com/turtacn/ChemPatent-Insight/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemPatent-Insight/internal/infrastructure/pdf"
	httpserver "github.com/turtacn/ChemPatent-Insight/internal/interfaces/http"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewLogger(logging.LogConfig{
				Level:            cfg.Log.Level,
				Format:           cfg.Log.Format,
				OutputPaths:      cfg.Log.OutputPaths,
				ErrorOutputPaths: cfg.Log.ErrorOutputPaths,
			})
			if err != nil {
				return err
			}
			logging.SetDefault(logger)

			var metrics *promm.Metrics
			if cfg.Metrics.Enabled {
				metrics = promm.New()
			}

			svc := buildService(cfg, metrics, logger)
			defer svc.Close()

			router := httpserver.NewRouter(cfg, svc, metrics, logger)
			server := httpserver.NewServer(cfg.Server, router, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx)
		},
	}
}

// buildService assembles the pipeline from configuration.
func buildService(cfg *config.Config, metrics *promm.Metrics, logger logging.Logger) *appanalysis.Service {
	lib := domain.DefaultPatternLibrary()
	extractor := pdf.NewExtractor(pdf.Config{
		MaxFileSize:    cfg.Extraction.MaxFileSize,
		MinImageWidth:  cfg.Extraction.MinImageWidth,
		MinImageHeight: cfg.Extraction.MinImageHeight,
	}, logger)

	return appanalysis.NewService(
		appanalysis.Config{
			Concurrency: cfg.Worker.Concurrency,
			QueueDepth:  cfg.Worker.QueueDepth,
		},
		task.NewStore(),
		extractor,
		domain.NewFormulaRecognizer(lib, cfg.Extraction.MaxFormulas, logger),
		domain.NewPlaceholderRecognizer(lib, logger),
		domain.NewElementParser(lib, cfg.Extraction.MaxElementLength, logger),
		metrics,
		logger,
	)
}
