package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"agrismart/config"
	"agrismart/database"
	"agrismart/pkg/ai"
	"agrismart/pkg/analytics"
	"agrismart/pkg/growth"
	"agrismart/router"

	advisoryCtrlImp "agrismart/pkg/advisory/controllerImp"
	advisorySvcImp "agrismart/pkg/advisory/serviceImp"
	eventRepoImp "agrismart/pkg/analytics/repositoryImp"
	contactCtrlImp "agrismart/pkg/contact/controllerImp"
	contactRepoImp "agrismart/pkg/contact/repositoryImp"
	contactSvcImp "agrismart/pkg/contact/serviceImp"
	dosageCtrlImp "agrismart/pkg/dosage/controllerImp"
	growthCtrlImp "agrismart/pkg/growth/controllerImp"
	healthCtrlImp "agrismart/pkg/health/controllerImp"
	recordCtrlImp "agrismart/pkg/record/controllerImp"
	recordRepoImp "agrismart/pkg/record/repositoryImp"
	soilCtrlImp "agrismart/pkg/soil/controllerImp"
	soilSvcImp "agrismart/pkg/soil/serviceImp"
)

const shutdownGrace = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and static site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.OpenSQLite(cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			e, closeSinks, err := buildServer(cfg, db, log)
			if err != nil {
				return err
			}
			defer closeSinks()
			// cancelling ctx also ends open SSE streams so Shutdown can drain
			e.Server.BaseContext = func(net.Listener) context.Context { return ctx }

			return runServer(ctx, e, ":"+cfg.Port, log)
		},
	}
}

// buildServer wires every dependency into an echo instance. The returned
// func flushes and closes the analytics sinks.
func buildServer(cfg config.AppConfig, db *gorm.DB, log *zap.Logger) (*echo.Echo, func(), error) {
	log.Info("config", zap.Stringer("cfg", cfg))

	// 1) Analytics sinks
	events := eventRepoImp.New(db)
	sinks := analytics.Multi{analytics.NewLogSink(log), events}
	closeSinks := func() {}
	if len(cfg.KafkaBrokers) > 0 {
		k := analytics.NewKafkaSink(cfg.KafkaBrokers, cfg.AnalyticsTopic)
		sinks = append(sinks, k)
		closeSinks = func() {
			if err := k.Close(); err != nil {
				log.Warn("close kafka sink", zap.Error(err))
			}
		}
		log.Info("kafka analytics enabled", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.AnalyticsTopic))
	}

	// 2) Stage catalog
	catalog := growth.DefaultCatalog()
	if cfg.StageConfig != "" {
		c, err := growth.LoadCatalog(cfg.StageConfig)
		if err != nil {
			closeSinks()
			return nil, nil, fmt.Errorf("stage config: %w", err)
		}
		catalog = c
	}

	// 3) LLM (mock fallback)
	var llm ai.ChatClient
	if cfg.HasLLMKey() {
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	} else {
		log.Warn("no LLM credential configured, advisories use the offline mock")
		llm = ai.NewMock()
	}

	// 4) Repos/Services/Controllers
	records := recordRepoImp.New(db)
	ctrls := router.Controllers{
		Soil:     soilCtrlImp.New(soilSvcImp.New(records, sinks, log, cfg.AnalyzeDelay), log),
		Dosage:   dosageCtrlImp.New(sinks, log),
		Growth:   growthCtrlImp.New(catalog, cfg.WeatherTick, log),
		Advisory: advisoryCtrlImp.New(advisorySvcImp.New(llm, records, sinks, log), log, cfg.Production()),
		Records:  recordCtrlImp.New(records),
		Contact:  contactCtrlImp.New(contactSvcImp.New(contactRepoImp.New(db), sinks, log), log),
		Health:   healthCtrlImp.NewHealthCtrl(db, events, llm.Live()),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return router.New(e, ctrls, cfg.StaticDir, log), closeSinks, nil
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, e *echo.Echo, addr string, log *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		log.Info("shutting down")
		return e.Shutdown(sctx)
	})
	return g.Wait()
}
