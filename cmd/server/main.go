package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/careconnect/api/handler"
	"github.com/fastygo/careconnect/api/transport"
	"github.com/fastygo/careconnect/internal/config"
	"github.com/fastygo/careconnect/internal/infrastructure/backend"
	"github.com/fastygo/careconnect/internal/infrastructure/monitor"
	"github.com/fastygo/careconnect/internal/infrastructure/remote"
	"github.com/fastygo/careconnect/internal/middleware"
	"github.com/fastygo/careconnect/internal/router"
	"github.com/fastygo/careconnect/internal/services"
	"github.com/fastygo/careconnect/internal/services/lifecycle"
	"github.com/fastygo/careconnect/internal/store"
	"github.com/fastygo/careconnect/pkg/httpcontext"
	"github.com/fastygo/careconnect/pkg/logger"
	"github.com/fastygo/careconnect/usecase"
	activityUC "github.com/fastygo/careconnect/usecase/activity"
	childUC "github.com/fastygo/careconnect/usecase/child"
	"github.com/fastygo/careconnect/usecase/intents"
	"github.com/fastygo/careconnect/usecase/suggestion"
	taskUC "github.com/fastygo/careconnect/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Output:   cfg.Logger.Output,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger = zapLogger.With(zap.String("app", cfg.AppName), zap.String("env", cfg.Environment))

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	stopListening := manager.Listen(cancel)
	defer stopListening()

	slotBackend, err := backend.Open(appCtx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("slot storage unavailable", zap.Error(err))
	}
	manager.Register("slot_storage", func(ctx context.Context) error {
		return slotBackend.Close()
	})

	suggestionClient := remote.NewSuggestionClient(cfg.Suggestions, cfg.Breaker, zapLogger)
	weatherClient := remote.NewWeatherClient(cfg.Weather, cfg.Breaker, zapLogger)

	mon := monitor.New(cfg.Storage.Driver, slotBackend, map[string]monitor.BreakerReporter{
		"suggestions": suggestionClient,
		"weather":     weatherClient,
	}, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	policy := store.ParseHydrationPolicy(cfg.Storage.HydrationPolicy)

	activityStore := store.NewRecordStore("activities", activityUC.DefaultActivities(), zapLogger)
	activitySync := services.NewSynchronizer(activityStore, slotBackend, services.ActivityRecords, services.SyncConfig{
		Key:         cfg.Storage.ActivitiesKey,
		Policy:      policy,
		SaveTimeout: cfg.Storage.SaveTimeout,
	}, zapLogger)

	taskStore := store.NewTaskStore(zapLogger)
	taskSync := services.NewSynchronizer(taskStore, slotBackend, services.TaskRecords, services.SyncConfig{
		Key:         cfg.Storage.TasksKey,
		Policy:      policy,
		SaveTimeout: cfg.Storage.SaveTimeout,
	}, zapLogger)

	weather := services.NewWeatherRefresher(weatherClient, zapLogger, services.RefresherConfig{
		Interval: cfg.Weather.RefreshInterval,
		Timeout:  cfg.Weather.Timeout,
	})
	weather.Start()
	manager.Register("weather_refresher", func(ctx context.Context) error {
		weather.Stop(ctx)
		return nil
	})

	fetcher := suggestion.NewFetcher(taskStore, suggestionClient, cfg.Suggestions.Limit, zapLogger)

	activityUseCase := activityUC.New(activityStore, activitySync, weather, zapLogger)
	taskUseCase := taskUC.New(taskStore, taskSync, fetcher, zapLogger)
	childUseCase, err := childUC.Load(cfg.ChildProfile.Path, zapLogger)
	if err != nil {
		zapLogger.Fatal("child profile invalid", zap.Error(err))
	}
	manager.Register("views", func(ctx context.Context) error {
		activityUseCase.Unmount()
		taskUseCase.Unmount()
		return nil
	})

	dispatcher := usecase.NewDispatcher()
	intents.Register(dispatcher, activityUseCase, taskUseCase, childUseCase)
	zapLogger.Debug("intents registered", zap.Strings("commands", dispatcher.Commands()))

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	render := transport.Renderer{Location: time.Local}

	handlers := router.Handlers{
		Activity: apiHandler.NewActivityHandler(activityUseCase, render, ctxAdapter, zapLogger),
		Task:     apiHandler.NewTaskHandler(taskUseCase, render, ctxAdapter, zapLogger),
		Child:    apiHandler.NewChildHandler(childUseCase, ctxAdapter, zapLogger),
		Intent:   apiHandler.NewIntentHandler(dispatcher, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	r := router.New(handlers, router.Options{EnableMetrics: cfg.HTTP.EnableMetrics})

	server := &fasthttp.Server{
		Handler:       middleware.Chain(r.Handler, middleware.RequestLog(zapLogger), middleware.Recover(zapLogger)),
		ReadTimeout:   cfg.HTTP.ReadTimeout,
		WriteTimeout:  cfg.HTTP.WriteTimeout,
		IdleTimeout:   cfg.HTTP.IdleTimeout,
		MaxConnsPerIP: cfg.HTTP.MaxConn,
		Name:          cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("storage", cfg.Storage.Driver),
			zap.Strings("slots", cfg.SlotKeys()),
		)
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
