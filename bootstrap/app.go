package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/lazykit/config"
	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/observability"
	"github.com/kbukum/lazykit/version"
)

// App runs a finite lazykit task with configured logging and telemetry.
//
// Example:
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	return app.RunTask(ctx, func(ctx context.Context) error {
//	    return run(ctx, app)
//	})
type App struct {
	Name    string
	Version string
	Cfg     *config.RuntimeConfig
	Logger  *logger.Logger
	Metrics *observability.Metrics
	Summary *Summary

	reader          sdkmetric.Reader
	meterProvider   *sdkmetric.MeterProvider
	tracerProvider  *sdktrace.TracerProvider
	gracefulTimeout time.Duration

	onStart []Hook
	onStop  []Hook
}

// NewApp applies defaults to cfg, validates it and sets up the logger. When
// telemetry is enabled it also installs meter and tracer providers; otherwise
// Metrics records to a no-op meter.
func NewApp(cfg *config.RuntimeConfig, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	o := resolveOptions(opts)
	app := &App{
		Name:            cfg.Name,
		Version:         version.Get().Version,
		Cfg:             cfg,
		gracefulTimeout: 5 * time.Second,
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(cfg.Logging)
		app.Logger = logger.New(&cfg.Logging, cfg.Name)
	}
	logger.SetGlobalLogger(app.Logger)
	logger.RegisterComponents(app.Logger, "scenarios", "combinator", "pipeline")

	if err := app.setupTelemetry(o); err != nil {
		return nil, err
	}

	app.Summary = NewSummary(app.Name, app.Version)
	return app, nil
}

func (a *App) setupTelemetry(o *appOptions) error {
	if !a.Cfg.Telemetry.Enabled {
		metrics, err := observability.NewMetrics(noop.NewMeterProvider().Meter(a.Name))
		if err != nil {
			return fmt.Errorf("creating metrics: %w", err)
		}
		a.Metrics = metrics
		return nil
	}

	a.reader = o.reader
	if a.reader == nil {
		a.reader = sdkmetric.NewManualReader()
	}
	mp, err := observability.NewMeterProvider(observability.MeterConfig{
		ServiceName:    a.Cfg.Telemetry.ServiceName,
		ServiceVersion: a.Version,
		Environment:    a.Cfg.Environment,
	}, a.reader)
	if err != nil {
		return fmt.Errorf("creating meter provider: %w", err)
	}
	a.meterProvider = mp

	metrics, err := observability.NewMetrics(mp.Meter(a.Name))
	if err != nil {
		return fmt.Errorf("creating metrics: %w", err)
	}
	a.Metrics = metrics

	exporter := o.exporter
	if exporter == nil {
		exporter = observability.NewLogExporter(a.Logger)
	}
	tp, err := observability.NewTracerProvider(observability.TracerConfig{
		ServiceName:    a.Cfg.Telemetry.ServiceName,
		ServiceVersion: a.Version,
		Environment:    a.Cfg.Environment,
		SampleRate:     a.Cfg.Telemetry.SampleRate,
	}, exporter)
	if err != nil {
		return fmt.Errorf("creating tracer provider: %w", err)
	}
	a.tracerProvider = tp
	return nil
}

// MetricReader returns the reader collecting the app's metrics, or nil when
// telemetry is disabled.
func (a *App) MetricReader() sdkmetric.Reader { return a.reader }

// RunTask runs OnStart hooks, then task, then OnStop hooks and shuts the
// telemetry providers down. SIGINT and SIGTERM cancel the task's context.
// The task's error takes precedence over shutdown errors.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	start := time.Now()
	a.Logger.Info("starting", logger.Fields("name", a.Name, "version", a.Version))

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	a.Summary.SetStartupDuration(time.Since(start))

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("received signal, canceling task", logger.Fields("signal", sig.String()))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskStart := time.Now()
	taskErr := task(taskCtx)
	a.Summary.SetTaskDuration(time.Since(taskStart))
	if taskErr != nil {
		a.Logger.Error("task failed", logger.ErrorFields("task", taskErr))
	}

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

// stop runs OnStop hooks, displays the summary and shuts telemetry down.
func (a *App) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var errs []error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("onStop hook error", logger.ErrorFields("stop", err))
		errs = append(errs, err)
	}

	a.Summary.Display(ctx, a.reader, a.Logger)

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if a.meterProvider != nil {
		if err := a.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}

	a.Logger.Info("shutdown complete")
	return errors.Join(errs...)
}
