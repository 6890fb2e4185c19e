package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/sporeplan/logger"
)

// App runs a finite task with uniform startup and shutdown.
// The type parameter C is the config type, which must satisfy the Config interface.
// Any struct embedding config.ServiceConfig automatically satisfies Config.
//
// Example:
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnStart(func(ctx context.Context) error { ... })
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return plan(ctx, app.Cfg)
//	})
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger

	gracefulTimeout time.Duration
	signals         []os.Signal

	onStart []Hook
	onStop  []Hook
}

// NewApp creates a new application instance from a typed config.
// It applies defaults, validates the config, and initializes the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := cfg.GetServiceConfig()

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		gracefulTimeout: 5 * time.Second,
		signals:         []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.signals != nil {
		app.signals = o.signals
	}

	// Logger: use custom if provided, otherwise init from config.
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(&base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	return app, nil
}

// RunTask runs OnStart hooks, then task, then OnStop hooks.
// The task's context is canceled on SIGINT/SIGTERM. OnStop hooks run even
// when startup or the task fails; the task's error takes precedence.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if len(a.signals) > 0 {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, a.signals...)
		defer signal.Stop(sigCh)

		go func() {
			select {
			case sig := <-sigCh:
				a.Logger.Info("received signal, canceling task", map[string]interface{}{
					"signal": sig.String(),
				})
				cancel()
			case <-taskCtx.Done():
			}
		}()
	}

	a.Logger.Debug("starting", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	var taskErr error
	if err := runHooks(taskCtx, a.onStart); err != nil {
		taskErr = fmt.Errorf("startup: %w", err)
	} else {
		taskErr = task(taskCtx)
	}

	if stopErr := a.stop(); stopErr != nil {
		if taskErr != nil {
			return errors.Join(taskErr, stopErr)
		}
		return stopErr
	}
	return taskErr
}

// stop runs OnStop hooks within the graceful timeout, in reverse order.
func (a *App[C]) stop() error {
	if len(a.onStop) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var errs []error
	for i := len(a.onStop) - 1; i >= 0; i-- {
		if err := a.onStop[i](ctx); err != nil {
			a.Logger.Error("stop hook failed", map[string]interface{}{
				"error": err.Error(),
			})
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
