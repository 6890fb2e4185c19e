// Package bootstrap runs a sporeplan command with a uniform lifecycle.
//
// NewApp applies config defaults, validates the config and initializes the
// global logger. RunTask then runs OnStart hooks, the task itself with a
// context canceled on SIGINT/SIGTERM, and OnStop hooks within a graceful
// timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	app.OnStop(shutdownTracing)
//	return app.RunTask(ctx, run)
package bootstrap
