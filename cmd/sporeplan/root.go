package main

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/sporeplan/bootstrap"
	"github.com/kbukum/sporeplan/config"
	"github.com/kbukum/sporeplan/logger"
	"github.com/kbukum/sporeplan/observability"
	"github.com/kbukum/sporeplan/planner"
	"github.com/kbukum/sporeplan/recipe"
	"github.com/kbukum/sporeplan/schedule"
	"github.com/kbukum/sporeplan/version"
)

// cli holds the global flags and test seams shared by every command.
type cli struct {
	configFile string
	recipeDirs []string
	logLevel   string

	now     func() time.Time
	appOpts []bootstrap.Option
}

func newRootCmd(appOpts ...bootstrap.Option) *cobra.Command {
	c := &cli{now: time.Now, appOpts: appOpts}

	root := &cobra.Command{
		Use:   "sporeplan",
		Short: "Plan mushroom cultivation batches from recipes",
		Long: `sporeplan turns a cultivation recipe (steps with durations and dependencies)
into a dated task list: it orders the steps so prerequisites come first and
projects a due time for each one from a start date.`,
		Version:       version.Get().Long(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default: ./sporeplan.yml or the user config dir)")
	flags.StringSliceVar(&c.recipeDirs, "recipes-dir", nil, "directory to search for recipes, before configured dirs (repeatable)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		c.newScheduleCmd(),
		c.newOrderCmd(),
		c.newDurationCmd(),
		c.newRecipesCmd(),
	)
	return root
}

// env is what a command body needs once config and logging are set up.
type env struct {
	cfg     *AppConfig
	loader  recipe.Loader
	log     *logger.Logger
	metrics *observability.Metrics
	out     io.Writer
	now     func() time.Time
}

// run loads config, starts the bootstrap lifecycle and runs task inside it.
func (c *cli) run(cmd *cobra.Command, task func(ctx context.Context, e *env) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	app, err := bootstrap.NewApp(cfg, c.appOpts...)
	if err != nil {
		return err
	}

	var shutdown observability.ShutdownFunc
	app.OnStart(func(ctx context.Context) error {
		var err error
		shutdown, err = observability.Setup(ctx, &cfg.Tracing, &cfg.Metrics)
		return err
	})
	app.OnStop(func(ctx context.Context) error {
		if shutdown == nil {
			return nil
		}
		return shutdown(ctx)
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.RunTask(ctx, func(ctx context.Context) error {
		metrics, err := observability.NewMetrics(observability.Meter(serviceName))
		if err != nil {
			return err
		}
		return task(ctx, &env{
			cfg:     cfg,
			loader:  c.loader(cfg),
			log:     app.Logger,
			metrics: metrics,
			out:     cmd.OutOrStdout(),
			now:     c.now,
		})
	})
}

func (c *cli) loadConfig() (*AppConfig, error) {
	var cfg AppConfig
	opts := []config.LoaderOption{
		config.WithEnvPrefix("SPOREPLAN"),
		config.WithDefaults(configDefaults()),
	}
	if c.configFile != "" {
		opts = append(opts, config.WithConfigFile(c.configFile))
	}
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}

	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	if len(c.recipeDirs) > 0 {
		cfg.Recipes.Dirs = append(append([]string{}, c.recipeDirs...), cfg.Recipes.Dirs...)
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().String()
	}
	return &cfg, nil
}

// loader searches the configured directories in order, then the builtin
// recipes when enabled.
func (c *cli) loader(cfg *AppConfig) recipe.Loader {
	sources := make([]fs.FS, 0, len(cfg.Recipes.Dirs)+1)
	for _, dir := range cfg.Recipes.Dirs {
		sources = append(sources, os.DirFS(dir))
	}
	if cfg.Recipes.Builtin {
		sources = append(sources, recipe.Builtin())
	}
	return recipe.NewLoader(sources...)
}

// scheduler builds the decorated scheduler for a policy name. An empty name
// uses the configured policy.
func (e *env) scheduler(policyName string) (planner.Scheduler, error) {
	if policyName == "" {
		policyName = e.cfg.Schedule.Policy
	}
	policy, err := schedule.PolicyByName(policyName)
	if err != nil {
		return nil, err
	}
	s := planner.FromPolicy(policy)
	s = planner.WithTracing(s)
	s = planner.WithMetrics(s, e.metrics)
	return planner.WithLogging(s, e.log.WithComponent("scheduler")), nil
}

// resolve loads name from the loader, or from disk when it looks like a
// file path, and flattens its includes.
func (e *env) resolve(name string) (*recipe.Recipe, error) {
	r, err := e.load(name)
	if err != nil {
		return nil, err
	}
	return recipe.Resolve(r, e.loader)
}

func (e *env) load(name string) (*recipe.Recipe, error) {
	if isRecipeFile(name) {
		return recipe.LoadFile(name)
	}
	return e.loader.Load(name)
}

func isRecipeFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return strings.ContainsRune(name, filepath.Separator)
}
