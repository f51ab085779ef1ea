package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/artpar/ttdeploy/internal/core/deployment"
	"github.com/artpar/ttdeploy/internal/core/domain"
	coreprovider "github.com/artpar/ttdeploy/internal/core/provider"
	"github.com/artpar/ttdeploy/internal/engine"
	"github.com/artpar/ttdeploy/internal/shell/provider"
)

// =============================================================================
// Deployment Flags
// =============================================================================

// deployFlags are the inputs shared by deploy and validate. Flags that are
// not given fall back to the configuration.
type deployFlags struct {
	subscription    string
	resourceGroup   string
	location        string
	appName         string
	dbType          string
	dbPassword      string
	dbName          string
	trackerPassword string
	ttTag           string
	dryRun          bool
	authMode        string
	output          string
	backend         string

	ttCPU       float64
	ttMemory    float64
	dbCPU       float64
	dbMemory    float64
	redisCPU    float64
	redisMemory float64
}

func (f *deployFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.subscription, "subscription", "", "Azure subscription ID (env TTDEPLOY_SUBSCRIPTION)")
	fs.StringVar(&f.resourceGroup, "resource-group", "", "resource group name (env TTDEPLOY_RESOURCE_GROUP)")
	fs.StringVar(&f.location, "location", "", "region, e.g. japaneast")
	fs.StringVar(&f.appName, "app-name", "", "application name, 2-32 of a-z, 0-9 and '-'")
	fs.StringVar(&f.dbType, "db-type", "", "database engine (postgres|sqlserver)")
	fs.StringVar(&f.dbPassword, "db-password", "", "database password, at least 8 characters (env TTDEPLOY_DB_PASSWORD)")
	fs.StringVar(&f.dbName, "db-name", "", "database name")
	fs.StringVar(&f.trackerPassword, "tracker-password", "", "application password, at least 8 characters (env TTDEPLOY_TRACKER_PASSWORD)")
	fs.StringVar(&f.ttTag, "tt-tag", "", "application image tag, e.g. 7.0-linux-postgres")
	fs.BoolVar(&f.dryRun, "dry-run", false, "write docker-compose manifest and .env instead of provisioning")
	fs.StringVar(&f.authMode, "auth-mode", "", "credential source (default|azure-cli|sp-env|device-code|managed-identity)")
	fs.StringVar(&f.output, "output", "", "manifest path for --dry-run; .env is written next to it")
	fs.StringVar(&f.backend, "backend", "", "provisioning backend (azure|docker)")

	fs.Float64Var(&f.ttCPU, "tt-cpu", 0, "application CPU cores")
	fs.Float64Var(&f.ttMemory, "tt-memory", 0, "application memory in GiB")
	fs.Float64Var(&f.dbCPU, "db-cpu", 0, "database CPU cores")
	fs.Float64Var(&f.dbMemory, "db-memory", 0, "database memory in GiB")
	fs.Float64Var(&f.redisCPU, "redis-cpu", 0, "cache CPU cores")
	fs.Float64Var(&f.redisMemory, "redis-memory", 0, "cache memory in GiB")
}

// options builds the deployment options from cfg overridden by the flags
// set on fs.
func (f *deployFlags) options(fs *pflag.FlagSet, cfg *Config, verbose bool) (domain.Options, coreprovider.Backend, error) {
	defaults, err := cfg.Defaults.DomainDefaults()
	if err != nil {
		return domain.Options{}, "", &ConfigError{Err: err}
	}

	o := domain.NewOptions(defaults)
	o.SubscriptionID = cfg.Subscription
	o.ResourceGroup = cfg.ResourceGroup
	o.DBPassword = cfg.DBPassword
	o.TrackerPassword = cfg.TrackerPassword
	o.Verbose = verbose

	setString := func(name string, dst *string, value string) {
		if fs.Changed(name) {
			*dst = value
		}
	}
	setFloat := func(name string, dst *float64, value float64) {
		if fs.Changed(name) {
			*dst = value
		}
	}

	setString("subscription", &o.SubscriptionID, f.subscription)
	setString("resource-group", &o.ResourceGroup, f.resourceGroup)
	setString("location", &o.Location, f.location)
	setString("app-name", &o.AppName, f.appName)
	setString("db-password", &o.DBPassword, f.dbPassword)
	setString("db-name", &o.DBName, f.dbName)
	setString("tracker-password", &o.TrackerPassword, f.trackerPassword)
	setString("tt-tag", &o.ImageTag, f.ttTag)
	setString("output", &o.OutputManifestPath, f.output)
	setFloat("tt-cpu", &o.Sizing.App.CPUCores, f.ttCPU)
	setFloat("tt-memory", &o.Sizing.App.MemoryGiB, f.ttMemory)
	setFloat("db-cpu", &o.Sizing.DB.CPUCores, f.dbCPU)
	setFloat("db-memory", &o.Sizing.DB.MemoryGiB, f.dbMemory)
	setFloat("redis-cpu", &o.Sizing.Cache.CPUCores, f.redisCPU)
	setFloat("redis-memory", &o.Sizing.Cache.MemoryGiB, f.redisMemory)
	o.AppName = strings.ToLower(o.AppName)
	o.DryRun = f.dryRun

	if fs.Changed("db-type") {
		o.DBEngine = domain.NormalizeEngine(f.dbType)
	}
	if fs.Changed("auth-mode") {
		mode, err := domain.ParseAuthMode(f.authMode)
		if err != nil {
			return domain.Options{}, "", err
		}
		o.AuthMode = mode
	}

	var backend coreprovider.Backend
	if fs.Changed("backend") {
		if backend, err = coreprovider.ParseBackend(f.backend); err != nil {
			return domain.Options{}, "", err
		}
	} else if backend, err = coreprovider.ParseBackend(cfg.Defaults.Backend); err != nil {
		return domain.Options{}, "", &ConfigError{Err: err}
	}

	return o, backend, nil
}

// =============================================================================
// Commands
// =============================================================================

func newDeployCmd(a *app) *cobra.Command {
	flags := &deployFlags{}
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Validate and deploy, or write the artifacts with --dry-run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, backend, err := flags.options(cmd.Flags(), a.cfg, a.verbose)
			if err != nil {
				return err
			}
			logger := SetupLogger(a.cfg.Log, a.verbose, a.stderr).With(zap.String("backend", string(backend)))
			defer logger.Sync()
			RouteLibraryLogs(logger)

			d := engine.New(engine.Config{
				Open: func(ctx context.Context) (provider.Provisioner, error) {
					return a.openProvisioner(ctx, provider.Config{
						Backend:    backend,
						AuthMode:   opts.AuthMode,
						LookupEnv:  a.lookupEnv,
						Prompt:     a.stderr,
						DockerHost: a.cfg.Docker.Host,
					}, logger)
				},
				Logger: logger,
			})

			res, err := d.Deploy(cmd.Context(), opts)
			for _, w := range res.Warnings {
				a.console.Warn(w)
			}
			if err != nil {
				return err
			}

			if res.DryRun {
				a.console.Success("Generated %s and %s", res.Paths.Manifest, res.Paths.Env)
				return nil
			}
			a.console.Success("Deployment complete: %s, %s, %s",
				deployment.ApplicationAppName(opts.AppName),
				deployment.DatabaseAppName(opts.AppName),
				deployment.CacheAppName(opts.AppName))
			if res.Endpoint != "" {
				a.console.Success("Application endpoint: %s", res.Endpoint)
			} else {
				a.console.Warn("Application endpoint not available yet; check the container app ingress settings")
			}
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	flags := &deployFlags{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the deployment inputs without writing or provisioning anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, _, err := flags.options(cmd.Flags(), a.cfg, a.verbose)
			if err != nil {
				return err
			}
			logger := SetupLogger(a.cfg.Log, a.verbose, a.stderr)
			defer logger.Sync()
			RouteLibraryLogs(logger)

			warnings, err := engine.New(engine.Config{Logger: logger}).Validate(opts)
			for _, w := range warnings {
				a.console.Warn(w)
			}
			if err != nil {
				return err
			}
			a.console.Success("Options are valid for %s (%s, tag %s)", opts.AppName, opts.DBEngine, opts.ImageTag)
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}
