// Package engine orchestrates one deployment: validate the options, then
// either write the dry-run artifacts or drive a provisioning backend.
package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artpar/ttdeploy/internal/core/compose"
	"github.com/artpar/ttdeploy/internal/core/deployment"
	"github.com/artpar/ttdeploy/internal/core/domain"
	coreprovider "github.com/artpar/ttdeploy/internal/core/provider"
	"github.com/artpar/ttdeploy/internal/core/validation"
	"github.com/artpar/ttdeploy/internal/shell/artifacts"
	"github.com/artpar/ttdeploy/internal/shell/provider"
)

// OpenProvisioner connects to the provisioning backend. It is called only
// for live runs and only after validation succeeded.
type OpenProvisioner func(ctx context.Context) (provider.Provisioner, error)

// Config holds the dependencies of a Deployer.
type Config struct {
	Open   OpenProvisioner
	Logger *zap.Logger
	RunID  func() string // defaults to a random UUID
}

// Deployer runs deployments.
type Deployer struct {
	open   OpenProvisioner
	logger *zap.Logger
	runID  func() string
}

// Result describes a completed run.
type Result struct {
	RunID    string
	DryRun   bool
	Paths    artifacts.Paths // dry-run only
	Endpoint string          // live only; "" if not assigned yet
	Warnings []string
}

// New creates a Deployer.
func New(cfg Config) *Deployer {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.RunID == nil {
		cfg.RunID = uuid.NewString
	}
	return &Deployer{open: cfg.Open, logger: cfg.Logger, runID: cfg.RunID}
}

// Validate runs the name check, the option rules and the artifact
// self-check without writing or provisioning anything.
func (d *Deployer) Validate(o domain.Options) ([]string, error) {
	_, warnings, err := d.prepare(o, d.logger)
	return warnings, err
}

// Deploy validates o and then writes the artifacts (dry-run) or hands the
// plan to the provisioning backend. Nothing is written or provisioned when
// validation fails.
func (d *Deployer) Deploy(ctx context.Context, o domain.Options) (Result, error) {
	res := Result{RunID: d.runID(), DryRun: o.DryRun}
	logger := d.logger.With(zap.String("run_id", res.RunID), zap.String("app", o.AppName))

	generated, warnings, err := d.prepare(o, logger)
	res.Warnings = warnings
	if err != nil {
		return res, err
	}

	if o.DryRun {
		paths, err := artifacts.Write(o.OutputManifestPath, generated)
		if err != nil {
			return res, err
		}
		res.Paths = paths
		logger.Info("artifacts written", zap.String("manifest", paths.Manifest), zap.String("env", paths.Env))
		return res, nil
	}

	endpoint, err := d.provision(ctx, deployment.BuildPlan(o, res.RunID), logger)
	if err != nil {
		return res, err
	}
	res.Endpoint = endpoint
	return res, nil
}

func (d *Deployer) prepare(o domain.Options, logger *zap.Logger) (compose.Artifacts, []string, error) {
	if nameErr := validation.AppNameError(o.AppName); nameErr != nil {
		return compose.Artifacts{}, nil, nameErr
	}
	if err := validation.ValidateOptions(o); err != nil {
		return compose.Artifacts{}, nil, err
	}
	logger.Debug("options valid", zap.String("engine", o.DBEngine.String()), zap.String("image_tag", o.ImageTag))

	warnings := coreprovider.Warnings(o.Location, o.Sizing)
	for _, w := range warnings {
		logger.Debug("advisory", zap.String("warning", w))
	}

	generated, err := compose.Generate(o)
	if err != nil {
		return compose.Artifacts{}, warnings, err
	}
	return generated, warnings, nil
}

func (d *Deployer) provision(ctx context.Context, plan deployment.Plan, logger *zap.Logger) (string, error) {
	if d.open == nil {
		return "", &ProvisioningError{Stage: "connect", Err: errors.New("no provisioning backend configured")}
	}
	p, err := d.open(ctx)
	if err != nil {
		return "", &ProvisioningError{Stage: "connect", Err: err}
	}
	defer p.Close()

	logger.Info("ensuring resource group", zap.String("resource_group", plan.ResourceGroup), zap.String("location", plan.Location))
	if err := p.EnsureResourceGroup(ctx, plan.SubscriptionID, plan.ResourceGroup, plan.Location, plan.Tags); err != nil {
		return "", &ProvisioningError{Stage: "resource-group", Err: err}
	}

	logger.Info("ensuring managed environment", zap.String("environment", plan.EnvironmentName))
	env, err := p.EnsureManagedEnvironment(ctx, plan.SubscriptionID, plan.ResourceGroup, plan.EnvironmentName, plan.Location, plan.Tags)
	if err != nil {
		return "", &ProvisioningError{Stage: "environment", Err: err}
	}

	logger.Info("creating or updating apps", zap.Int("count", len(plan.Apps)))
	endpoint, err := p.CreateOrUpdateApplication(ctx, plan, env)
	if err != nil {
		return "", &ProvisioningError{Stage: "apps", Err: err}
	}
	return endpoint, nil
}
