package provider

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/artpar/ttdeploy/internal/core/domain"
	coreprovider "github.com/artpar/ttdeploy/internal/core/provider"
	"github.com/artpar/ttdeploy/internal/shell/docker"
)

// Config selects and configures a provisioning backend.
type Config struct {
	Backend    coreprovider.Backend
	AuthMode   domain.AuthMode             // azure only
	LookupEnv  func(string) (string, bool) // azure only
	Prompt     io.Writer                   // azure device code prompts
	DockerHost string                      // docker only; "" uses the environment
}

// NewProvisioner creates the provisioner for cfg.Backend.
func NewProvisioner(ctx context.Context, cfg Config, logger *zap.Logger) (Provisioner, error) {
	switch cfg.Backend {
	case coreprovider.BackendAzure:
		cred, err := NewCredential(cfg.AuthMode, cfg.LookupEnv, cfg.Prompt, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure credential: %w", err)
		}
		return NewAzureProvisioner(cred, nil, logger), nil

	case coreprovider.BackendDocker:
		cli, err := docker.NewDockerClient(ctx, cfg.DockerHost)
		if err != nil {
			return nil, err
		}
		return NewDockerProvisioner(cli, logger), nil

	default:
		return nil, fmt.Errorf("%w: %q", coreprovider.ErrUnknownBackend, cfg.Backend)
	}
}
