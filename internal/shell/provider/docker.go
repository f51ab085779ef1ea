package provider

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/artpar/ttdeploy/internal/core/deployment"
	"github.com/artpar/ttdeploy/internal/core/domain"
	"github.com/artpar/ttdeploy/internal/shell/docker"
)

// LocalEndpoint is the application endpoint of the docker backend.
var LocalEndpoint = fmt.Sprintf("http://localhost:%d", domain.ApplicationPort)

// DockerProvisioner implements Provisioner on a local Docker engine.
// The managed environment is a bridge network; each app is one container
// reachable on that network under its app name.
type DockerProvisioner struct {
	client docker.Client
	logger *zap.Logger
}

var _ Provisioner = (*DockerProvisioner)(nil)

// NewDockerProvisioner creates a provisioner backed by client.
func NewDockerProvisioner(client docker.Client, logger *zap.Logger) *DockerProvisioner {
	return &DockerProvisioner{
		client: client,
		logger: logger.With(zap.String("backend", "docker")),
	}
}

// EnsureResourceGroup only checks the engine is reachable; Docker has no
// resource groups.
func (p *DockerProvisioner) EnsureResourceGroup(ctx context.Context, subscriptionID, resourceGroup, location string, tags map[string]string) error {
	if err := p.client.Ping(ctx); err != nil {
		return err
	}
	p.logger.Debug("resource group not applicable", zap.String("resource_group", resourceGroup))
	return nil
}

// EnsureManagedEnvironment ensures the network named after the environment.
func (p *DockerProvisioner) EnsureManagedEnvironment(ctx context.Context, subscriptionID, resourceGroup, name, location string, tags map[string]string) (Environment, error) {
	id, err := p.client.EnsureNetwork(ctx, docker.NetworkSpec{Name: name, Labels: tags})
	if err != nil {
		return Environment{}, err
	}
	p.logger.Info("network ready", zap.String("network", name))
	return Environment{ID: id, Name: name}, nil
}

// CreateOrUpdateApplication replaces the container of each app in
// dependency order. Volumes are reused so database data survives updates.
// Containers of the same application left by earlier runs under a name the
// plan no longer uses are removed first.
func (p *DockerProvisioner) CreateOrUpdateApplication(ctx context.Context, plan deployment.Plan, env Environment) (string, error) {
	if err := p.removeStale(ctx, plan); err != nil {
		return "", err
	}

	for _, app := range plan.Apps {
		logger := p.logger.With(zap.String("app", app.Name), zap.String("role", string(app.Role)))

		if v := app.Container.Volume; v != nil {
			if _, err := p.client.EnsureVolume(ctx, docker.VolumeSpec{Name: v.Name, Labels: app.Labels}); err != nil {
				return "", err
			}
		}

		if err := p.ensureImage(ctx, app.Container.Image); err != nil {
			return "", err
		}

		err := p.client.RemoveContainer(ctx, app.Name, docker.RemoveOptions{Force: true})
		if err != nil && !errors.Is(err, docker.ErrContainerNotFound) {
			return "", err
		}

		id, err := p.client.CreateContainer(ctx, containerSpec(app, env.Name))
		if err != nil {
			return "", err
		}
		if err := p.client.StartContainer(ctx, id); err != nil {
			return "", err
		}
		logger.Info("container started", zap.String("container_id", id))
	}
	return LocalEndpoint, nil
}

// Close closes the Docker client.
func (p *DockerProvisioner) Close() error {
	return p.client.Close()
}

// removeStale removes containers labelled for the plan's application whose
// name is not one of the plan's apps.
func (p *DockerProvisioner) removeStale(ctx context.Context, plan deployment.Plan) error {
	appName := plan.Tags[deployment.LabelApp]
	if appName == "" {
		return nil
	}

	containers, err := p.client.ListContainers(ctx, docker.ListOptions{
		All:     true,
		Filters: map[string]string{"label": deployment.LabelApp + "=" + appName},
	})
	if err != nil {
		return err
	}

	current := make(map[string]bool, len(plan.Apps))
	for _, app := range plan.Apps {
		current[app.Name] = true
	}
	for _, c := range containers {
		if current[c.Name] {
			continue
		}
		p.logger.Info("removing stale container", zap.String("container", c.Name), zap.String("run", c.Labels[deployment.LabelRun]))
		err := p.client.RemoveContainer(ctx, c.ID, docker.RemoveOptions{Force: true})
		if err != nil && !errors.Is(err, docker.ErrContainerNotFound) {
			return err
		}
	}
	return nil
}

func (p *DockerProvisioner) ensureImage(ctx context.Context, image string) error {
	exists, err := p.client.ImageExists(ctx, image)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	p.logger.Info("pulling image", zap.String("image", image))
	return p.client.PullImage(ctx, image)
}

// containerSpec maps an app plan onto a container on network.
// Only externally reachable apps publish their port on the host.
func containerSpec(app deployment.AppPlan, network string) docker.ContainerSpec {
	c := app.Container

	env := make([]string, 0, len(c.Env))
	for _, e := range app.ResolvedEnv() {
		env = append(env, e.Name+"="+e.Value)
	}

	spec := docker.ContainerSpec{
		Name:           app.Name,
		Image:          c.Image,
		Command:        c.Args,
		Env:            env,
		Labels:         app.Labels,
		Networks:       []string{network},
		NetworkAliases: map[string][]string{network: {app.Name}},
		RestartPolicy:  docker.RestartPolicy{Name: "unless-stopped"},
		Resources: docker.ResourceLimits{
			CPULimit:    c.CPUCores,
			MemoryLimit: int64(c.MemoryGiB * (1 << 30)),
		},
	}
	if app.Ingress.External {
		spec.Ports = []docker.PortBinding{{
			ContainerPort: app.Ingress.TargetPort,
			HostPort:      app.Ingress.TargetPort,
		}}
	}
	if c.Volume != nil {
		spec.Volumes = []docker.VolumeMount{{Source: c.Volume.Name, Target: c.Volume.Target}}
	}
	return spec
}
