package provider

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v3"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"go.uber.org/zap"

	"github.com/artpar/ttdeploy/internal/core/deployment"
)

// AzureProvisioner implements Provisioner for Azure Container Apps.
type AzureProvisioner struct {
	credential azcore.TokenCredential
	options    *arm.ClientOptions
	logger     *zap.Logger
}

var _ Provisioner = (*AzureProvisioner)(nil)

// NewAzureProvisioner creates an Azure Container Apps provisioner.
// Clients are created per call because the subscription is a call argument.
func NewAzureProvisioner(credential azcore.TokenCredential, options *arm.ClientOptions, logger *zap.Logger) *AzureProvisioner {
	return &AzureProvisioner{
		credential: credential,
		options:    options,
		logger:     logger.With(zap.String("backend", "azure")),
	}
}

// EnsureResourceGroup creates or updates the resource group.
func (p *AzureProvisioner) EnsureResourceGroup(ctx context.Context, subscriptionID, resourceGroup, location string, tags map[string]string) error {
	client, err := armresources.NewResourceGroupsClient(subscriptionID, p.credential, p.options)
	if err != nil {
		return fmt.Errorf("failed to create resource groups client: %w", err)
	}

	p.logger.Debug("ensuring resource group", zap.String("resource_group", resourceGroup), zap.String("location", location))
	resp, err := client.CreateOrUpdate(ctx, resourceGroup, resourceGroupEnvelope(location, tags), nil)
	if err != nil {
		return err
	}

	p.logger.Info("resource group ready", zap.String("id", deref(resp.ID)))
	return nil
}

// EnsureManagedEnvironment creates or updates the managed environment and
// waits for the operation to complete.
func (p *AzureProvisioner) EnsureManagedEnvironment(ctx context.Context, subscriptionID, resourceGroup, name, location string, tags map[string]string) (Environment, error) {
	client, err := armappcontainers.NewManagedEnvironmentsClient(subscriptionID, p.credential, p.options)
	if err != nil {
		return Environment{}, fmt.Errorf("failed to create managed environments client: %w", err)
	}

	p.logger.Debug("ensuring managed environment", zap.String("environment", name))
	poller, err := client.BeginCreateOrUpdate(ctx, resourceGroup, name, managedEnvironmentEnvelope(location, tags), nil)
	if err != nil {
		return Environment{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return Environment{}, err
	}

	env := Environment{ID: deref(resp.ID), Name: name}
	p.logger.Info("managed environment ready", zap.String("id", env.ID))
	return env, nil
}

// CreateOrUpdateApplication creates or updates each app of the plan in
// dependency order and returns the application endpoint.
func (p *AzureProvisioner) CreateOrUpdateApplication(ctx context.Context, plan deployment.Plan, env Environment) (string, error) {
	client, err := armappcontainers.NewContainerAppsClient(plan.SubscriptionID, p.credential, p.options)
	if err != nil {
		return "", fmt.Errorf("failed to create container apps client: %w", err)
	}

	endpoint := ""
	for _, app := range plan.Apps {
		logger := p.logger.With(zap.String("app", app.Name), zap.String("role", string(app.Role)))
		logger.Debug("creating or updating container app", zap.String("image", app.Container.Image))

		var provisioned armappcontainers.ContainerApp
		poller, err := client.BeginCreateOrUpdate(ctx, plan.ResourceGroup, app.Name, containerAppEnvelope(app, plan.Location, env.ID), nil)
		if err == nil {
			var resp armappcontainers.ContainerAppsClientCreateOrUpdateResponse
			resp, err = poller.PollUntilDone(ctx, nil)
			provisioned = resp.ContainerApp
		}
		if err != nil {
			return "", err
		}

		logger.Info("container app ready")
		if app.Role == deployment.RoleApplication {
			endpoint = appEndpoint(provisioned)
		}
	}

	if endpoint == "" {
		p.logger.Warn("application endpoint FQDN not available yet, check the container app ingress settings")
	}
	return endpoint, nil
}

// Close is a no-op; Azure clients hold no connections.
func (p *AzureProvisioner) Close() error {
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
