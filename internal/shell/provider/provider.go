// Package provider implements the provisioning backends that execute a
// deployment plan. This is part of the Imperative Shell - handles I/O with
// the Azure control plane or a local Docker engine.
package provider

import (
	"context"

	"github.com/artpar/ttdeploy/internal/core/deployment"
)

// Environment is the handle of a managed environment. For the docker
// backend it is the network shared by the three containers.
type Environment struct {
	ID   string
	Name string
}

// Provisioner defines the operations the engine performs against a backend.
// Every operation is an idempotent create-or-update. Callers pass only
// validated input and surface errors unchanged.
type Provisioner interface {
	// EnsureResourceGroup creates or updates the resource group.
	EnsureResourceGroup(ctx context.Context, subscriptionID, resourceGroup, location string, tags map[string]string) error

	// EnsureManagedEnvironment creates or updates the managed environment.
	EnsureManagedEnvironment(ctx context.Context, subscriptionID, resourceGroup, name, location string, tags map[string]string) (Environment, error)

	// CreateOrUpdateApplication creates or updates the database, cache and
	// application apps of the plan inside env. It returns the application
	// endpoint, or "" if none is assigned yet.
	CreateOrUpdateApplication(ctx context.Context, plan deployment.Plan, env Environment) (endpoint string, err error)

	// Close releases backend connections.
	Close() error
}
