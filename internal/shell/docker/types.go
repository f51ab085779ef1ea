// Package docker provides a Docker client for the local provisioning backend.
package docker

import (
	"context"
	"time"
)

// =============================================================================
// Container Types
// =============================================================================

// ContainerSpec describes a container to create.
type ContainerSpec struct {
	Name           string
	Image          string
	Command        []string
	Env            []string // KEY=value, in order
	Labels         map[string]string
	Ports          []PortBinding
	Volumes        []VolumeMount
	Networks       []string
	NetworkAliases map[string][]string // network name → aliases (e.g., app name for DNS)
	RestartPolicy  RestartPolicy
	Resources      ResourceLimits
}

// PortBinding defines a port mapping.
type PortBinding struct {
	ContainerPort int
	HostPort      int    // 0 for auto-assign
	Protocol      string // "tcp" or "udp"
	HostIP        string // "" for 0.0.0.0
}

// VolumeMount defines a volume mount.
type VolumeMount struct {
	Source   string // Volume name or host path
	Target   string // Container path
	ReadOnly bool
}

// RestartPolicy defines the container restart policy.
type RestartPolicy struct {
	Name              string // "no", "always", "on-failure", "unless-stopped"
	MaximumRetryCount int
}

// ResourceLimits defines resource constraints.
type ResourceLimits struct {
	CPULimit    float64 // CPU cores
	MemoryLimit int64   // Bytes
}

// =============================================================================
// Container Info
// =============================================================================

// ContainerStatus represents the container status.
type ContainerStatus string

const (
	ContainerStatusCreated    ContainerStatus = "created"
	ContainerStatusRunning    ContainerStatus = "running"
	ContainerStatusRestarting ContainerStatus = "restarting"
	ContainerStatusExited     ContainerStatus = "exited"
	ContainerStatusDead       ContainerStatus = "dead"
)

// ContainerInfo contains information about a container.
type ContainerInfo struct {
	ID        string
	Name      string
	Image     string
	Status    ContainerStatus
	CreatedAt time.Time
	Ports     []PortBinding
	Labels    map[string]string
}

// =============================================================================
// Network and Volume Types
// =============================================================================

// NetworkSpec describes a network to create.
type NetworkSpec struct {
	Name   string
	Driver string // "bridge" by default
	Labels map[string]string
}

// VolumeSpec describes a volume to create.
type VolumeSpec struct {
	Name   string
	Driver string // "local" by default
	Labels map[string]string
}

// =============================================================================
// Options
// =============================================================================

// RemoveOptions defines options for removing containers.
type RemoveOptions struct {
	Force         bool
	RemoveVolumes bool
}

// ListOptions defines options for listing containers.
type ListOptions struct {
	All     bool              // Include stopped containers
	Filters map[string]string // e.g., {"label": "ttdeploy.app=timetracker"}
}

// =============================================================================
// Client Interface
// =============================================================================

// Client defines the Docker operations used by the docker provisioning backend.
type Client interface {
	// Container operations
	CreateContainer(ctx context.Context, spec ContainerSpec) (containerID string, err error)
	StartContainer(ctx context.Context, containerID string) error
	RemoveContainer(ctx context.Context, containerID string, opts RemoveOptions) error
	ListContainers(ctx context.Context, opts ListOptions) ([]ContainerInfo, error)

	// Network operations
	EnsureNetwork(ctx context.Context, spec NetworkSpec) (networkID string, err error)

	// Volume operations
	EnsureVolume(ctx context.Context, spec VolumeSpec) (volumeName string, err error)

	// Image operations
	PullImage(ctx context.Context, image string) error
	ImageExists(ctx context.Context, image string) (bool, error)

	// Health operations
	Ping(ctx context.Context) error
	Close() error
}
