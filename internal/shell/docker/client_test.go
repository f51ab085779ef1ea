package docker

import (
	"context"
	"errors"
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

func skipIfNoDocker(t *testing.T) Client {
	t.Helper()
	cli, err := NewDockerClient(context.Background(), "")
	if err != nil {
		t.Skip("Docker not available:", err)
	}
	if err := cli.Ping(context.Background()); err != nil {
		cli.Close()
		t.Skip("Docker not reachable:", err)
	}
	return cli
}

// Test resource name prefix to identify test containers
const testPrefix = "ttdeploy-test-"

func testName() string {
	return testPrefix + uuid.NewString()[:8]
}

// =============================================================================
// Container Config Tests
// =============================================================================

func TestBuildContainerConfig_Minimal(t *testing.T) {
	config, hostConfig, networkConfig := buildContainerConfig(ContainerSpec{
		Name:  "web",
		Image: "redis:7-alpine",
	})

	assert.Equal(t, "redis:7-alpine", config.Image)
	assert.Empty(t, config.ExposedPorts)
	assert.Empty(t, hostConfig.PortBindings)
	assert.Empty(t, hostConfig.Mounts)
	assert.Zero(t, hostConfig.NanoCPUs)
	assert.Nil(t, networkConfig)
}

func TestBuildContainerConfig_Ports(t *testing.T) {
	config, hostConfig, _ := buildContainerConfig(ContainerSpec{
		Image: "app",
		Ports: []PortBinding{
			{ContainerPort: 8080, HostPort: 8080},
			{ContainerPort: 53, Protocol: "udp"},
		},
	})

	tcp := nat.Port("8080/tcp")
	udp := nat.Port("53/udp")
	assert.Contains(t, config.ExposedPorts, tcp)
	assert.Contains(t, config.ExposedPorts, udp)
	assert.Equal(t, []nat.PortBinding{{HostPort: "8080"}}, hostConfig.PortBindings[tcp])
	assert.Equal(t, []nat.PortBinding{{HostPort: ""}}, hostConfig.PortBindings[udp])
}

func TestBuildContainerConfig_Volumes(t *testing.T) {
	_, hostConfig, _ := buildContainerConfig(ContainerSpec{
		Image: "postgres:16-alpine",
		Volumes: []VolumeMount{
			{Source: "myapp-pgdata", Target: "/var/lib/postgresql/data"},
			{Source: "/etc/config", Target: "/config", ReadOnly: true},
		},
	})

	require.Len(t, hostConfig.Mounts, 2)
	assert.Equal(t, mount.TypeVolume, hostConfig.Mounts[0].Type)
	assert.Equal(t, "myapp-pgdata", hostConfig.Mounts[0].Source)
	assert.Equal(t, mount.TypeBind, hostConfig.Mounts[1].Type)
	assert.True(t, hostConfig.Mounts[1].ReadOnly)
}

func TestBuildContainerConfig_ResourcesAndRestart(t *testing.T) {
	_, hostConfig, _ := buildContainerConfig(ContainerSpec{
		Image:         "app",
		Resources:     ResourceLimits{CPULimit: 0.5, MemoryLimit: 1 << 30},
		RestartPolicy: RestartPolicy{Name: "unless-stopped"},
	})

	assert.Equal(t, int64(500_000_000), hostConfig.NanoCPUs)
	assert.Equal(t, int64(1<<30), hostConfig.Memory)
	assert.Equal(t, container.RestartPolicyMode("unless-stopped"), hostConfig.RestartPolicy.Name)
}

func TestBuildContainerConfig_NetworkAliases(t *testing.T) {
	_, _, networkConfig := buildContainerConfig(ContainerSpec{
		Image:          "app",
		Networks:       []string{"myapp-env"},
		NetworkAliases: map[string][]string{"myapp-env": {"myapp-db"}},
	})

	require.NotNil(t, networkConfig)
	endpoint := networkConfig.EndpointsConfig["myapp-env"]
	require.NotNil(t, endpoint)
	assert.Equal(t, []string{"myapp-db"}, endpoint.Aliases)
}

func TestBuildContainerConfig_EnvKeepsOrder(t *testing.T) {
	config, _, _ := buildContainerConfig(ContainerSpec{
		Image: "app",
		Env:   []string{"B=2", "A=1"},
	})
	assert.Equal(t, []string{"B=2", "A=1"}, config.Env)
}

// =============================================================================
// Error Tests
// =============================================================================

func TestDockerError_Error(t *testing.T) {
	err := NewDockerError("StartContainer", "container", "abc123", "container not found", ErrContainerNotFound)
	assert.Equal(t, "StartContainer container abc123: container not found", err.Error())

	err = NewDockerError("ListContainers", "container", "", "boom", nil)
	assert.Equal(t, "ListContainers container: boom", err.Error())

	err = NewDockerError("Ping", "", "", "unreachable", ErrConnectionFailed)
	assert.Equal(t, "Ping: unreachable", err.Error())
}

func TestDockerError_Unwrap(t *testing.T) {
	err := NewDockerError("PullImage", "image", "nope", "image not found", ErrImageNotFound)
	assert.True(t, errors.Is(err, ErrImageNotFound))
}

// =============================================================================
// Integration Tests (require a Docker daemon)
// =============================================================================

func TestEnsureNetwork_Idempotent(t *testing.T) {
	cli := skipIfNoDocker(t)
	defer cli.Close()
	ctx := context.Background()

	name := testName()
	d := cli.(*DockerClient)
	defer d.cli.NetworkRemove(ctx, name)

	first, err := cli.EnsureNetwork(ctx, NetworkSpec{Name: name})
	require.NoError(t, err)
	second, err := cli.EnsureNetwork(ctx, NetworkSpec{Name: name})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEnsureVolume_Idempotent(t *testing.T) {
	cli := skipIfNoDocker(t)
	defer cli.Close()
	ctx := context.Background()

	name := testName()
	d := cli.(*DockerClient)
	defer d.cli.VolumeRemove(ctx, name, true)

	first, err := cli.EnsureVolume(ctx, VolumeSpec{Name: name})
	require.NoError(t, err)
	second, err := cli.EnsureVolume(ctx, VolumeSpec{Name: name})
	require.NoError(t, err)
	assert.Equal(t, name, first)
	assert.Equal(t, first, second)
}

func TestStartContainer_NotFound(t *testing.T) {
	cli := skipIfNoDocker(t)
	defer cli.Close()

	err := cli.StartContainer(context.Background(), testName())
	assert.ErrorIs(t, err, ErrContainerNotFound)
}

func TestRemoveContainer_NotFound(t *testing.T) {
	cli := skipIfNoDocker(t)
	defer cli.Close()

	err := cli.RemoveContainer(context.Background(), testName(), RemoveOptions{Force: true})
	assert.ErrorIs(t, err, ErrContainerNotFound)
}

func TestImageExists_False(t *testing.T) {
	cli := skipIfNoDocker(t)
	defer cli.Close()

	exists, err := cli.ImageExists(context.Background(), "ttdeploy-test/does-not-exist:never")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListContainers_FilterByLabel(t *testing.T) {
	cli := skipIfNoDocker(t)
	defer cli.Close()

	containers, err := cli.ListContainers(context.Background(), ListOptions{
		All:     true,
		Filters: map[string]string{"label": "ttdeploy.run=" + uuid.NewString()},
	})
	require.NoError(t, err)
	assert.Empty(t, containers)
}
