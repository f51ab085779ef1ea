package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/ttdeploy/internal/core/domain"
)

// =============================================================================
// Catalog Tests
// =============================================================================

func TestLookupRegion(t *testing.T) {
	r := LookupRegion("japaneast")
	require.NotNil(t, r)
	assert.Equal(t, "Japan East", r.Name)

	assert.NotNil(t, LookupRegion("WestEurope"))
	assert.Nil(t, LookupRegion("mars-north"))
}

func TestContainerAppsSizes(t *testing.T) {
	sizes := ContainerAppsSizes()
	require.Len(t, sizes, 16)
	assert.Equal(t, ContainerSize{CPUCores: 0.25, MemoryGiB: 0.5}, sizes[0])
	assert.Equal(t, ContainerSize{CPUCores: 4, MemoryGiB: 8}, sizes[15])
	assert.Equal(t, "0.5 vCPU / 1Gi", sizes[1].String())
}

func TestLookupSize(t *testing.T) {
	assert.NotNil(t, LookupSize(domain.ResourceSpec{CPUCores: 0.5, MemoryGiB: 1.0}))
	assert.NotNil(t, LookupSize(domain.ResourceSpec{CPUCores: 1.75, MemoryGiB: 3.5}))
	assert.Nil(t, LookupSize(domain.ResourceSpec{CPUCores: 0.5, MemoryGiB: 4}))
	assert.Nil(t, LookupSize(domain.ResourceSpec{CPUCores: 0.3, MemoryGiB: 0.6}))
}

// =============================================================================
// Warnings Tests
// =============================================================================

func TestWarnings_StandardDefaults(t *testing.T) {
	d := domain.StandardDefaults()
	assert.Empty(t, Warnings(d.Location, d.Sizing))
}

func TestWarnings_UnknownRegionAndSize(t *testing.T) {
	sizing := domain.StandardDefaults().Sizing
	sizing.DB = domain.ResourceSpec{CPUCores: 1, MemoryGiB: 1}

	warnings := Warnings("nowhere", sizing)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], `"nowhere"`)
	assert.Contains(t, warnings[1], "db size 1 vCPU / 1Gi")
}

// =============================================================================
// Backend Tests
// =============================================================================

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend("Azure")
	require.NoError(t, err)
	assert.Equal(t, BackendAzure, b)

	b, err = ParseBackend("docker")
	require.NoError(t, err)
	assert.Equal(t, BackendDocker, b)

	_, err = ParseBackend("aws")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

// =============================================================================
// Credential Validation Tests
// =============================================================================

func TestValidateServicePrincipal(t *testing.T) {
	tests := []struct {
		name string
		sp   ServicePrincipal
		want error
	}{
		{"complete", ServicePrincipal{TenantID: "t", ClientID: "c", ClientSecret: "s"}, nil},
		{"no tenant", ServicePrincipal{ClientID: "c", ClientSecret: "s"}, ErrTenantIDRequired},
		{"no client", ServicePrincipal{TenantID: "t", ClientSecret: "s"}, ErrClientIDRequired},
		{"blank secret", ServicePrincipal{TenantID: "t", ClientID: "c", ClientSecret: "  "}, ErrClientSecretRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateServicePrincipal(tt.sp)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestServicePrincipalFromEnv(t *testing.T) {
	env := map[string]string{
		EnvTenantID:     "tenant",
		EnvClientID:     "client",
		EnvClientSecret: "secret",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	sp, err := ServicePrincipalFromEnv(lookup)
	require.NoError(t, err)
	assert.Equal(t, ServicePrincipal{TenantID: "tenant", ClientID: "client", ClientSecret: "secret"}, sp)

	delete(env, EnvClientSecret)
	_, err = ServicePrincipalFromEnv(lookup)
	assert.ErrorIs(t, err, ErrClientSecretRequired)
}
