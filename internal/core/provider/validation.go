package provider

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// Backends
// =============================================================================

// Backend names a provisioning backend.
type Backend string

const (
	BackendAzure  Backend = "azure"
	BackendDocker Backend = "docker"
)

var ErrUnknownBackend = errors.New("unknown provisioning backend")

// ParseBackend parses a case-insensitive backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendAzure, BackendDocker:
		return b, nil
	default:
		return "", fmt.Errorf("%w %q: use %s or %s", ErrUnknownBackend, s, BackendAzure, BackendDocker)
	}
}

// =============================================================================
// Credential Validation (Pure - no I/O)
// =============================================================================

// Environment variables read by the service principal auth mode.
const (
	EnvTenantID     = "AZURE_TENANT_ID"
	EnvClientID     = "AZURE_CLIENT_ID"
	EnvClientSecret = "AZURE_CLIENT_SECRET"
)

var (
	ErrTenantIDRequired     = errors.New("AZURE_TENANT_ID is required")
	ErrClientIDRequired     = errors.New("AZURE_CLIENT_ID is required")
	ErrClientSecretRequired = errors.New("AZURE_CLIENT_SECRET is required")
)

// ServicePrincipal holds client secret credentials.
type ServicePrincipal struct {
	TenantID     string `json:"tenant_id"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"-"`
}

// ValidateServicePrincipal validates service principal fields.
func ValidateServicePrincipal(sp ServicePrincipal) error {
	if strings.TrimSpace(sp.TenantID) == "" {
		return ErrTenantIDRequired
	}
	if strings.TrimSpace(sp.ClientID) == "" {
		return ErrClientIDRequired
	}
	if strings.TrimSpace(sp.ClientSecret) == "" {
		return ErrClientSecretRequired
	}
	return nil
}

// ServicePrincipalFromEnv reads a service principal through lookup, which
// has the signature of os.LookupEnv.
func ServicePrincipalFromEnv(lookup func(string) (string, bool)) (ServicePrincipal, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	sp := ServicePrincipal{
		TenantID:     get(EnvTenantID),
		ClientID:     get(EnvClientID),
		ClientSecret: get(EnvClientSecret),
	}
	return sp, ValidateServicePrincipal(sp)
}
