// Package domain contains the deployment value objects shared by the
// functional core and the imperative shell.
package domain

import (
	"fmt"
	"strings"
)

// =============================================================================
// Auth Mode
// =============================================================================

// AuthMode selects how credentials for the provisioning API are acquired.
type AuthMode string

const (
	AuthDefault             AuthMode = "default"
	AuthCLISession          AuthMode = "azure-cli"
	AuthServicePrincipalEnv AuthMode = "sp-env"
	AuthDeviceCode          AuthMode = "device-code"
	AuthManagedIdentity     AuthMode = "managed-identity"
)

// AuthModes returns every supported auth mode.
func AuthModes() []AuthMode {
	return []AuthMode{AuthDefault, AuthCLISession, AuthServicePrincipalEnv, AuthDeviceCode, AuthManagedIdentity}
}

// ParseAuthMode parses a case-insensitive auth mode name.
func ParseAuthMode(s string) (AuthMode, error) {
	v := AuthMode(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range AuthModes() {
		if v == m {
			return m, nil
		}
	}
	names := make([]string, 0, len(AuthModes()))
	for _, m := range AuthModes() {
		names = append(names, string(m))
	}
	return "", fmt.Errorf("unknown auth mode %q: valid values are %s", s, strings.Join(names, ", "))
}

// =============================================================================
// Resource Sizing
// =============================================================================

// ResourceSpec is the CPU and memory assigned to one container.
type ResourceSpec struct {
	CPUCores  float64 `json:"cpu_cores"`
	MemoryGiB float64 `json:"memory_gib"`
}

// Sizing holds the resources of the three deployed services.
type Sizing struct {
	App   ResourceSpec `json:"app"`
	DB    ResourceSpec `json:"db"`
	Cache ResourceSpec `json:"cache"`
}

// =============================================================================
// Deployment Options
// =============================================================================

// Options is the complete parameter set of one deployment request.
// It is built once per invocation and treated as read-only afterwards.
type Options struct {
	SubscriptionID     string   `json:"subscription_id"`
	ResourceGroup      string   `json:"resource_group"`
	Location           string   `json:"location"`
	AppName            string   `json:"app_name"`
	DBEngine           Engine   `json:"db_engine"`
	DBPassword         string   `json:"-"`
	DBName             string   `json:"db_name"`
	TrackerPassword    string   `json:"-"`
	ImageTag           string   `json:"image_tag"`
	DryRun             bool     `json:"dry_run"`
	Verbose            bool     `json:"verbose"`
	AuthMode           AuthMode `json:"auth_mode"`
	Sizing             Sizing   `json:"sizing"`
	OutputManifestPath string   `json:"output_manifest_path"`
}

// NewOptions returns Options pre-populated from defaults. Callers override
// the fields they received as input.
func NewOptions(d Defaults) Options {
	return Options{
		Location:           d.Location,
		AppName:            strings.ToLower(d.AppName),
		DBEngine:           d.DBEngine,
		DBName:             d.DBName,
		ImageTag:           d.ImageTag,
		AuthMode:           d.AuthMode,
		Sizing:             d.Sizing,
		OutputManifestPath: d.OutputManifestPath,
	}
}

// Profile returns the engine profile of the options.
// It panics if the engine is unsupported, so call it only after validation.
func (o Options) Profile() EngineProfile {
	return o.DBEngine.MustProfile()
}
