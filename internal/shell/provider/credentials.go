package provider

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"go.uber.org/zap"

	"github.com/artpar/ttdeploy/internal/core/domain"
	coreprovider "github.com/artpar/ttdeploy/internal/core/provider"
)

// =============================================================================
// Credential Factory
// =============================================================================

// resolveAuthMode decides the mode actually used. The service principal mode
// falls back to the default chain when its environment is incomplete; the
// returned error explains why.
func resolveAuthMode(mode domain.AuthMode, lookup func(string) (string, bool)) (domain.AuthMode, coreprovider.ServicePrincipal, error) {
	if mode != domain.AuthServicePrincipalEnv {
		return mode, coreprovider.ServicePrincipal{}, nil
	}
	sp, err := coreprovider.ServicePrincipalFromEnv(lookup)
	if err != nil {
		return domain.AuthDefault, coreprovider.ServicePrincipal{}, err
	}
	return mode, sp, nil
}

// NewCredential builds the Azure credential for mode. lookup reads the
// environment; nil means os.LookupEnv. Device code prompts are
// written to prompt.
func NewCredential(mode domain.AuthMode, lookup func(string) (string, bool), prompt io.Writer, logger *zap.Logger) (azcore.TokenCredential, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	resolved, sp, fallbackErr := resolveAuthMode(mode, lookup)
	if fallbackErr != nil {
		logger.Error("service principal environment incomplete, falling back to default credential",
			zap.Error(fallbackErr))
	}
	logger.Debug("building credential", zap.String("auth_mode", string(resolved)))

	switch resolved {
	case domain.AuthDefault:
		return azidentity.NewDefaultAzureCredential(nil)
	case domain.AuthCLISession:
		return azidentity.NewAzureCLICredential(nil)
	case domain.AuthServicePrincipalEnv:
		return azidentity.NewClientSecretCredential(sp.TenantID, sp.ClientID, sp.ClientSecret, nil)
	case domain.AuthDeviceCode:
		return azidentity.NewDeviceCodeCredential(&azidentity.DeviceCodeCredentialOptions{
			UserPrompt: func(_ context.Context, msg azidentity.DeviceCodeMessage) error {
				_, err := fmt.Fprintln(prompt, msg.Message)
				return err
			},
		})
	case domain.AuthManagedIdentity:
		return azidentity.NewManagedIdentityCredential(nil)
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", mode)
	}
}
