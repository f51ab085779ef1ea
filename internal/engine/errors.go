package engine

import "errors"

// ErrProvisioningFailed is wrapped by every ProvisioningError.
var ErrProvisioningFailed = errors.New("provisioning failed")

// ProvisioningError carries a failure returned by the provisioning backend.
// Error returns the backend's message unchanged.
type ProvisioningError struct {
	Stage string // e.g., "resource-group", "environment", "apps"
	Err   error
}

func (e *ProvisioningError) Error() string {
	return e.Err.Error()
}

func (e *ProvisioningError) Unwrap() []error {
	return []error{ErrProvisioningFailed, e.Err}
}
