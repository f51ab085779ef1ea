// Package validation provides the pure validation rules run before any
// artifact is generated or any provisioning call is made.
//
// All functions are pure (no I/O, no side effects) and deterministic.
//
// # Functions
//
//   - IsValidAppName: Check an application name against the naming grammar
//   - AppNameError: Report the first naming rule a name violates
//   - ValidateOptions: Check the cross-field business rules of deployment options
//
// # Usage
//
// The engine runs the name check, then the option rules, and stops at the
// first violation:
//
//	if err := validation.AppNameError(opts.AppName); err != nil {
//	    // usage error, nothing was generated
//	}
//	if err := validation.ValidateOptions(opts); err != nil {
//	    // err is a *ValidationError
//	}
package validation
