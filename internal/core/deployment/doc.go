// Package deployment provides pure functions for live deployment planning.
//
// This package turns validated deployment options into the plans that the
// imperative shell hands to a provisioning backend. All functions are pure
// (no I/O, no side effects).
//
// # Functions
//
//   - Naming: Generate consistent resource names (EnvironmentName, DatabaseAppName, ...)
//   - Planning: Build the db, cache and application plans (BuildPlan)
//   - Ordering: Sort app plans by their dependencies (TopologicalSort)
//
// # Usage
//
// The provisioning backends (internal/shell/provider) execute the plan
// against Azure Container Apps or a local Docker engine.
//
//	plan := deployment.BuildPlan(opts, runID)
//	for _, app := range plan.Apps {
//	    // create or update app
//	}
package deployment
