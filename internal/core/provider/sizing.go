// Package provider contains pure functions for provisioning backend logic.
// This is part of the Functional Core - all functions are pure with no I/O.
package provider

import (
	"fmt"
	"math"
	"strings"

	"github.com/artpar/ttdeploy/internal/core/domain"
)

// Region represents a cloud provider region.
type Region struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// ContainerSize is one CPU and memory combination accepted by the
// Container Apps consumption profile.
type ContainerSize struct {
	CPUCores  float64 `json:"cpu_cores"`
	MemoryGiB float64 `json:"memory_gib"`
}

func (s ContainerSize) String() string {
	return fmt.Sprintf("%g vCPU / %gGi", s.CPUCores, s.MemoryGiB)
}

// =============================================================================
// Azure Container Apps Catalog
// =============================================================================

// ContainerAppsRegions returns the commonly used regions offering Container Apps.
func ContainerAppsRegions() []Region {
	return []Region{
		{ID: "japaneast", Name: "Japan East", Available: true},
		{ID: "japanwest", Name: "Japan West", Available: true},
		{ID: "eastasia", Name: "East Asia", Available: true},
		{ID: "southeastasia", Name: "Southeast Asia", Available: true},
		{ID: "koreacentral", Name: "Korea Central", Available: true},
		{ID: "australiaeast", Name: "Australia East", Available: true},
		{ID: "centralindia", Name: "Central India", Available: true},
		{ID: "eastus", Name: "East US", Available: true},
		{ID: "eastus2", Name: "East US 2", Available: true},
		{ID: "westus2", Name: "West US 2", Available: true},
		{ID: "westus3", Name: "West US 3", Available: true},
		{ID: "centralus", Name: "Central US", Available: true},
		{ID: "canadacentral", Name: "Canada Central", Available: true},
		{ID: "brazilsouth", Name: "Brazil South", Available: true},
		{ID: "northeurope", Name: "North Europe", Available: true},
		{ID: "westeurope", Name: "West Europe", Available: true},
		{ID: "uksouth", Name: "UK South", Available: true},
		{ID: "francecentral", Name: "France Central", Available: true},
		{ID: "germanywestcentral", Name: "Germany West Central", Available: true},
		{ID: "swedencentral", Name: "Sweden Central", Available: true},
	}
}

// ContainerAppsSizes returns the consumption profile CPU/memory combinations.
// Memory is always twice the CPU count.
func ContainerAppsSizes() []ContainerSize {
	sizes := make([]ContainerSize, 0, 16)
	for quarter := 1; quarter <= 16; quarter++ {
		cpu := float64(quarter) * 0.25
		sizes = append(sizes, ContainerSize{CPUCores: cpu, MemoryGiB: cpu * 2})
	}
	return sizes
}

// =============================================================================
// Catalog Lookup
// =============================================================================

// LookupRegion returns the region with the given ID, or nil if not found.
// The comparison is case-insensitive.
func LookupRegion(id string) *Region {
	for _, r := range ContainerAppsRegions() {
		if strings.EqualFold(r.ID, id) {
			return &r
		}
	}
	return nil
}

// LookupSize returns the catalog size matching spec, or nil if not found.
func LookupSize(spec domain.ResourceSpec) *ContainerSize {
	for _, s := range ContainerAppsSizes() {
		if nearlyEqual(s.CPUCores, spec.CPUCores) && nearlyEqual(s.MemoryGiB, spec.MemoryGiB) {
			return &s
		}
	}
	return nil
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// =============================================================================
// Advisory Checks
// =============================================================================

// Warnings returns advisory messages for a location and sizing that the
// Container Apps consumption profile may reject. An empty result means
// nothing looks unusual. These never block a deployment.
//
// Example:
//
//	for _, w := range provider.Warnings(opts.Location, opts.Sizing) {
//	    logger.Warn(w)
//	}
func Warnings(location string, sizing domain.Sizing) []string {
	var out []string
	if LookupRegion(location) == nil {
		out = append(out, fmt.Sprintf("location %q is not in the known Container Apps region list", location))
	}

	checks := []struct {
		name string
		spec domain.ResourceSpec
	}{
		{"app", sizing.App},
		{"db", sizing.DB},
		{"cache", sizing.Cache},
	}
	for _, c := range checks {
		if LookupSize(c.spec) == nil {
			out = append(out, fmt.Sprintf(
				"%s size %g vCPU / %gGi is not a standard consumption size (use 0.25 vCPU steps with 2Gi per vCPU)",
				c.name, c.spec.CPUCores, c.spec.MemoryGiB))
		}
	}
	return out
}
