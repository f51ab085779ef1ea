package domain

// =============================================================================
// Defaults
// =============================================================================

// Defaults holds the values used when an input is not supplied.
// It is passed in explicitly so tests and config files can replace it.
type Defaults struct {
	Location           string
	AppName            string
	DBEngine           Engine
	DBName             string
	ImageTag           string
	AuthMode           AuthMode
	Sizing             Sizing
	OutputManifestPath string
}

// StandardDefaults returns the built-in defaults.
func StandardDefaults() Defaults {
	return Defaults{
		Location: "japaneast",
		AppName:  "TimeTracker",
		DBEngine: EnginePostgres,
		DBName:   "timetracker",
		ImageTag: "latest",
		AuthMode: AuthDefault,
		Sizing: Sizing{
			App:   ResourceSpec{CPUCores: 0.5, MemoryGiB: 1.0},
			DB:    ResourceSpec{CPUCores: 0.5, MemoryGiB: 1.0},
			Cache: ResourceSpec{CPUCores: 0.25, MemoryGiB: 0.5},
		},
		OutputManifestPath: "./docker-compose.yml",
	}
}
