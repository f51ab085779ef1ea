package domain

import "strings"

// =============================================================================
// Database Engine
// =============================================================================

// Engine identifies the database backend deployed next to the application.
// The set is closed: only the constants below are supported.
type Engine string

const (
	EnginePostgres  Engine = "postgres"
	EngineSQLServer Engine = "sqlserver"
)

// Engines returns the supported engines in their canonical order.
func Engines() []Engine {
	return []Engine{EnginePostgres, EngineSQLServer}
}

// NormalizeEngine maps user input onto the canonical engine spelling.
// Unknown values are returned lowercased so validation can report them.
//
// Example:
//
//	NormalizeEngine("PostgreSQL") // returns EnginePostgres
//	NormalizeEngine("mssql")      // returns EngineSQLServer
//	NormalizeEngine("mysql")      // returns Engine("mysql"), Valid() == false
func NormalizeEngine(s string) Engine {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "postgres", "postgresql":
		return EnginePostgres
	case "sqlserver", "mssql":
		return EngineSQLServer
	default:
		return Engine(v)
	}
}

// Valid reports whether e is one of the supported engines.
func (e Engine) Valid() bool {
	_, ok := engineProfiles[e]
	return ok
}

func (e Engine) String() string {
	return string(e)
}

// =============================================================================
// Engine Profiles
// =============================================================================

// EnvSource names where the value of a database service variable comes from.
type EnvSource int

const (
	SourceLiteral EnvSource = iota
	SourceDBUser
	SourceDBPassword
	SourceDBName
)

// ServiceEnv is one environment entry of the database service.
// Literal is used only when Source is SourceLiteral.
type ServiceEnv struct {
	Name    string
	Source  EnvSource
	Literal string
}

// EngineProfile carries every value derived from the engine choice.
// None of these are user supplied.
type EngineProfile struct {
	Engine        Engine
	AppDBType     string // database type name understood by the application image
	User          string
	Port          int
	Image         string
	ContainerName string
	VolumeName    string
	VolumeTarget  string
	PublishPort   bool
	TagMarkers    []string
	Env           []ServiceEnv
}

// Fixed service accounts, matching the images' quick start setup.
const (
	DBUserPostgres  = "postgres"
	DBUserSQLServer = "sa"
)

var engineProfiles = map[Engine]EngineProfile{
	EnginePostgres: {
		Engine:        EnginePostgres,
		AppDBType:     "postgresql",
		User:          DBUserPostgres,
		Port:          5432,
		Image:         "postgres:16-alpine",
		ContainerName: "timetracker-postgres",
		VolumeName:    "pgdata",
		VolumeTarget:  "/var/lib/postgresql/data",
		TagMarkers:    []string{"postgres"},
		Env: []ServiceEnv{
			{Name: "POSTGRES_USER", Source: SourceDBUser},
			{Name: "POSTGRES_PASSWORD", Source: SourceDBPassword},
			{Name: "POSTGRES_DB", Source: SourceDBName},
		},
	},
	EngineSQLServer: {
		Engine:        EngineSQLServer,
		AppDBType:     "sqlserver",
		User:          DBUserSQLServer,
		Port:          1433,
		Image:         "mcr.microsoft.com/mssql/server:2022-latest",
		ContainerName: "timetracker-sqlserver",
		VolumeName:    "mssqldata",
		VolumeTarget:  "/var/opt/mssql",
		PublishPort:   true,
		TagMarkers:    []string{"mssql", "sqlserver"},
		Env: []ServiceEnv{
			{Name: "ACCEPT_EULA", Source: SourceLiteral, Literal: "Y"},
			{Name: "MSSQL_PID", Source: SourceLiteral, Literal: "Developer"},
			{Name: "SA_PASSWORD", Source: SourceDBPassword},
		},
	},
}

// Profile returns the derived values for e. ok is false for unsupported engines.
func (e Engine) Profile() (EngineProfile, bool) {
	p, ok := engineProfiles[e]
	return p, ok
}

// MustProfile returns the profile for e and panics on an unsupported engine.
// Callers must have validated the options first.
func (e Engine) MustProfile() EngineProfile {
	p, ok := engineProfiles[e]
	if !ok {
		panic("domain: unsupported engine " + string(e))
	}
	return p
}

// MatchesTag reports whether tag contains one of this engine's markers.
// The comparison is case-insensitive.
func (p EngineProfile) MatchesTag(tag string) bool {
	lower := strings.ToLower(tag)
	for _, marker := range p.TagMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// TagNamesEngine reports whether tag carries the marker of any supported
// engine. Bare version tags such as "1.2.3" or "latest" name no engine.
func TagNamesEngine(tag string) bool {
	for _, p := range engineProfiles {
		if p.MatchesTag(tag) {
			return true
		}
	}
	return false
}

// =============================================================================
// Cache and Application Constants
// =============================================================================

const (
	ApplicationImageRepository = "densocreate/timetracker"
	ApplicationContainerName   = "timetracker-app"
	ApplicationPort            = 8080

	CacheImage         = "redis:7-alpine"
	CacheContainerName = "timetracker-redis"
	CachePort          = 6379
	CacheVolumeName    = "redisdata"
	CacheVolumeTarget  = "/data"
)

// CacheArgs are the cache startup arguments enabling append-only persistence.
func CacheArgs() []string {
	return []string{"redis-server", "--appendonly", "yes"}
}

// ApplicationImage returns the application image reference for tag.
func ApplicationImage(tag string) string {
	return ApplicationImageRepository + ":" + tag
}
