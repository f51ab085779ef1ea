package compose

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"unicode"

	"github.com/artpar/ttdeploy/internal/core/domain"
)

// =============================================================================
// Artifact Names and Variables
// =============================================================================

// EnvFileName is the fixed name of the env artifact, written next to the manifest.
const EnvFileName = ".env"

// Variables defined by the env file and referenced by the manifest.
const (
	VarDBPort      = "DB_PORT"
	VarDBUser      = "DB_USER"
	VarDBPassword  = "DB_PASSWORD"
	VarDBName      = "DB_NAME"
	VarAppPassword = "TIMETRACKER_PASSWORD"
)

// Service names inside the manifest. They double as hostnames on the
// compose network.
const (
	ServiceApp   = "timetracker"
	ServiceDB    = "db"
	ServiceCache = "redis"
)

// ManifestVersion is the compose file format version written to the manifest.
const ManifestVersion = "3.9"

// =============================================================================
// Manifest Generator
// =============================================================================

// GenerateManifest renders the three-service compose manifest for o.
// Literal secrets never appear in the output: the manifest holds ${VAR}
// references that the env file resolves.
// The result is byte-identical for identical options.
//
// o must have passed validation; an unsupported engine panics.
func GenerateManifest(o domain.Options) string {
	p := o.Profile()

	var b strings.Builder
	line := func(indent int, s string) {
		b.WriteString(strings.Repeat("  ", indent))
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(0, fmt.Sprintf("version: '%s'", ManifestVersion))
	line(0, "services:")

	// Application
	line(1, ServiceApp+":")
	line(2, "image: "+domain.ApplicationImage(o.ImageTag))
	line(2, "container_name: "+domain.ApplicationContainerName)
	line(2, "depends_on:")
	line(3, "- "+ServiceDB)
	line(3, "- "+ServiceCache)
	line(2, "ports:")
	line(3, fmt.Sprintf("- \"%d:%d\"", domain.ApplicationPort, domain.ApplicationPort))
	line(2, "environment:")
	for _, kv := range ApplicationManifestEnv() {
		line(3, "- "+kv)
	}
	line(2, "restart: "+string(RestartUnlessStopped))

	// Database
	line(1, ServiceDB+":")
	line(2, "image: "+p.Image)
	line(2, "container_name: "+p.ContainerName)
	line(2, "environment:")
	for _, e := range p.Env {
		line(3, "- "+e.Name+"="+manifestValue(e))
	}
	if p.PublishPort {
		line(2, "ports:")
		line(3, fmt.Sprintf("- '%d:%d'", p.Port, p.Port))
	}
	line(2, "volumes:")
	line(3, "- "+p.VolumeName+":"+p.VolumeTarget)
	line(2, "restart: "+string(RestartUnlessStopped))

	// Cache
	line(1, ServiceCache+":")
	line(2, "image: "+domain.CacheImage)
	line(2, "container_name: "+domain.CacheContainerName)
	line(2, "command: "+flowSequence(domain.CacheArgs()))
	line(2, "volumes:")
	line(3, "- "+domain.CacheVolumeName+":"+domain.CacheVolumeTarget)
	line(2, "restart: "+string(RestartUnlessStopped))

	b.WriteByte('\n')
	line(0, "volumes:")
	line(1, p.VolumeName+":")
	line(1, domain.CacheVolumeName+":")

	return b.String()
}

// ApplicationManifestEnv returns the application service environment as
// KEY=value entries, in manifest order.
func ApplicationManifestEnv() []string {
	return []string{
		"DB_HOST=" + ServiceDB,
		"DB_PORT=" + ref(VarDBPort),
		"DB_USER=" + ref(VarDBUser),
		"DB_PASSWORD=" + ref(VarDBPassword),
		"DB_NAME=" + ref(VarDBName),
		"REDIS_HOST=" + ServiceCache,
		"REDIS_PORT=" + strconv.Itoa(domain.CachePort),
		"APP_PASSWORD=" + ref(VarAppPassword),
	}
}

func manifestValue(e domain.ServiceEnv) string {
	switch e.Source {
	case domain.SourceDBUser:
		return ref(VarDBUser)
	case domain.SourceDBPassword:
		return ref(VarDBPassword)
	case domain.SourceDBName:
		return ref(VarDBName)
	default:
		return e.Literal
	}
}

func ref(name string) string {
	return "${" + name + "}"
}

func flowSequence(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// =============================================================================
// Env File Generator
// =============================================================================

// LineEnding is the platform line ending used for the env file.
var LineEnding = lineEndingFor(runtime.GOOS)

func lineEndingFor(goos string) string {
	if goos == "windows" {
		return "\r\n"
	}
	return "\n"
}

// EnvEntry is one KEY=VALUE line of the env file.
type EnvEntry struct {
	Key   string
	Value string
}

// EnvEntries returns the env file entries for o in file order:
// database port, database user, database password, database name,
// application password. Port and user are derived from the engine.
func EnvEntries(o domain.Options) []EnvEntry {
	p := o.Profile()
	return []EnvEntry{
		{VarDBPort, strconv.Itoa(p.Port)},
		{VarDBUser, p.User},
		{VarDBPassword, o.DBPassword},
		{VarDBName, o.DBName},
		{VarAppPassword, o.TrackerPassword},
	}
}

// GenerateEnvFile renders the env file for o using the platform line ending.
// Every line, including the last, is terminated. Values that the compose
// dotenv parser would alter are double quoted (see EnvValue).
//
// Example:
//
//	GenerateEnvFile(opts)
//	// DB_PORT=5432
//	// DB_USER=postgres
//	// DB_PASSWORD="pa\$word #1"
//	// DB_NAME=timetracker
//	// TIMETRACKER_PASSWORD=tt-secret-1
func GenerateEnvFile(o domain.Options) string {
	return GenerateEnvFileWithLineEnding(o, LineEnding)
}

// GenerateEnvFileWithLineEnding is GenerateEnvFile with an explicit line ending.
func GenerateEnvFileWithLineEnding(o domain.Options, eol string) string {
	var b strings.Builder
	for _, e := range EnvEntries(o) {
		b.WriteString(e.Key)
		b.WriteByte('=')
		b.WriteString(EnvValue(e.Value))
		b.WriteString(eol)
	}
	return b.String()
}

// EnvValue formats v as an env file value that the compose dotenv parser
// reads back as exactly v. Plain values are written as is. Anything with
// quotes, '$', '#', a backslash, whitespace or control characters is double
// quoted with backslashes, '"', '$' and line breaks escaped.
//
// Example:
//
//	EnvValue("postgres")   // postgres
//	EnvValue(`pa$s "x"`)   // "pa\$s \"x\""
func EnvValue(v string) string {
	if !needsQuoting(v) {
		return v
	}

	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		switch c := v[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '$':
			b.WriteString(`\$`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuoting(v string) bool {
	if strings.ContainsAny(v, "'\"$#\\`") {
		return true
	}
	for _, r := range v {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return true
		}
	}
	return false
}
