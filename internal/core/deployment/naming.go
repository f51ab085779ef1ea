package deployment

import (
	"fmt"
	"strconv"
)

// =============================================================================
// Resource Naming Functions
// =============================================================================

// EnvironmentName generates the managed environment name of an application.
// Pattern: {appName}-env
//
// Example:
//
//	EnvironmentName("timetracker") // returns "timetracker-env"
func EnvironmentName(appName string) string {
	return fmt.Sprintf("%s-env", appName)
}

// DatabaseAppName generates the database app name. It is also the
// database hostname inside the environment.
// Pattern: {appName}-db
func DatabaseAppName(appName string) string {
	return fmt.Sprintf("%s-db", appName)
}

// CacheAppName generates the cache app name. It is also the cache
// hostname inside the environment.
// Pattern: {appName}-redis
func CacheAppName(appName string) string {
	return fmt.Sprintf("%s-redis", appName)
}

// ApplicationAppName generates the application app name.
// Pattern: {appName}-tt
func ApplicationAppName(appName string) string {
	return fmt.Sprintf("%s-tt", appName)
}

// VolumeName generates a volume name scoped to an application.
// Pattern: {appName}-{volumeName}
//
// Example:
//
//	VolumeName("timetracker", "pgdata") // returns "timetracker-pgdata"
func VolumeName(appName, volumeName string) string {
	return fmt.Sprintf("%s-%s", appName, volumeName)
}

// HostPort joins a host and a port.
func HostPort(host string, port int) string {
	return host + ":" + strconv.Itoa(port)
}

// MemoryQuantity formats a GiB amount the way Container Apps expects it.
//
// Example:
//
//	MemoryQuantity(0.5) // returns "0.5Gi"
//	MemoryQuantity(2)   // returns "2Gi"
func MemoryQuantity(gib float64) string {
	return strconv.FormatFloat(gib, 'f', -1, 64) + "Gi"
}
