package deployment

import (
	"strconv"

	"github.com/artpar/ttdeploy/internal/core/domain"
)

// =============================================================================
// Live Deployment Planning
// =============================================================================

// Container names inside the apps.
const (
	DatabaseContainerName    = "timetracker-db"
	CacheContainerName       = "timetracker-redis"
	ApplicationContainerName = "timetracker"
)

// ApplicationListenURL is the address the application binds inside its container.
const ApplicationListenURL = "http://0.0.0.0:8080"

// BuildPlan turns validated options into the database, cache and
// application app plans. Every engine-derived value comes from the same
// profile the dry-run artifacts use.
//
// Passwords never appear as plain env values: they are app secrets
// referenced by name.
//
// Example:
//
//	plan := BuildPlan(opts, runID)
//	plan.EnvironmentName // "timetracker-env"
//	plan.Apps[0].Name    // "timetracker-db"
func BuildPlan(o domain.Options, runID string) Plan {
	p := o.Profile()

	dbName := DatabaseAppName(o.AppName)
	cacheName := CacheAppName(o.AppName)
	appName := ApplicationAppName(o.AppName)

	labels := func(role Role) map[string]string {
		return map[string]string{
			LabelManaged: "true",
			LabelApp:     o.AppName,
			LabelRole:    string(role),
			LabelRun:     runID,
		}
	}

	db := AppPlan{
		Role: RoleDatabase,
		Name: dbName,
		Container: ContainerPlan{
			Name:      DatabaseContainerName,
			Image:     p.Image,
			Env:       databaseEnv(o, p),
			CPUCores:  o.Sizing.DB.CPUCores,
			MemoryGiB: o.Sizing.DB.MemoryGiB,
			Volume:    &VolumePlan{Name: VolumeName(o.AppName, p.VolumeName), Target: p.VolumeTarget},
		},
		Ingress: IngressPlan{
			External:    false,
			TargetPort:  p.Port,
			ExposedPort: p.Port,
			Transport:   TransportTCP,
		},
		Secrets:     []SecretPlan{{Name: SecretDBPassword, Value: o.DBPassword}},
		MinReplicas: 1,
		MaxReplicas: 1,
		Labels:      labels(RoleDatabase),
	}

	cache := AppPlan{
		Role: RoleCache,
		Name: cacheName,
		Container: ContainerPlan{
			Name:      CacheContainerName,
			Image:     domain.CacheImage,
			Args:      domain.CacheArgs(),
			CPUCores:  o.Sizing.Cache.CPUCores,
			MemoryGiB: o.Sizing.Cache.MemoryGiB,
			Volume:    &VolumePlan{Name: VolumeName(o.AppName, domain.CacheVolumeName), Target: domain.CacheVolumeTarget},
		},
		Ingress: IngressPlan{
			External:    false,
			TargetPort:  domain.CachePort,
			ExposedPort: domain.CachePort,
			Transport:   TransportTCP,
		},
		MinReplicas: 1,
		MaxReplicas: 1,
		Labels:      labels(RoleCache),
	}

	app := AppPlan{
		Role: RoleApplication,
		Name: appName,
		Container: ContainerPlan{
			Name:      ApplicationContainerName,
			Image:     domain.ApplicationImage(o.ImageTag),
			Env:       applicationEnv(o, p, dbName, cacheName),
			CPUCores:  o.Sizing.App.CPUCores,
			MemoryGiB: o.Sizing.App.MemoryGiB,
		},
		Ingress: IngressPlan{
			External:   true,
			TargetPort: domain.ApplicationPort,
			Transport:  TransportAuto,
		},
		Secrets: []SecretPlan{
			{Name: SecretDBPassword, Value: o.DBPassword},
			{Name: SecretAppPassword, Value: o.TrackerPassword},
		},
		MinReplicas: 1,
		MaxReplicas: 1,
		DependsOn:   []string{dbName, cacheName},
		Labels:      labels(RoleApplication),
	}

	return Plan{
		RunID:           runID,
		SubscriptionID:  o.SubscriptionID,
		ResourceGroup:   o.ResourceGroup,
		Location:        o.Location,
		EnvironmentName: EnvironmentName(o.AppName),
		Apps:            TopologicalSort([]AppPlan{db, cache, app}),
		Tags: map[string]string{
			LabelManaged: "true",
			LabelApp:     o.AppName,
			LabelRun:     runID,
		},
	}
}

func databaseEnv(o domain.Options, p domain.EngineProfile) []EnvVar {
	env := make([]EnvVar, 0, len(p.Env))
	for _, e := range p.Env {
		switch e.Source {
		case domain.SourceDBUser:
			env = append(env, EnvVar{Name: e.Name, Value: p.User})
		case domain.SourceDBPassword:
			env = append(env, EnvVar{Name: e.Name, SecretRef: SecretDBPassword})
		case domain.SourceDBName:
			env = append(env, EnvVar{Name: e.Name, Value: o.DBName})
		default:
			env = append(env, EnvVar{Name: e.Name, Value: e.Literal})
		}
	}
	return env
}

func applicationEnv(o domain.Options, p domain.EngineProfile, dbHost, cacheHost string) []EnvVar {
	port := strconv.Itoa(p.Port)
	cache := HostPort(cacheHost, domain.CachePort)
	return []EnvVar{
		{Name: "ASPNETCORE_URLS", Value: ApplicationListenURL},
		{Name: "TTNX_DB_TYPE", Value: p.AppDBType},
		{Name: "TTNX_DB_SERVER", Value: HostPort(dbHost, p.Port)},
		{Name: "TTNX_DB_USER", Value: p.User},
		{Name: "TTNX_DB_PASSWORD", SecretRef: SecretDBPassword},
		{Name: "TTNX_DB_NAME", Value: o.DBName},
		{Name: "TTNX_DB_PORT", Value: port},
		{Name: "TTNX_DB_OPTIONS", Value: ""},
		{Name: "TTNX_REDIS_GLOBALCACHE", Value: cache},
		{Name: "TTNX_REDIS_HANGFIRE", Value: cache},
		{Name: "TTNX_REDIS_BACKGROUNDJOB", Value: cache},
		// Compatibility variables, same names as the compose manifest
		{Name: "DB_HOST", Value: dbHost},
		{Name: "DB_PORT", Value: port},
		{Name: "DB_USER", Value: p.User},
		{Name: "DB_PASSWORD", SecretRef: SecretDBPassword},
		{Name: "DB_NAME", Value: o.DBName},
		{Name: "REDIS_HOST", Value: cacheHost},
		{Name: "REDIS_PORT", Value: strconv.Itoa(domain.CachePort)},
		{Name: "APP_PASSWORD", SecretRef: SecretAppPassword},
	}
}
