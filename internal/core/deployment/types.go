package deployment

// =============================================================================
// Plan Types
// =============================================================================

// Plan is everything a provisioning backend needs for one deployment.
// This is the pure output of planning, ready for the shell to execute.
type Plan struct {
	RunID           string
	SubscriptionID  string
	ResourceGroup   string
	Location        string
	EnvironmentName string
	Apps            []AppPlan // dependency order: database, cache, application
	Tags            map[string]string
}

// App returns the plan of the app with the given role.
func (p Plan) App(role Role) (AppPlan, bool) {
	for _, a := range p.Apps {
		if a.Role == role {
			return a, true
		}
	}
	return AppPlan{}, false
}

// Role identifies one of the deployed apps.
type Role string

const (
	RoleDatabase    Role = "db"
	RoleCache       Role = "cache"
	RoleApplication Role = "app"
)

// AppPlan is one container app: a single container plus its ingress and scale.
type AppPlan struct {
	Role        Role
	Name        string
	Container   ContainerPlan
	Ingress     IngressPlan
	Secrets     []SecretPlan
	MinReplicas int32
	MaxReplicas int32
	DependsOn   []string // app names
	Labels      map[string]string
}

// ResolvedEnv returns the container environment with secret references
// replaced by their values, in plan order.
func (a AppPlan) ResolvedEnv() []EnvVar {
	secrets := make(map[string]string, len(a.Secrets))
	for _, s := range a.Secrets {
		secrets[s.Name] = s.Value
	}
	out := make([]EnvVar, 0, len(a.Container.Env))
	for _, e := range a.Container.Env {
		if e.SecretRef != "" {
			e = EnvVar{Name: e.Name, Value: secrets[e.SecretRef]}
		}
		out = append(out, e)
	}
	return out
}

// ContainerPlan represents a planned container configuration.
type ContainerPlan struct {
	Name      string
	Image     string
	Args      []string
	Env       []EnvVar
	CPUCores  float64
	MemoryGiB float64
	Volume    *VolumePlan
}

// EnvVar is one container environment variable. Exactly one of Value and
// SecretRef is meaningful; SecretRef names an entry of AppPlan.Secrets.
type EnvVar struct {
	Name      string
	Value     string
	SecretRef string
}

// SecretPlan is a secret stored on the app and referenced by EnvVar.SecretRef.
type SecretPlan struct {
	Name  string
	Value string
}

// VolumePlan represents a planned persistent volume mount.
type VolumePlan struct {
	Name   string
	Target string
}

// Transport is the ingress transport protocol.
type Transport string

const (
	TransportAuto Transport = "auto"
	TransportTCP  Transport = "tcp"
)

// IngressPlan describes how an app is reached. ExposedPort is zero for
// HTTP ingress.
type IngressPlan struct {
	External    bool
	TargetPort  int
	ExposedPort int
	Transport   Transport
}

// =============================================================================
// Labels
// =============================================================================

// Label keys attached to provisioned resources and containers.
const (
	LabelManaged = "ttdeploy.managed"
	LabelApp     = "ttdeploy.app"
	LabelRole    = "ttdeploy.role"
	LabelRun     = "ttdeploy.run"
)

// Secret names used on the container apps.
const (
	SecretDBPassword  = "db-password"
	SecretAppPassword = "app-password"
)
