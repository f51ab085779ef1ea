package compose

// =============================================================================
// ParsedManifest - Parser Output Type
// =============================================================================

// ParsedManifest is a loaded compose manifest, decoupled from compose-go types.
// Services and Volumes are sorted by name.
type ParsedManifest struct {
	Services []Service `json:"services"`
	Volumes  []Volume  `json:"volumes,omitempty"`
}

// Service looks up a service by name.
func (m *ParsedManifest) Service(name string) (Service, bool) {
	for _, s := range m.Services {
		if s.Name == name {
			return s, true
		}
	}
	return Service{}, false
}

// VolumeNames returns the declared top-level volume names.
func (m *ParsedManifest) VolumeNames() []string {
	names := make([]string, 0, len(m.Volumes))
	for _, v := range m.Volumes {
		names = append(names, v.Name)
	}
	return names
}

// =============================================================================
// Service Types
// =============================================================================

// Service represents a single service definition.
type Service struct {
	Name          string            `json:"name"`
	Image         string            `json:"image"`
	ContainerName string            `json:"container_name,omitempty"`
	Command       []string          `json:"command,omitempty"`
	Ports         []Port            `json:"ports,omitempty"`
	Environment   map[string]string `json:"environment,omitempty"`
	Volumes       []VolumeMount     `json:"volumes,omitempty"`
	DependsOn     []string          `json:"depends_on,omitempty"`
	Restart       RestartPolicy     `json:"restart,omitempty"`
}

// Port represents a port mapping.
type Port struct {
	Target    uint32 `json:"target"`              // Container port
	Published uint32 `json:"published,omitempty"` // Host port (0 = not published)
	Protocol  string `json:"protocol,omitempty"`
}

// VolumeMount represents a volume mount in a service.
type VolumeMount struct {
	Type     VolumeMountType `json:"type"`
	Source   string          `json:"source"`
	Target   string          `json:"target"`
	ReadOnly bool            `json:"readonly"`
}

// VolumeMountType represents the type of volume mount.
type VolumeMountType string

const (
	VolumeMountTypeBind   VolumeMountType = "bind"
	VolumeMountTypeVolume VolumeMountType = "volume"
	VolumeMountTypeTmpfs  VolumeMountType = "tmpfs"
)

// RestartPolicy represents the restart policy.
type RestartPolicy string

const (
	RestartNo            RestartPolicy = "no"
	RestartAlways        RestartPolicy = "always"
	RestartOnFailure     RestartPolicy = "on-failure"
	RestartUnlessStopped RestartPolicy = "unless-stopped"
)

// =============================================================================
// Volume Types
// =============================================================================

// Volume represents a named volume definition.
type Volume struct {
	Name     string `json:"name"`
	Driver   string `json:"driver,omitempty"`
	External bool   `json:"external"`
}
