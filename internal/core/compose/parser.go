package compose

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/compose-spec/compose-go/v2/dotenv"
	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

// projectName is the compose project name used when loading in memory.
const projectName = "ttdeploy"

// =============================================================================
// Parser Functions
// =============================================================================

// ParseManifest loads a compose manifest into a ParsedManifest, resolving
// ${VAR} references against env.
// This is a pure function - no I/O, no side effects.
func ParseManifest(yamlContent string, env map[string]string) (*ParsedManifest, error) {
	if strings.TrimSpace(yamlContent) == "" {
		return nil, ErrEmptyInput
	}

	project, err := loadProject(yamlContent, env)
	if err != nil {
		return nil, err
	}

	if len(project.Services) == 0 {
		return nil, ErrNoServices
	}

	m := &ParsedManifest{
		Services: make([]Service, 0, len(project.Services)),
		Volumes:  make([]Volume, 0, len(project.Volumes)),
	}

	for _, svc := range project.Services {
		converted, err := convertService(svc)
		if err != nil {
			return nil, err
		}
		m.Services = append(m.Services, converted)
	}
	sort.Slice(m.Services, func(i, j int) bool { return m.Services[i].Name < m.Services[j].Name })

	if err := detectCircularDependencies(m.Services); err != nil {
		return nil, err
	}
	if err := validatePorts(m.Services); err != nil {
		return nil, err
	}

	for name, vol := range project.Volumes {
		m.Volumes = append(m.Volumes, Volume{
			Name:     name,
			Driver:   vol.Driver,
			External: bool(vol.External),
		})
	}
	sort.Slice(m.Volumes, func(i, j int) bool { return m.Volumes[i].Name < m.Volumes[j].Name })

	return m, nil
}

// loadProject loads a compose manifest using compose-go.
func loadProject(yamlContent string, env map[string]string) (*types.Project, error) {
	var dict map[string]interface{}
	if err := yaml.Unmarshal([]byte(yamlContent), &dict); err != nil {
		return nil, NewParseError("", "invalid YAML syntax: "+err.Error(), ErrInvalidYAML)
	}
	if dict == nil {
		return nil, NewParseError("", "manifest is not a YAML mapping", ErrInvalidYAML)
	}

	environment := types.Mapping{}
	for k, v := range env {
		environment[k] = v
	}

	project, err := loader.LoadWithContext(context.Background(), types.ConfigDetails{
		ConfigFiles: []types.ConfigFile{
			{
				Content: []byte(yamlContent),
				Config:  dict,
			},
		},
		Environment: environment,
	}, func(opts *loader.Options) {
		opts.SetProjectName(projectName, false)
		opts.SkipValidation = false
		opts.SkipInterpolation = false
		opts.SkipNormalization = true
		opts.SkipExtends = true
	})
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "dependency cycle detected") {
			return nil, NewParseError("", "circular dependency detected", ErrCircularDependency)
		}
		return nil, NewParseError("", errStr, ErrInvalidYAML)
	}

	return project, nil
}

// convertService converts a compose-go service to our Service type.
func convertService(svc types.ServiceConfig) (Service, error) {
	service := Service{
		Name:          svc.Name,
		Image:         svc.Image,
		ContainerName: svc.ContainerName,
		Command:       svc.Command,
		Environment:   make(map[string]string),
		DependsOn:     make([]string, 0, len(svc.DependsOn)),
		Restart:       RestartPolicy(svc.Restart),
	}

	if service.Image == "" {
		return Service{}, NewParseError("services."+svc.Name, "service must have an image", ErrServiceNoImage)
	}

	for _, p := range svc.Ports {
		var published uint32
		if p.Published != "" {
			if pub, err := strconv.ParseUint(p.Published, 10, 32); err == nil {
				published = uint32(pub)
			}
		}
		service.Ports = append(service.Ports, Port{
			Target:    p.Target,
			Published: published,
			Protocol:  p.Protocol,
		})
	}

	for k, v := range svc.Environment {
		if v != nil {
			service.Environment[k] = *v
		}
	}

	for _, v := range svc.Volumes {
		mount := VolumeMount{
			Source:   v.Source,
			Target:   v.Target,
			ReadOnly: v.ReadOnly,
		}
		switch v.Type {
		case "bind":
			mount.Type = VolumeMountTypeBind
		case "volume":
			mount.Type = VolumeMountTypeVolume
		case "tmpfs":
			mount.Type = VolumeMountTypeTmpfs
		default:
			if strings.HasPrefix(v.Source, "./") || strings.HasPrefix(v.Source, "/") || strings.HasPrefix(v.Source, "~") {
				mount.Type = VolumeMountTypeBind
			} else {
				mount.Type = VolumeMountTypeVolume
			}
		}
		service.Volumes = append(service.Volumes, mount)
	}

	for dep := range svc.DependsOn {
		service.DependsOn = append(service.DependsOn, dep)
	}
	sort.Strings(service.DependsOn)

	return service, nil
}

// detectCircularDependencies detects circular dependencies in service dependencies.
func detectCircularDependencies(services []Service) error {
	deps := make(map[string][]string)
	for _, svc := range services {
		deps[svc.Name] = svc.DependsOn
	}

	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	var hasCycle func(node string) bool
	hasCycle = func(node string) bool {
		visited[node] = true
		recStack[node] = true

		for _, dep := range deps[node] {
			if dep == node {
				return true
			}
			if !visited[dep] {
				if hasCycle(dep) {
					return true
				}
			} else if recStack[dep] {
				return true
			}
		}

		recStack[node] = false
		return false
	}

	for _, svc := range services {
		if !visited[svc.Name] && hasCycle(svc.Name) {
			return ErrCircularDependency
		}
	}
	return nil
}

// validatePorts validates all port configurations.
func validatePorts(services []Service) error {
	for _, svc := range services {
		for i, port := range svc.Ports {
			field := fmt.Sprintf("services.%s.ports[%d]", svc.Name, i)
			if port.Target == 0 {
				return NewParseError(field, "target port cannot be 0", ErrServiceInvalidPort)
			}
			if port.Target > 65535 {
				return NewParseError(field, "target port must be <= 65535", ErrServiceInvalidPort)
			}
			if port.Published > 65535 {
				return NewParseError(field, "published port must be <= 65535", ErrServiceInvalidPort)
			}
		}
	}
	return nil
}

// =============================================================================
// Env File Parsing
// =============================================================================

// ParseEnvFile parses KEY=VALUE content with the compose dotenv rules.
// Values are not expanded against the process environment.
func ParseEnvFile(content string) (map[string]string, error) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	env, err := dotenv.ParseWithLookup(strings.NewReader(normalized), func(string) (string, bool) {
		return "", false
	})
	if err != nil {
		return nil, NewParseError("", err.Error(), ErrInvalidEnv)
	}
	return env, nil
}

// =============================================================================
// Variable Extraction
// =============================================================================

// variablePlaceholderRegex matches ${VAR_NAME} or ${VAR_NAME:-default}
var variablePlaceholderRegex = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-[^}]*)?\}`)

// ExtractVariablesFromYAML extracts environment variable placeholders from raw YAML content.
// Returns unique variable names without the ${} wrapper, in order of first use.
func ExtractVariablesFromYAML(yamlContent string) []string {
	seen := make(map[string]bool)
	var vars []string

	for _, match := range variablePlaceholderRegex.FindAllStringSubmatch(yamlContent, -1) {
		if len(match) < 2 {
			continue
		}
		if name := match[1]; !seen[name] {
			seen[name] = true
			vars = append(vars, name)
		}
	}
	return vars
}
