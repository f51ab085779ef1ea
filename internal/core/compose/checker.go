package compose

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/artpar/ttdeploy/internal/core/domain"
)

// =============================================================================
// Artifact Self-Check
// =============================================================================

// Artifacts is the generated manifest and env file pair.
type Artifacts struct {
	Manifest string
	Env      string
}

// Generate renders both artifacts for o and checks them against each other.
// o must have passed validation.
func Generate(o domain.Options) (Artifacts, error) {
	a := Artifacts{
		Manifest: GenerateManifest(o),
		Env:      GenerateEnvFile(o),
	}
	if err := CheckArtifacts(o, a); err != nil {
		return Artifacts{}, err
	}
	return a, nil
}

// CheckArtifacts loads the manifest through compose-go with the variables
// from the env file and verifies that both describe the same configuration:
//   - every ${VAR} in the manifest is defined by the env file
//   - exactly the application, database and cache services are declared
//   - database port and user seen by the application equal the engine's
//   - passwords and database name read back from the env file, and seen by
//     the application, equal the options
//   - the database image is the engine's image
//   - top-level volumes are the engine volume and the cache volume
//
// It returns an *ArtifactError on the first disagreement.
func CheckArtifacts(o domain.Options, a Artifacts) error {
	p := o.Profile()

	env, err := ParseEnvFile(a.Env)
	if err != nil {
		return newArtifactError("env", "", err.Error(), err)
	}

	for _, name := range ExtractVariablesFromYAML(a.Manifest) {
		if _, ok := env[name]; !ok {
			return newArtifactError("manifest", name,
				fmt.Sprintf("${%s} is not defined in %s", name, EnvFileName), ErrUndefinedVariable)
		}
	}

	wantPort := strconv.Itoa(p.Port)
	if env[VarDBPort] != wantPort {
		return mismatch("env", VarDBPort, wantPort, env[VarDBPort])
	}
	if env[VarDBUser] != p.User {
		return mismatch("env", VarDBUser, p.User, env[VarDBUser])
	}
	if env[VarDBName] != o.DBName {
		return mismatch("env", VarDBName, o.DBName, env[VarDBName])
	}
	if env[VarDBPassword] != o.DBPassword {
		return secretMismatch("env", VarDBPassword)
	}
	if env[VarAppPassword] != o.TrackerPassword {
		return secretMismatch("env", VarAppPassword)
	}

	m, err := ParseManifest(a.Manifest, env)
	if err != nil {
		return newArtifactError("manifest", "", err.Error(), err)
	}

	names := make([]string, 0, len(m.Services))
	for _, s := range m.Services {
		names = append(names, s.Name)
	}
	wantNames := []string{ServiceApp, ServiceDB, ServiceCache}
	sort.Strings(wantNames)
	if strings.Join(names, ",") != strings.Join(wantNames, ",") {
		return mismatch("manifest", "services", strings.Join(wantNames, ","), strings.Join(names, ","))
	}

	app, _ := m.Service(ServiceApp)
	if want := domain.ApplicationImage(o.ImageTag); app.Image != want {
		return mismatch("manifest", "services."+ServiceApp+".image", want, app.Image)
	}
	if got := app.Environment["DB_PORT"]; got != wantPort {
		return mismatch("manifest", "services."+ServiceApp+".environment.DB_PORT", wantPort, got)
	}
	if got := app.Environment["DB_USER"]; got != p.User {
		return mismatch("manifest", "services."+ServiceApp+".environment.DB_USER", p.User, got)
	}
	if got := app.Environment["DB_NAME"]; got != o.DBName {
		return mismatch("manifest", "services."+ServiceApp+".environment.DB_NAME", o.DBName, got)
	}
	if app.Environment["DB_PASSWORD"] != o.DBPassword {
		return secretMismatch("manifest", "services."+ServiceApp+".environment.DB_PASSWORD")
	}
	if app.Environment["APP_PASSWORD"] != o.TrackerPassword {
		return secretMismatch("manifest", "services."+ServiceApp+".environment.APP_PASSWORD")
	}

	db, _ := m.Service(ServiceDB)
	if db.Image != p.Image {
		return mismatch("manifest", "services."+ServiceDB+".image", p.Image, db.Image)
	}

	wantVolumes := []string{p.VolumeName, domain.CacheVolumeName}
	sort.Strings(wantVolumes)
	if got := m.VolumeNames(); strings.Join(got, ",") != strings.Join(wantVolumes, ",") {
		return mismatch("manifest", "volumes", strings.Join(wantVolumes, ","), strings.Join(got, ","))
	}

	return nil
}

func mismatch(artifact, field, want, got string) *ArtifactError {
	return newArtifactError(artifact, field,
		fmt.Sprintf("expected %q, got %q", want, got), ErrArtifactMismatch)
}

// secretMismatch reports a secret that does not read back as given,
// without its value.
func secretMismatch(artifact, field string) *ArtifactError {
	return newArtifactError(artifact, field, "value does not read back as given", ErrArtifactMismatch)
}
