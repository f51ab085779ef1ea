package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// NormalizeEngine Tests
// =============================================================================

func TestNormalizeEngine_TableDriven(t *testing.T) {
	tests := []struct {
		input string
		want  Engine
		valid bool
	}{
		{"postgres", EnginePostgres, true},
		{"PostgreSQL", EnginePostgres, true},
		{" postgresql ", EnginePostgres, true},
		{"sqlserver", EngineSQLServer, true},
		{"SQLServer", EngineSQLServer, true},
		{"mssql", EngineSQLServer, true},
		{"mysql", Engine("mysql"), false},
		{"", Engine(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeEngine(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, got.Valid())
		})
	}
}

// =============================================================================
// Profile Tests
// =============================================================================

func TestProfile_Postgres(t *testing.T) {
	p, ok := EnginePostgres.Profile()
	require.True(t, ok)

	assert.Equal(t, "postgres", p.User)
	assert.Equal(t, 5432, p.Port)
	assert.Equal(t, "pgdata", p.VolumeName)
	assert.False(t, p.PublishPort)
}

func TestProfile_SQLServer(t *testing.T) {
	p, ok := EngineSQLServer.Profile()
	require.True(t, ok)

	assert.Equal(t, "sa", p.User)
	assert.Equal(t, 1433, p.Port)
	assert.Equal(t, "mssqldata", p.VolumeName)
	assert.True(t, p.PublishPort)
}

func TestProfile_Unsupported(t *testing.T) {
	_, ok := Engine("oracle").Profile()
	assert.False(t, ok)
	assert.Panics(t, func() { Engine("oracle").MustProfile() })
}

func TestProfile_EveryEngineHasProfile(t *testing.T) {
	for _, e := range Engines() {
		p, ok := e.Profile()
		require.True(t, ok, "engine %s", e)
		assert.Equal(t, e, p.Engine)
		assert.NotEmpty(t, p.User)
		assert.NotZero(t, p.Port)
		assert.NotEmpty(t, p.TagMarkers)
	}
}

func TestMatchesTag(t *testing.T) {
	pg := EnginePostgres.MustProfile()
	ms := EngineSQLServer.MustProfile()

	assert.True(t, pg.MatchesTag("7.0-linux-postgres"))
	assert.True(t, pg.MatchesTag("7.0-LINUX-POSTGRES"))
	assert.False(t, pg.MatchesTag("1.2.3"))

	assert.True(t, ms.MatchesTag("7.0-linux-mssql"))
	assert.True(t, ms.MatchesTag("7.0-SqlServer"))
	assert.False(t, ms.MatchesTag("7.0-linux-postgres"))
}

func TestTagNamesEngine(t *testing.T) {
	assert.True(t, TagNamesEngine("7.0-linux-postgres"))
	assert.True(t, TagNamesEngine("7.0-linux-mssql"))
	assert.True(t, TagNamesEngine("8.1-SQLSERVER"))
	assert.False(t, TagNamesEngine("1.2.3"))
	assert.False(t, TagNamesEngine("latest"))
}

func TestApplicationImage(t *testing.T) {
	assert.Equal(t, "densocreate/timetracker:1.2.3", ApplicationImage("1.2.3"))
}

// =============================================================================
// AuthMode Tests
// =============================================================================

func TestParseAuthMode(t *testing.T) {
	for _, m := range AuthModes() {
		got, err := ParseAuthMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	got, err := ParseAuthMode("Device-Code")
	require.NoError(t, err)
	assert.Equal(t, AuthDeviceCode, got)

	_, err = ParseAuthMode("kerberos")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "managed-identity")
}

// =============================================================================
// Options Tests
// =============================================================================

func TestNewOptions_FromStandardDefaults(t *testing.T) {
	opts := NewOptions(StandardDefaults())

	assert.Equal(t, "japaneast", opts.Location)
	assert.Equal(t, "timetracker", opts.AppName)
	assert.Equal(t, EnginePostgres, opts.DBEngine)
	assert.Equal(t, "timetracker", opts.DBName)
	assert.Equal(t, "latest", opts.ImageTag)
	assert.Equal(t, AuthDefault, opts.AuthMode)
	assert.Equal(t, "./docker-compose.yml", opts.OutputManifestPath)
	assert.Equal(t, 0.25, opts.Sizing.Cache.CPUCores)
	assert.Equal(t, 0.5, opts.Sizing.Cache.MemoryGiB)
}

func TestNewOptions_CustomDefaults(t *testing.T) {
	d := StandardDefaults()
	d.Location = "westeurope"
	d.AppName = "Billing"

	opts := NewOptions(d)
	assert.Equal(t, "westeurope", opts.Location)
	assert.Equal(t, "billing", opts.AppName)
	// StandardDefaults is unaffected
	assert.Equal(t, "japaneast", StandardDefaults().Location)
}
