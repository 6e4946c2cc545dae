package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockConfigDir points the loader at a temp directory for the duration
// of a test.
func mockConfigDir(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	original := osUserConfigDir
	t.Cleanup(func() { osUserConfigDir = original })
	osUserConfigDir = func() (string, error) { return tempDir, nil }

	return tempDir
}

func TestLoad_MissingFileReturnsEmptyRegistry(t *testing.T) {
	mockConfigDir(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Forwards)
}

func TestLoadSave_RoundTrip(t *testing.T) {
	mockConfigDir(t)

	pid := 4242
	cfg := New()
	cfg.AddForward(PortForward{
		ID:         ForwardID("user@h.example", 8080, 80),
		Host:       "user@h.example",
		LocalPort:  8080,
		RemotePort: 80,
		PID:        &pid,
	})
	cfg.AddForward(PortForward{
		ID:         ForwardID("h.example", 3000, 3000),
		Host:       "h.example",
		LocalPort:  3000,
		RemotePort: 3000,
	})
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.Forwards, loaded.Forwards)
}

func TestSave_CreatesParentDirectories(t *testing.T) {
	tempDir := mockConfigDir(t)

	require.NoError(t, New().Save())

	_, err := os.Stat(filepath.Join(tempDir, configDirName, configFileName))
	assert.NoError(t, err)
}

func TestSave_PrettyPrints(t *testing.T) {
	tempDir := mockConfigDir(t)

	cfg := New()
	cfg.AddForward(PortForward{ID: "h_1_2", Host: "h", LocalPort: 1, RemotePort: 2})
	require.NoError(t, cfg.Save())

	data, err := os.ReadFile(filepath.Join(tempDir, configDirName, configFileName))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "\n  \"forwards\""), "expected indented output, got: %s", data)
}

func TestLoad_CorruptFileFails(t *testing.T) {
	tempDir := mockConfigDir(t)

	confDir := filepath.Join(tempDir, configDirName)
	require.NoError(t, os.MkdirAll(confDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, configFileName), []byte("{not json"), 0o644))

	_, err := Load()
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoad_NullPid(t *testing.T) {
	tempDir := mockConfigDir(t)

	confDir := filepath.Join(tempDir, configDirName)
	require.NoError(t, os.MkdirAll(confDir, 0o755))
	raw := `{"forwards":{"h_1_2":{"id":"h_1_2","host":"h","local_port":1,"remote_port":2,"pid":null}}}`
	require.NoError(t, os.WriteFile(filepath.Join(confDir, configFileName), []byte(raw), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Contains(t, cfg.Forwards, "h_1_2")
	assert.Nil(t, cfg.Forwards["h_1_2"].PID)
}

func TestLoad_RejectsOutOfRangeFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			"negative pid",
			`{"forwards":{"h_1_2":{"id":"h_1_2","host":"h","local_port":1,"remote_port":2,"pid":-1}}}`,
		},
		{
			"negative group pid",
			`{"forwards":{"h_1_2":{"id":"h_1_2","host":"h","local_port":1,"remote_port":2,"pid":-4242}}}`,
		},
		{
			"zero local port",
			`{"forwards":{"h_0_2":{"id":"h_0_2","host":"h","local_port":0,"remote_port":2,"pid":null}}}`,
		},
		{
			"local port too large",
			`{"forwards":{"h_70000_2":{"id":"h_70000_2","host":"h","local_port":70000,"remote_port":2,"pid":null}}}`,
		},
		{
			"zero remote port",
			`{"forwards":{"h_1_0":{"id":"h_1_0","host":"h","local_port":1,"remote_port":0,"pid":null}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := mockConfigDir(t)

			confDir := filepath.Join(tempDir, configDirName)
			require.NoError(t, os.MkdirAll(confDir, 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(confDir, configFileName), []byte(tt.raw), 0o644))

			_, err := Load()
			assert.ErrorContains(t, err, "failed to parse config file")
		})
	}
}

func TestLoad_NonNegativePidAccepted(t *testing.T) {
	tempDir := mockConfigDir(t)

	confDir := filepath.Join(tempDir, configDirName)
	require.NoError(t, os.MkdirAll(confDir, 0o755))
	raw := `{"forwards":{"h_1_2":{"id":"h_1_2","host":"h","local_port":1,"remote_port":2,"pid":4242}}}`
	require.NoError(t, os.WriteFile(filepath.Join(confDir, configFileName), []byte(raw), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.Forwards["h_1_2"].PID)
	assert.Equal(t, 4242, *cfg.Forwards["h_1_2"].PID)
}

func TestLoad_EmptyObjectGetsUsableMap(t *testing.T) {
	tempDir := mockConfigDir(t)

	confDir := filepath.Join(tempDir, configDirName)
	require.NoError(t, os.MkdirAll(confDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, configFileName), []byte(`{}`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.Forwards)

	// The map must accept inserts right away.
	cfg.AddForward(PortForward{ID: "h_1_2"})
	assert.Len(t, cfg.Forwards, 1)
}
