package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/reftracker/configuration"
)

type trackerSettings struct {
	Deduplicate bool   `koanf:"deduplicate"`
	LockPolicy  string `koanf:"lockpolicy"`
	Workers     int    `koanf:"workers"`
}

func writeFile(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func newConfiguration(t *testing.T) *configuration.Configuration {
	config := configuration.New()
	require.NoError(t, config.LoadDefaults(map[string]interface{}{
		"tracker.deduplicate": false,
		"tracker.lockPolicy":  "none",
		"tracker.workers":     1,
	}))

	return config
}

func TestLoadDefaults(t *testing.T) {
	config := newConfiguration(t)

	require.True(t, config.Exists("tracker.lockPolicy"))
	require.Equal(t, "none", config.String("tracker.lockpolicy"))
	require.Equal(t, 1, config.Int("tracker.workers"))
	require.False(t, config.Bool("tracker.deduplicate"))
}

func TestLoadFile(t *testing.T) {
	for name, content := range map[string]string{
		"config.json": `{"Tracker": {"LockPolicy": "mutex", "Workers": 4}}`,
		"config.yaml": "Tracker:\n  LockPolicy: mutex\n  Workers: 4\n",
	} {
		t.Run(name, func(t *testing.T) {
			config := newConfiguration(t)
			require.NoError(t, config.LoadFile(writeFile(t, name, content)))

			var settings trackerSettings
			require.NoError(t, config.Unmarshal("tracker", &settings))
			require.Equal(t, trackerSettings{LockPolicy: "mutex", Workers: 4}, settings)
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	config := configuration.New()

	err := config.LoadFile(writeFile(t, "config.ini", "[tracker]"))
	require.True(t, ierrors.Is(err, configuration.ErrUnknownConfigFormat))

	err = config.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.True(t, ierrors.Is(err, os.ErrNotExist))

	err = config.LoadFile(writeFile(t, "broken.json", "{"))
	require.Error(t, err)
}

func TestLoadEnvironmentVars(t *testing.T) {
	t.Setenv("REFTRACKER_TRACKER_WORKERS", "8")
	t.Setenv("REFTRACKER_TRACKER_UNKNOWN", "ignored")

	config := newConfiguration(t)
	require.NoError(t, config.LoadEnvironmentVars("REFTRACKER"))

	require.Equal(t, 8, config.Int("tracker.workers"))
	require.False(t, config.Exists("tracker.unknown"))
}

func TestLoadFlagSet_Precedence(t *testing.T) {
	config := newConfiguration(t)
	require.NoError(t, config.LoadFile(writeFile(t, "config.json", `{"tracker": {"lockPolicy": "deadlock", "workers": 2}}`)))

	flagSet := configuration.NewUnsortedFlagSet("test", flag.ContinueOnError)
	flagSet.String("tracker.lockPolicy", "none", "lock policy")
	flagSet.Int("tracker.workers", 1, "workers")
	flagSet.Bool("tracker.deduplicate", false, "deduplicate")
	flagSet.String("extra.name", "fallback", "only defined as flag")
	require.NoError(t, flagSet.Parse([]string{"--tracker.workers=16", "--tracker.deduplicate"}))

	require.NoError(t, config.LoadFlagSet(flagSet))

	var settings trackerSettings
	require.NoError(t, config.Unmarshal("tracker", &settings))

	// explicitly set flags win, untouched flags keep the file value
	require.Equal(t, trackerSettings{Deduplicate: true, LockPolicy: "deadlock", Workers: 16}, settings)

	// defaults of flags are used for keys that nobody else provided
	require.Equal(t, "fallback", config.String("extra.name"))
}

func TestParsers_LowerCaseKeys(t *testing.T) {
	parsed, err := (&configuration.YAMLLowerParser{}).Unmarshal([]byte("Logger:\n  OutputPaths: [stdout]\n  Level: DEBUG\n"))
	require.NoError(t, err)

	loggerSettings, ok := parsed["logger"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "DEBUG", loggerSettings["level"])
	require.Contains(t, loggerSettings, "outputpaths")

	marshaled, err := (&configuration.JSONLowerParser{}).Marshal(map[string]interface{}{"a": 1})
	require.NoError(t, err)
	require.JSONEq(t, `{"a": 1}`, string(marshaled))
}
