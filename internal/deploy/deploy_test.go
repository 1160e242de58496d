package deploy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"gopkg.in/yaml.v3"
)

type recordedCall struct {
	dir      string
	extraEnv []string
	name     string
	args     []string
}

// mockRunner records CLI invocations and allows failing a given step.
type mockRunner struct {
	calls  []recordedCall
	failOn string // subcommand to fail on ("build" or "deploy")
}

func (m *mockRunner) Run(ctx context.Context, dir string, extraEnv []string, name string, args ...string) error {
	m.calls = append(m.calls, recordedCall{dir: dir, extraEnv: extraEnv, name: name, args: args})
	if m.failOn != "" && len(args) > 1 && args[1] == m.failOn {
		return fmt.Errorf("simulated %s failure", m.failOn)
	}
	return nil
}

func hasEnv(env []string, entry string) bool {
	for _, e := range env {
		if e == entry {
			return true
		}
	}
	return false
}

const projectYAML = `definition_version: 1
snowpark:
  project_name: data_masker
  functions:
    - name: mask
      database: PLACEHOLDER
      handler: function.main
      returns: string
`

const devYAML = `database_name: MASKING_DEV
schema_name: PUBLIC
warehouse_name: DEV_WH
role_name: DEV_ROLE
`

func writeFixture(t *testing.T) (projectDir, configDir string) {
	t.Helper()
	root := t.TempDir()
	projectDir = filepath.Join(root, "src", "data_masker")
	configDir = filepath.Join(root, "config")
	assert.NoError(t, os.MkdirAll(projectDir, 0o755))
	assert.NoError(t, os.MkdirAll(configDir, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(projectDir, "snowflake.yml"), []byte(projectYAML), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(configDir, "dev.yml"), []byte(devYAML), 0o644))
	return projectDir, configDir
}

func TestDeployRunsBuildThenDeploy(t *testing.T) {
	projectDir, configDir := writeFixture(t)
	runner := &mockRunner{}
	d := NewWithRunner("snow", configDir, runner)

	assert.NoError(t, d.Deploy(context.Background(), projectDir, "dev"))

	assert.Equal(t, 2, len(runner.calls))
	assert.Equal(t, []string{"snowpark", "build"}, runner.calls[0].args)
	assert.Equal(t, []string{"snowpark", "deploy", "--replace"}, runner.calls[1].args)
	for _, call := range runner.calls {
		assert.Equal(t, "snow", call.name)
		assert.Equal(t, projectDir, call.dir)
		assert.True(t, hasEnv(call.extraEnv, "SNOWFLAKE_WAREHOUSE=DEV_WH"))
		assert.True(t, hasEnv(call.extraEnv, "SNOWFLAKE_SCHEMA=PUBLIC"))
		assert.True(t, hasEnv(call.extraEnv, "SNOWFLAKE_ROLE=DEV_ROLE"))
	}

	// The temp definition is cleaned up after the CLI finishes.
	_, err := os.Stat(filepath.Join(projectDir, "snowflake_temp.yml"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeployRewritesFunctionDatabase(t *testing.T) {
	projectDir, configDir := writeFixture(t)

	var tempDoc map[string]any
	runner := &mockRunner{}
	d := NewWithRunner("snow", configDir, &captureRunner{inner: runner, onFirstRun: func() {
		data, err := os.ReadFile(filepath.Join(projectDir, "snowflake_temp.yml"))
		assert.NoError(t, err)
		assert.NoError(t, yaml.Unmarshal(data, &tempDoc))
	}})

	assert.NoError(t, d.Deploy(context.Background(), projectDir, "dev"))

	snowpark := tempDoc["snowpark"].(map[string]any)
	functions := snowpark["functions"].([]any)
	function := functions[0].(map[string]any)
	assert.Equal(t, "MASKING_DEV", function["database"])
}

// captureRunner lets a test inspect the project dir while the temp
// definition still exists.
type captureRunner struct {
	inner      Runner
	onFirstRun func()
	ran        bool
}

func (c *captureRunner) Run(ctx context.Context, dir string, extraEnv []string, name string, args ...string) error {
	if !c.ran {
		c.ran = true
		if c.onFirstRun != nil {
			c.onFirstRun()
		}
	}
	return c.inner.Run(ctx, dir, extraEnv, name, args...)
}

func TestDeployStopsAfterBuildFailure(t *testing.T) {
	projectDir, configDir := writeFixture(t)
	runner := &mockRunner{failOn: "build"}
	d := NewWithRunner("snow", configDir, runner)

	err := d.Deploy(context.Background(), projectDir, "dev")
	assert.Error(t, err)
	assert.Equal(t, 1, len(runner.calls))
}

func TestDeployUnknownEnvironment(t *testing.T) {
	projectDir, configDir := writeFixture(t)
	runner := &mockRunner{}
	d := NewWithRunner("snow", configDir, runner)

	err := d.Deploy(context.Background(), projectDir, "staging")
	assert.Error(t, err)
	assert.Equal(t, 0, len(runner.calls))
}

func TestDeployMissingEnvConfig(t *testing.T) {
	projectDir, configDir := writeFixture(t)
	runner := &mockRunner{}
	d := NewWithRunner("snow", configDir, runner)

	// prod.yml was never written in the fixture.
	err := d.Deploy(context.Background(), projectDir, "prod")
	assert.Error(t, err)
	assert.Equal(t, 0, len(runner.calls))
}

func TestLoadEnvConfigValidation(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "dev.yml"), []byte("schema_name: PUBLIC\n"), 0o644))

	_, err := LoadEnvConfig(dir, "dev")
	assert.Error(t, err)
}

func TestRedactEnvEntry(t *testing.T) {
	// Plain settings are echoed as-is; anything that looks like a
	// credential keeps only its ends.
	assert.Equal(t, "SNOWFLAKE_WAREHOUSE=DEV_WH", redactEnvEntry("SNOWFLAKE_WAREHOUSE=DEV_WH"))
	assert.Equal(t, "SNOWFLAKE_PASSWORD=hunt...2222", redactEnvEntry("SNOWFLAKE_PASSWORD=hunter2hunter2222"))
	assert.Equal(t, "SNOWFLAKE_ACCOUNT=***", redactEnvEntry("SNOWFLAKE_ACCOUNT=xy12345"))
	assert.Equal(t, "no-separator", redactEnvEntry("no-separator"))
}

func TestSetFunctionDatabaseWithoutSnowparkSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snowflake.yml")
	assert.NoError(t, os.WriteFile(path, []byte("definition_version: 1\n"), 0o644))

	project, err := LoadProjectConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, 0, project.SetFunctionDatabase("ANY"))
}
