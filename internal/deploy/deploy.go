// Package deploy drives the snow CLI to build and publish the masking
// UDF project against a target Snowflake environment.
package deploy

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/masklab/snowmask/internal/logger"
	"github.com/masklab/snowmask/internal/util"
)

// Environments recognized by Deploy.
const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// ValidEnvironment reports whether env names a known deploy target.
func ValidEnvironment(env string) bool {
	return env == EnvDev || env == EnvProd
}

// Runner executes an external command in a directory with extra
// environment variables appended to the inherited environment.
type Runner interface {
	Run(ctx context.Context, dir string, extraEnv []string, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir string, extraEnv []string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), extraEnv...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Deployer builds and deploys a snowpark project via the snow CLI.
type Deployer struct {
	snowBin   string
	configDir string
	runner    Runner
}

// New creates a deployer using the real snow CLI.
func New(snowBin, configDir string) *Deployer {
	return NewWithRunner(snowBin, configDir, execRunner{})
}

// NewWithRunner creates a deployer with a custom command runner.
func NewWithRunner(snowBin, configDir string, runner Runner) *Deployer {
	return &Deployer{snowBin: snowBin, configDir: configDir, runner: runner}
}

// Deploy retargets the project at dir to the environment's database,
// then runs `snow snowpark build` followed by
// `snow snowpark deploy --replace` in the project directory. The
// rewritten definition is written to snowflake_temp.yml and removed
// again once the CLI finishes.
func (d *Deployer) Deploy(ctx context.Context, dir, env string) error {
	if !ValidEnvironment(env) {
		return fmt.Errorf("unknown environment: %s (expected %s or %s)", env, EnvDev, EnvProd)
	}

	envConfig, err := LoadEnvConfig(d.configDir, env)
	if err != nil {
		return err
	}

	project, err := LoadProjectConfig(filepath.Join(dir, "snowflake.yml"))
	if err != nil {
		return err
	}

	rewritten := project.SetFunctionDatabase(envConfig.DatabaseName)
	logger.Debug("Retargeted %d function(s) to database %s", rewritten, envConfig.DatabaseName)

	tempPath := filepath.Join(dir, "snowflake_temp.yml")
	if err := project.WriteTo(tempPath); err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			logger.Warn("Failed to remove %s: %v", tempPath, err)
		}
	}()

	extraEnv := []string{"SNOWFLAKE_WAREHOUSE=" + envConfig.WarehouseName}
	if envConfig.SchemaName != "" {
		extraEnv = append(extraEnv, "SNOWFLAKE_SCHEMA="+envConfig.SchemaName)
	}
	if envConfig.RoleName != "" {
		extraEnv = append(extraEnv, "SNOWFLAKE_ROLE="+envConfig.RoleName)
	}
	for _, entry := range extraEnv {
		logger.Debug("snow env: %s", redactEnvEntry(entry))
	}

	logger.Info("Building snowpark application in %s", dir)
	if err := d.runner.Run(ctx, dir, extraEnv, d.snowBin, "snowpark", "build"); err != nil {
		return fmt.Errorf("snowpark build failed: %w", err)
	}

	logger.Info("Deploying snowpark application to %s environment", env)
	if err := d.runner.Run(ctx, dir, extraEnv, d.snowBin, "snowpark", "deploy", "--replace"); err != nil {
		return fmt.Errorf("snowpark deploy failed: %w", err)
	}

	logger.Info("Successfully deployed to %s environment", env)
	return nil
}

// redactEnvEntry hides the value of sensitive-looking keys before an
// environment entry is echoed at debug level.
func redactEnvEntry(entry string) string {
	key, value, ok := strings.Cut(entry, "=")
	if !ok {
		return entry
	}
	if util.IsSensitiveKey(key) {
		return key + "=" + util.AbbreviateSecret(value)
	}
	return entry
}
