package cmd

import (
	"context"
	"time"

	"github.com/masklab/snowmask/internal/deploy"
)

// deployTimeout bounds a full build-and-deploy cycle of the snow CLI.
const deployTimeout = 10 * time.Minute

// RunDeploy builds and deploys the snowpark project at dir to the
// given environment.
func RunDeploy(env, dir string, config *Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), deployTimeout)
	defer cancel()

	d := deploy.New(config.SnowBin, config.DeployConfigDir)
	return d.Deploy(ctx, dir, env)
}
