package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/masklab/snowmask/cmd"
	"github.com/masklab/snowmask/internal/logger"
	"github.com/masklab/snowmask/internal/mask"
)

// CLI holds the command-line interface structure.
type CLI struct {
	Mask struct {
		Value    string `arg:"" help:"Value to mask."`
		Category string `short:"c" help:"Data category (email, phone, credit_card, ssn)."`
		Level    string `short:"l" help:"Masking level (low, medium, high)."`
	} `cmd:"" help:"Mask a single value."`

	Batch struct {
		Input   string `arg:"" optional:"" help:"CSV input file (defaults to stdin)."`
		Workers int    `help:"Number of masking workers." default:"4"`
	} `cmd:"" help:"Mask CSV rows of the form value[,category[,level]]."`

	Server struct {
		Port int `help:"Port to listen on." default:"8080"`
	} `cmd:"" help:"Run the masking HTTP service."`

	Deploy struct {
		Env string `help:"Target environment." default:"dev" enum:"dev,prod"`
		Dir string `help:"Snowpark project directory." default:"src/data_masker"`
	} `cmd:"" help:"Build and deploy the masking UDF with the snow CLI."`

	HashPassword struct{} `cmd:"" help:"Generate bcrypt hash from stdin password."`

	Version struct{} `cmd:"" help:"Print the current version."`

	ListCategories struct{} `cmd:"" help:"List recognized data categories."`
}

var (
	buildVersion = "dev"
)

const fallbackVersion = "0.0.0-dev"

func versionString() string {
	if trimmed := strings.TrimSpace(buildVersion); trimmed != "" {
		return trimmed
	}
	return fallbackVersion
}

func main() {
	// Initialize logger at INFO level by default
	// Will be re-initialized after loading configuration
	logger.SetLevel(logger.LevelInfo)

	var cli CLI
	ctx := kong.Parse(&cli)

	if ctx.Command() == "list-categories" {
		fmt.Println("Recognized categories:")
		for _, name := range mask.Categories() {
			fmt.Println("-", name)
		}
		return
	}

	if ctx.Command() == "version" {
		fmt.Println(versionString())
		return
	}

	if ctx.Command() == "hash-password" {
		err := cmd.RunHashPassword()
		ctx.FatalIfErrorf(err)
		return
	}

	config, err := cmd.LoadConfig()
	if err != nil {
		ctx.FatalIfErrorf(fmt.Errorf("failed to load configuration: %w", err))
	}

	// Re-initialize logger with LOG_LEVEL from environment
	logger.SetLevelFromString(os.Getenv("LOG_LEVEL"))
	logger.Debug("Logger re-initialized with level: %s", logger.GetLevel())
	logger.Debug("Configuration loaded: category=%s, level=%s", config.DefaultCategory, config.DefaultLevel)

	switch ctx.Command() {
	case "mask <value>":
		err = cmd.RunMask(cli.Mask.Value, cli.Mask.Category, cli.Mask.Level, config)
	case "batch", "batch <input>":
		err = cmd.RunBatch(cli.Batch.Input, cli.Batch.Workers, config)
	case "server":
		err = cmd.RunServer(cli.Server.Port, config)
	case "deploy":
		err = cmd.RunDeploy(cli.Deploy.Env, cli.Deploy.Dir, config)
	default:
		err = fmt.Errorf("unknown command: %s", ctx.Command())
	}

	ctx.FatalIfErrorf(err)
}
