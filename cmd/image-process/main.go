package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/image-process/internal/config"
	"github.com/ironsheep/image-process/internal/imaging"
	"github.com/ironsheep/image-process/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const logLevelEnv = "IMAGE_PROCESS_LOG_LEVEL"

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-process %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	// Log to stderr (stdout is for MCP protocol)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	opts, cfg, err := setup(*configPath, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("startup failed")
	}

	logger.Debug().
		Str("version", Version).
		Str("built", BuildTime).
		Str("commit", GitCommit).
		Msg("image-process starting")

	h, err := imaging.New(pathConfig(cfg), append(opts, imaging.WithLogger(logger))...)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to bind image directory")
	}

	srvOpts := []server.Option{server.WithLogger(logger)}
	if cfg != nil {
		srvOpts = append(srvOpts, server.WithDefaultBlur(cfg.Images.Blur))
	}

	srv := server.New(h, srvOpts...)
	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

// setup loads the optional config file and applies the log level. Without a
// config file or IMAGE_PROCESS_PATH the handle starts unbound and
// image_configure must be called.
func setup(path string, logger *zerolog.Logger) ([]imaging.Option, *config.Config, error) {
	level := os.Getenv(logLevelEnv)

	var (
		cfg  *config.Config
		opts []imaging.Option
	)
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return nil, nil, err
		}
		cfg = c
		if level == "" {
			level = cfg.Log.Level
		}

		engine, err := imaging.EngineByName(cfg.Images.Engine)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, imaging.WithEngine(engine))
	}

	if level == "" {
		level = config.DefaultLogLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	*logger = logger.Level(lvl)

	return opts, cfg, nil
}

// pathConfig returns the image directory from the config file, or from
// IMAGE_PROCESS_PATH when no config file was given. Nil means unbound.
func pathConfig(cfg *config.Config) *config.PathConfig {
	if cfg != nil {
		return cfg.PathConfig()
	}
	if p := os.Getenv(config.PathEnv); p != "" {
		return config.NewPathConfig(p)
	}
	return nil
}

func printHelp() {
	fmt.Println("image-process - MCP server for loading, resizing, cropping and saving images")
	fmt.Println()
	fmt.Println("Usage: image-process [-config file.yaml]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -config FILE     YAML configuration (images.path, images.engine, images.blur, log.level)")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  IMAGE_PROCESS_PATH=DIR            Image directory (overrides images.path)")
	fmt.Println("  IMAGE_PROCESS_LOG_LEVEL=debug     Set the log level")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
}
