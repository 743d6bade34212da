// Package main provides the CLI entry point for sceneshot.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/sceneshot/pkg/adapters/ffmpegdecoder"
	"github.com/user/sceneshot/pkg/adapters/filesink"
	"github.com/user/sceneshot/pkg/adapters/logger"
	"github.com/user/sceneshot/pkg/adapters/mqttemitter"
	"github.com/user/sceneshot/pkg/adapters/nullsink"
	"github.com/user/sceneshot/pkg/adapters/onnxscorer"
	"github.com/user/sceneshot/pkg/adapters/osfilesystem"
	"github.com/user/sceneshot/pkg/adapters/streamemitter"
	"github.com/user/sceneshot/pkg/adapters/visualizer"
	"github.com/user/sceneshot/pkg/config"
	"github.com/user/sceneshot/pkg/orchestrator"
	"github.com/user/sceneshot/pkg/ports"
	"github.com/user/sceneshot/pkg/report"
	"github.com/user/sceneshot/pkg/stages/score"
	"github.com/user/sceneshot/pkg/summarizer"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "sceneshot",
		Usage:   l10n.T("Detect shot and scene boundaries in videos"),
		Version: version,
		Commands: []*cli.Command{
			detectCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func detectCommand() *cli.Command {
	return &cli.Command{
		Name:      "detect",
		Usage:     l10n.T("Detect scene boundaries in one or more video files"),
		ArgsUsage: "VIDEO [VIDEO...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("Path to YAML configuration file"),
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   l10n.T("Path to the ONNX model file"),
			},
			&cli.Float64Flag{
				Name:    "threshold",
				Aliases: []string{"t"},
				Usage:   l10n.T("Boundary score threshold (0-1)"),
			},
			&cli.StringFlag{
				Name:    "broker",
				Aliases: []string{"b"},
				Usage:   l10n.T("MQTT broker address (host:port); omit to print events to stdout"),
			},
			&cli.StringFlag{
				Name:  "topic",
				Usage: l10n.T("MQTT topic for scene events"),
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   l10n.T("Directory for prediction and scene files (default: next to each video)"),
			},
			&cli.StringFlag{
				Name:  "ffmpeg-path",
				Usage: l10n.T("Path to the ffmpeg executable"),
			},
			&cli.BoolFlag{
				Name:  "visualize",
				Usage: l10n.T("Render a prediction image per video (requires --debug)"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   l10n.T("Enable debug output"),
			},
			&cli.StringFlag{
				Name:  "debug-dir",
				Usage: l10n.T("Directory for debug output"),
			},
			&cli.StringFlag{
				Name:    "summary",
				Aliases: []string{"s"},
				Usage:   l10n.T("Output run summary to file (Markdown format)"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   l10n.T("Log level (debug, info, warn, error)"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"Q"},
				Usage:   l10n.T("Suppress all log output"),
			},
		},
		Action: runDetect,
	}
}

func runDetect(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}
	if len(cfg.Videos) == 0 {
		return errors.New(l10n.T("at least one video argument is required"))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	fs := osfilesystem.New()

	scorer, err := onnxscorer.New(cfg.ModelPath, cfg.Geometry(), log)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	defer scorer.Close()

	publisher, err := newPublisher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer publisher.Close()

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	var renderer ports.PredictionRenderer
	if cfg.Visualize {
		renderer = visualizer.New()
	}

	orch := orchestrator.New(
		ffmpegdecoder.New(cfg.FFmpegPath, log),
		score.NewStage(scorer, cfg.Geometry(), log),
		publisher,
		report.NewWriter(fs),
		renderer,
		sink,
		log,
	)

	results, err := orch.Run(ctx, cfg.ToOrchestratorConfig())
	for _, result := range results {
		log.Info(l10n.F("%s: %d frames, %d scenes", result.Video, result.FrameCount, len(result.Scenes)))
	}

	if path := c.String("summary"); path != "" && len(results) > 0 {
		if werr := writeSummary(path, cfg, results); werr != nil {
			log.Warn(l10n.F("Failed to write summary: %s", werr))
		} else {
			log.Info(l10n.F("Summary saved to %s", path))
		}
	}
	return err
}

// writeSummary renders the run results as a Markdown file.
func writeSummary(path string, cfg config.Config, results []orchestrator.VideoResult) error {
	builder := summarizer.NewBuilder().WithSettings(summarizer.Settings{
		ModelPath: cfg.ModelPath,
		Threshold: cfg.Threshold,
		WindowLen: cfg.WindowLen,
		Stride:    cfg.Stride,
		Context:   cfg.Context,
		Broker:    cfg.Broker,
		Topic:     cfg.Topic,
	})
	for _, result := range results {
		builder.AddVideo(summarizer.VideoSummary{
			Path:       result.Video,
			FrameCount: result.FrameCount,
			Windows:    result.Windows,
			Events:     result.Events,
			Scenes:     result.Scenes,
		})
	}

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	return summarizer.NewWriter(formatter).Write(path, builder.Build())
}

// buildConfig merges the defaults, an optional config file and CLI
// overrides, in that order.
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if c.IsSet("model") {
		cfg.ModelPath = c.String("model")
	}
	if c.IsSet("threshold") {
		cfg.Threshold = float32(c.Float64("threshold"))
	}
	if c.IsSet("broker") {
		cfg.Broker = c.String("broker")
	}
	if c.IsSet("topic") {
		cfg.Topic = c.String("topic")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("ffmpeg-path") {
		cfg.FFmpegPath = c.String("ffmpeg-path")
	}
	if c.IsSet("visualize") {
		cfg.Visualize = c.Bool("visualize")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}

	if args := c.Args().Slice(); len(args) > 0 {
		cfg.Videos = args
	}
	return cfg, nil
}

// newPublisher connects to the MQTT broker when one is configured and
// falls back to JSON lines on stdout otherwise.
func newPublisher(ctx context.Context, cfg config.Config, log ports.Logger) (ports.EventPublisher, error) {
	if cfg.Broker == "" {
		return streamemitter.New(os.Stdout), nil
	}

	emitter := mqttemitter.New(cfg.Broker, cfg.Topic, log)
	if err := emitter.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect to broker %s: %w", cfg.Broker, err)
	}
	return emitter, nil
}
