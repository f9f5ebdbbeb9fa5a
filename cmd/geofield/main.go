package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"geofield/internal/models"
	"geofield/pkg/config"
	"geofield/pkg/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := &cobra.Command{
		Use:   "geofield",
		Short: "RBF interpolation of borehole samples onto a geological surface grid",
	}
	root.AddCommand(interpolateCmd(ctx))
	root.AddCommand(initConfigCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func interpolateCmd(ctx context.Context) *cobra.Command {
	var (
		inputPath  string
		outputPath string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "interpolate",
		Short: "Interpolate a borehole dataset onto a regular grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			logger := newLogger(cfg.Runtime.Verbose)

			set, err := models.LoadBoreholeSet(inputPath)
			if err != nil {
				return err
			}
			points, values := set.PointsAndValues()
			logger.Info().
				Str("surface", set.Name).
				Int("samples", len(points)).
				Msg("dataset loaded")

			pool := worker.NewPool(cfg.Runtime.Workers, logger)
			pool.Start(ctx)
			defer pool.Close()

			pool.Submit(worker.Request{
				Task: worker.TaskRBFInterpolation,
				Data: worker.Payload{
					Points: points,
					Values: values,
					Config: cfg.EngineConfig(),
				},
			})

			var terminal worker.Message
			for msg := range pool.Messages() {
				if msg.Progress != nil {
					renderProgress(*msg.Progress)
				}
				if msg.Terminal() {
					terminal = msg
					break
				}
			}

			if terminal.Error != "" {
				return fmt.Errorf("interpolation failed: %s", terminal.Error)
			}

			data, err := json.MarshalIndent(terminal, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				return fmt.Errorf("error writing result file: %w", err)
			}

			stats := terminal.Result.Statistics
			logger.Info().
				Str("output", outputPath).
				Int("gridPoints", len(terminal.Result.GridPoints)).
				Float64("mean", stats.MeanValue).
				Float64("min", stats.MinValue).
				Float64("max", stats.MaxValue).
				Msg("result written")
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "YAML file with borehole samples")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "result.json", "output JSON file")
	cmd.Flags().StringVarP(&configPath, "config", "c", "geofield.yaml", "configuration file")
	cmd.MarkFlagRequired("input")

	return cmd
}

func initConfigCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a configuration file with default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.CreateDefaultConfigFile(path); err != nil {
				return err
			}
			fmt.Printf("Default configuration written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "geofield.yaml", "where to write the configuration")

	return cmd
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if !verbose {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// renderProgress draws a terminal progress bar for the milestone
// percentages reported by the engine.
func renderProgress(percent int) {
	const width = 40
	filled := percent * width / 100

	bar := "["
	for i := 0; i < width; i++ {
		switch {
		case i < filled:
			bar += "█"
		case i == filled:
			bar += "▓"
		default:
			bar += "░"
		}
	}
	bar += "]"

	fmt.Printf("\r%s %d%%", bar, percent)
	if percent >= 100 {
		fmt.Println()
	}
}
