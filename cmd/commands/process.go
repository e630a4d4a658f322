/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/transflow/transflow"
	"github.com/transflow/transflow/pkg/metrics"
	"github.com/transflow/transflow/pkg/pipeline"
	"github.com/transflow/transflow/pkg/reduce"
	"github.com/transflow/transflow/pkg/shared/logging"
	"github.com/transflow/transflow/pkg/sinks"
	"github.com/transflow/transflow/pkg/sinks/blackhole"
	filesink "github.com/transflow/transflow/pkg/sinks/file"
	kafkasink "github.com/transflow/transflow/pkg/sinks/kafka"
	logsink "github.com/transflow/transflow/pkg/sinks/logger"
	"github.com/transflow/transflow/pkg/sources"
	filesource "github.com/transflow/transflow/pkg/sources/file"
	kafkasource "github.com/transflow/transflow/pkg/sources/kafka"
)

// NewProcessCommand returns the command running the moving average pipeline.
func NewProcessCommand() *cobra.Command {
	var (
		inputFile   string
		windowSize  int
		outputFile  string
		sourceType  string
		sinkType    string
		brokers     []string
		topic       string
		groupName   string
		metricsPort int
		bufferSize  int
		noSummary   bool
	)

	command := &cobra.Command{
		Use:   "process",
		Short: "Run the moving average pipeline over a translation event stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger().Named("process")
			logger.Infow("Starting translation event processor", "version", transflow.GetVersion())

			// flags win, TRANSFLOW_* environment variables fill the rest
			v := viper.New()
			v.SetEnvPrefix("transflow")
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			v.AutomaticEnv()
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			windowSize = v.GetInt("window-size")
			inputFile = v.GetString("input-file")
			outputFile = v.GetString("output-file")
			sourceType = v.GetString("source")
			sinkType = v.GetString("sink")
			metricsPort = v.GetInt("metrics-port")
			bufferSize = v.GetInt("buffer-size")
			noSummary = v.GetBool("no-summary")

			// the engine assumes a validated window size; reject here
			if windowSize <= 0 {
				return fmt.Errorf("window size must be a positive number of minutes, got %d", windowSize)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx = logging.WithLogger(ctx, logger)

			if metricsPort > 0 {
				metrics.StartServer(ctx, metricsPort)
			}

			var source sources.Sourcer
			var err error
			switch sourceType {
			case "file":
				resolved, rerr := resolveInputFile(inputFile)
				if rerr != nil {
					return rerr
				}
				source, err = filesource.NewFileSource(resolved, filesource.WithLogger(logger))
			case "kafka":
				source, err = kafkasource.NewKafkaSource(brokers, topic,
					kafkasource.WithLogger(logger), kafkasource.WithGroupName(groupName))
			default:
				return fmt.Errorf("unsupported source type %q", sourceType)
			}
			if err != nil {
				return fmt.Errorf("failed to create source, %w", err)
			}

			var sink sinks.Sinker
			switch sinkType {
			case "file":
				sink, err = filesink.NewFileSink(outputFile, filesink.WithLogger(logger))
			case "log":
				sink, err = logsink.NewToLog(logsink.WithLogger(logger))
			case "blackhole":
				sink = blackhole.NewBlackhole()
			case "kafka":
				sink, err = kafkasink.NewToKafka(brokers, topic+"-averages", kafkasink.WithLogger(logger))
			default:
				return fmt.Errorf("unsupported sink type %q", sinkType)
			}
			if err != nil {
				return fmt.Errorf("failed to create sink, %w", err)
			}

			engine, err := reduce.NewMovingAverage(windowSize, reduce.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("failed to create engine, %w", err)
			}
			pipelineOpts := []pipeline.Option{pipeline.WithLogger(logger), pipeline.WithBufferSize(bufferSize)}
			if noSummary {
				pipelineOpts = append(pipelineOpts, pipeline.WithoutSummary())
			}
			p, err := pipeline.New(source, engine, sink, pipelineOpts...)
			if err != nil {
				return fmt.Errorf("failed to create pipeline, %w", err)
			}
			return p.Run(ctx)
		},
	}
	command.Flags().StringVar(&inputFile, "input-file", "", "Path of the JSON-lines translation event file")
	command.Flags().IntVar(&windowSize, "window-size", 10, "Moving average window size in minutes")
	command.Flags().StringVar(&outputFile, "output-file", filesink.DefaultOutputFile, "Path of the output file")
	command.Flags().StringVar(&sourceType, "source", "file", "Source type, one of 'file', 'kafka'")
	command.Flags().StringVar(&sinkType, "sink", "file", "Sink type, one of 'file', 'log', 'blackhole', 'kafka'")
	command.Flags().StringSliceVar(&brokers, "brokers", nil, "Kafka broker addresses")
	command.Flags().StringVar(&topic, "topic", "translation-events", "Kafka topic holding translation events")
	command.Flags().StringVar(&groupName, "group-name", "transflow", "Kafka consumer group name")
	command.Flags().IntVar(&metricsPort, "metrics-port", 0, "Port to expose prometheus metrics on, 0 to disable")
	command.Flags().IntVar(&bufferSize, "buffer-size", pipeline.DefaultBufferSize, "Size of the event and result channel buffers")
	command.Flags().BoolVar(&noSummary, "no-summary", false, "Skip logging the run summary statistics")
	return command
}

// resolveInputFile validates the input path, converting a relative path to
// an absolute one first.
func resolveInputFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("input file path must not be empty")
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve input file path %q: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("input file does not exist: %s", path)
	}
	return abs, nil
}
