package cmd

import (
	"fmt"
	"time"

	"github.com/jmehdipour/custgen/internal/kafka"
	"github.com/jmehdipour/custgen/internal/logger"
	"github.com/jmehdipour/custgen/internal/metrics"
	"github.com/jmehdipour/custgen/internal/service/dataset"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the generated dataset to Kafka, one message per customer",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := generatorOptions(cmd, cfg)
		if err != nil {
			return err
		}
		topic := cfg.Kafka.Topic
		if cmd.Flags().Changed("topic") {
			topic, _ = cmd.Flags().GetString("topic")
		}
		if len(cfg.Kafka.Brokers) == 0 || topic == "" {
			return fmt.Errorf("kafka brokers and topic are required")
		}

		_, flushMetrics := commandMetrics(cfg)
		defer flushMetrics()

		records, _, err := dataset.New(afero.NewMemMapFs(), nil, logger.Log).Build(opts)
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		producer := kafka.NewProducerFromConfig(kafka.Config{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        topic,
			BatchSize:    cfg.Kafka.BatchSize,
			BatchTimeout: time.Duration(cfg.Kafka.BatchTimeout) * time.Millisecond,
			RequiredAcks: cfg.Kafka.RequiredAcks,
		})
		defer producer.Close()

		n, err := producer.Publish(ctx, records)
		metrics.SinkRows.WithLabelValues("kafka").Add(float64(n))
		if err != nil {
			return fmt.Errorf("publish (%d/%d sent): %w", n, len(records), err)
		}

		logger.Log.Info("publish completed", zap.String("topic", topic), zap.Int64("messages", n))
		return nil
	},
}

func init() {
	publishCmd.Flags().AddFlagSet(generatorFlags())
	publishCmd.Flags().String("topic", "", "kafka topic (overrides kafka.topic)")
}
