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

// Package kafka implements a Sinker producing one JSON-encoded result per
// Kafka record, preserving the engine's emission order.
package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/transflow/transflow/pkg/events"
	"github.com/transflow/transflow/pkg/shared/logging"
	"github.com/transflow/transflow/pkg/sinks"
)

// ToKafka produces the output to a kafka topic.
type ToKafka struct {
	name     string
	topic    string
	brokers  []string
	producer sarama.SyncProducer
	logger   *zap.SugaredLogger
}

var _ sinks.Sinker = (*ToKafka)(nil)

// Option is the typed option for ToKafka.
type Option func(*ToKafka) error

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(t *ToKafka) error {
		t.logger = log
		return nil
	}
}

// withProducer injects a producer, used by tests.
func withProducer(p sarama.SyncProducer) Option {
	return func(t *ToKafka) error {
		t.producer = p
		return nil
	}
}

// NewToKafka returns ToKafka type.
func NewToKafka(brokers []string, topic string, opts ...Option) (*ToKafka, error) {
	if topic == "" {
		return nil, fmt.Errorf("no kafka topic provided")
	}
	toKafka := &ToKafka{
		name:    "kafka-sink",
		topic:   topic,
		brokers: brokers,
	}
	for _, o := range opts {
		if err := o(toKafka); err != nil {
			return nil, err
		}
	}
	if toKafka.logger == nil {
		toKafka.logger = logging.NewLogger()
	}
	toKafka.logger = toKafka.logger.With("sinkType", "kafka").With("topic", topic)

	if toKafka.producer == nil {
		config := sarama.NewConfig()
		config.Producer.Return.Successes = true
		producer, err := sarama.NewSyncProducer(brokers, config)
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka producer, %w", err)
		}
		toKafka.producer = producer
	}
	return toKafka, nil
}

// GetName returns the name of the sink.
func (tk *ToKafka) GetName() string {
	return tk.name
}

// Write produces one record per result, in order, until the inbound channel
// closes, then closes the producer. A produce failure aborts the run; a
// partially delivered, ordered prefix is still consistent downstream.
func (tk *ToKafka) Write(ctx context.Context, in <-chan events.Result) error {
	defer func() {
		if err := tk.producer.Close(); err != nil {
			tk.logger.Errorw("Failed to close kafka producer", zap.Error(err))
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case result, ok := <-in:
			if !ok {
				return nil
			}
			message := &sarama.ProducerMessage{
				Topic: tk.topic,
				Value: sarama.ByteEncoder(result.Bytes()),
			}
			if _, _, err := tk.producer.SendMessage(message); err != nil {
				kafkaSinkWriteErrors.Inc()
				return fmt.Errorf("failed to produce result to kafka, %w", err)
			}
			kafkaSinkWriteCount.Inc()
		}
	}
}
