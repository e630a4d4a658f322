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

// Package kafka implements a Sourcer consuming translation events from a
// Kafka topic. Event ordering is only guaranteed within a partition, so the
// topic is expected to be single-partition when feeding the moving average
// pipeline. The stream has no natural end; cancelling the context is the
// end-of-stream signal.
package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/transflow/transflow/pkg/events"
	"github.com/transflow/transflow/pkg/shared/logging"
	"github.com/transflow/transflow/pkg/sources"
)

// KafkaSource consumes a topic through a consumer group.
type KafkaSource struct {
	name string
	// topic to consume messages from
	topic string
	// kafka brokers
	brokers []string
	// group name for the consumer group
	groupName string
	// handler for the consumer group session
	handler *consumerHandler
	// size of the buffer that holds consumed but yet to be forwarded messages
	handlerBuffer int
	// sarama config for the consumer group
	config *sarama.Config
	logger *zap.SugaredLogger
}

var _ sources.Sourcer = (*KafkaSource)(nil)

// Option is the typed option for KafkaSource.
type Option func(*KafkaSource) error

// WithLogger is used to return logger information
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *KafkaSource) error {
		o.logger = l
		return nil
	}
}

// WithBufferSize is used to return size of message channel information
func WithBufferSize(s int) Option {
	return func(o *KafkaSource) error {
		o.handlerBuffer = s
		return nil
	}
}

// WithGroupName is used to set the group name
func WithGroupName(gn string) Option {
	return func(o *KafkaSource) error {
		o.groupName = gn
		return nil
	}
}

// NewKafkaSource returns a KafkaSource for the given brokers and topic.
func NewKafkaSource(brokers []string, topic string, opts ...Option) (*KafkaSource, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers provided")
	}
	if topic == "" {
		return nil, fmt.Errorf("no kafka topic provided")
	}
	ks := &KafkaSource{
		name:          "kafka-source",
		topic:         topic,
		brokers:       brokers,
		groupName:     "transflow",
		handlerBuffer: 100,
	}
	for _, o := range opts {
		if err := o(ks); err != nil {
			return nil, err
		}
	}
	if ks.logger == nil {
		ks.logger = logging.NewLogger()
	}
	ks.logger = ks.logger.With("sourceType", "kafka").With("topic", topic)

	config := sarama.NewConfig()
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	ks.config = config
	ks.handler = newConsumerHandler(ks.handlerBuffer)
	return ks, nil
}

// GetName returns the name of the source.
func (ks *KafkaSource) GetName() string {
	return ks.name
}

// Read consumes the topic until the context is cancelled, pumping parsed
// events into out. Cancellation is the clean end of the stream, so it closes
// out and returns nil rather than an error.
func (ks *KafkaSource) Read(ctx context.Context, out chan<- *events.TranslationEvent) error {
	client, err := sarama.NewConsumerGroup(ks.brokers, ks.groupName, ks.config)
	if err != nil {
		close(out)
		return fmt.Errorf("failed to create kafka consumer group, %w", err)
	}
	defer func() { _ = client.Close() }()

	consumeDone := make(chan struct{})
	go func() {
		defer close(consumeDone)
		for {
			// Consume returns when the session ends; keep rejoining until
			// the context is cancelled.
			if err := client.Consume(ctx, []string{ks.topic}, ks.handler); err != nil {
				ks.logger.Errorw("Consume failed", zap.Error(err))
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
	if !ks.waitReady(ctx) {
		// the broker never became reachable before cancellation; forward
		// never ran, so the stream still has to be closed here
		ks.logger.Info("Context cancelled before the kafka consumer group was ready")
		close(out)
		<-consumeDone
		return nil
	}
	ks.logger.Info("Kafka consumer group is up and running")

	ks.forward(ctx, out)
	<-consumeDone
	return nil
}

// waitReady blocks until the consumer group has joined or the context is
// cancelled, reporting which one happened.
func (ks *KafkaSource) waitReady(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-ks.handler.ready:
		return true
	}
}

// forward drains the handler's message channel into out until the context is
// cancelled. Malformed records are counted and skipped; they carry no
// ordering information the engine could miss.
func (ks *KafkaSource) forward(ctx context.Context, out chan<- *events.TranslationEvent) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			ks.logger.Info("Context cancelled, ending the kafka stream")
			return
		case msg := <-ks.handler.messages:
			event, err := events.ParseEvent(msg.Value)
			if err != nil {
				kafkaSourceMalformedCount.Inc()
				ks.logger.Errorw("Dropping malformed record", zap.Error(err))
				continue
			}
			select {
			case <-ctx.Done():
				ks.logger.Info("Context cancelled, ending the kafka stream")
				return
			case out <- event:
				kafkaSourceReadCount.Inc()
			}
		}
	}
}
