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

package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"

	"github.com/transflow/transflow/pkg/events"
	"github.com/transflow/transflow/pkg/shared/logging"
)

func TestNewKafkaSource(t *testing.T) {
	ks, err := NewKafkaSource([]string{"b1"}, "testtopic",
		WithLogger(logging.NewLogger()), WithBufferSize(100), WithGroupName("default"))

	// no errors if everything is good.
	assert.Nil(t, err)
	assert.NotNil(t, ks)

	assert.Equal(t, "default", ks.groupName)

	// config is all set and initialized correctly
	assert.NotNil(t, ks.config)
	assert.Equal(t, 100, ks.handlerBuffer)
	assert.Equal(t, 100, cap(ks.handler.messages))
	assert.Equal(t, sarama.OffsetOldest, ks.config.Consumer.Offsets.Initial)
}

func TestDefaultGroupNameAndBufferSize(t *testing.T) {
	ks, err := NewKafkaSource([]string{"b1"}, "testtopic")
	assert.Nil(t, err)
	assert.Equal(t, "transflow", ks.groupName)
	assert.Equal(t, 100, ks.handlerBuffer)
}

func TestNewKafkaSourceValidation(t *testing.T) {
	_, err := NewKafkaSource(nil, "testtopic")
	assert.Error(t, err)
	_, err = NewKafkaSource([]string{"b1"}, "")
	assert.Error(t, err)
}

func TestMessageHandling(t *testing.T) {
	ks, err := NewKafkaSource([]string{"b1"}, "testtopic", WithBufferSize(10))
	assert.Nil(t, err)

	value := `{"timestamp": "2018-12-26 18:11:08.509654", "duration": 20}`
	ks.handler.messages <- &sarama.ConsumerMessage{
		Topic:     "testtopic",
		Partition: 0,
		Offset:    1,
		Value:     []byte(value),
	}
	// a malformed record is dropped, not forwarded
	ks.handler.messages <- &sarama.ConsumerMessage{
		Topic:     "testtopic",
		Partition: 0,
		Offset:    2,
		Value:     []byte("not json"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan *events.TranslationEvent)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ks.forward(ctx, out)
	}()

	event := <-out
	assert.Equal(t, int64(20), event.Duration)
	assert.Equal(t, time.Date(2018, 12, 26, 18, 11, 8, 509654000, time.UTC), event.Timestamp.Time)

	cancel()
	<-done
	// forward closed the outbound channel on its way out
	_, ok := <-out
	assert.False(t, ok)
}

// An unreachable broker must not pin Read past cancellation while it waits
// for the consumer group to become ready.
func TestWaitReady(t *testing.T) {
	ks, err := NewKafkaSource([]string{"b1"}, "testtopic")
	assert.Nil(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, ks.waitReady(ctx))

	close(ks.handler.ready)
	assert.True(t, ks.waitReady(context.Background()))
}
