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
	"fmt"
	"testing"
	"time"

	mock "github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"

	"github.com/transflow/transflow/pkg/events"
	"github.com/transflow/transflow/pkg/shared/logging"
)

func TestWriteSuccessToKafka(t *testing.T) {
	conf := mock.NewTestConfig()
	conf.Producer.Return.Successes = true
	producer := mock.NewSyncProducer(t, conf)
	producer.ExpectSendMessageAndSucceed()
	producer.ExpectSendMessageAndSucceed()

	toKafka, err := NewToKafka([]string{"b1"}, "topic-1", withProducer(producer), WithLogger(logging.NewLogger()))
	assert.NoError(t, err)
	assert.Equal(t, "kafka-sink", toKafka.GetName())

	minute := time.Date(2018, 12, 26, 18, 11, 0, 0, time.UTC)
	in := make(chan events.Result, 2)
	in <- events.Result{Date: minute, AverageDeliveryTime: 0}
	in <- events.Result{Date: minute.Add(time.Minute), AverageDeliveryTime: 25.5}
	close(in)

	assert.NoError(t, toKafka.Write(context.Background(), in))
}

func TestWriteFailureToKafka(t *testing.T) {
	conf := mock.NewTestConfig()
	conf.Producer.Return.Successes = true
	producer := mock.NewSyncProducer(t, conf)
	producer.ExpectSendMessageAndFail(fmt.Errorf("test"))

	toKafka, err := NewToKafka([]string{"b1"}, "topic-1", withProducer(producer), WithLogger(logging.NewLogger()))
	assert.NoError(t, err)

	in := make(chan events.Result, 1)
	in <- events.Result{Date: time.Date(2018, 12, 26, 18, 11, 0, 0, time.UTC), AverageDeliveryTime: 20}
	close(in)

	err = toKafka.Write(context.Background(), in)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "test")
}

func TestNewToKafkaValidation(t *testing.T) {
	_, err := NewToKafka([]string{"b1"}, "")
	assert.Error(t, err)
}
