package kafka

import (
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/events"
)

// FakeAsyncProducer is a null implementation of events.Publisher.
type FakeAsyncProducer struct {
	logger *zap.Logger
	// Published collects events for test assertions.
	Published []events.Event
}

// NewFakeAsyncProducer returns a null Kafka events.Publisher implementation.
func NewFakeAsyncProducer(logger *zap.Logger) *FakeAsyncProducer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("using fakeasyncproducer")
	return &FakeAsyncProducer{logger: logger}
}

// Publish implements the events.Publisher interface.
func (fake *FakeAsyncProducer) Publish(e events.Event) {
	fake.Published = append(fake.Published, e)
}

// Reconnect implements the events.Publisher interface.
func (fake *FakeAsyncProducer) Reconnect() bool {
	return false
}
