package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"comics-service/internal/mocks"
)

func TestEmitPublishesEnvelope(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewAuditEmitter(publisher, "audit.comics", "comics-service", "test")

	var captured AuditEnvelope
	publisher.On("Publish", mock.Anything, "audit.comics", mock.AnythingOfType("telemetry.AuditEnvelope")).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(AuditEnvelope)
		}).Return(nil).Once()

	userID := "7"
	emitter.Emit(context.Background(), "INFO", "user registered: alice", "req-1", &userID)

	publisher.AssertExpectations(t)
	assert.Equal(t, 1, captured.SchemaVersion)
	assert.Equal(t, "audit_log", captured.EventType)
	assert.Equal(t, "comics-service", captured.Service)
	assert.Equal(t, "req-1", captured.RequestID)
	require.NotNil(t, captured.UserID)
	assert.Equal(t, "7", *captured.UserID)
	assert.Equal(t, "INFO", captured.Payload.Level)
	assert.Equal(t, "user registered: alice", captured.Payload.Text)
}

func TestEmitNilEmitterIsNoop(t *testing.T) {
	var emitter *AuditEmitter
	emitter.Emit(context.Background(), "INFO", "ignored", "req-1", nil)
}

func TestEmitSwallowsPublishError(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewAuditEmitter(publisher, "audit.comics", "comics-service", "test")

	publisher.On("Publish", mock.Anything, "audit.comics", mock.Anything).Return(assert.AnError).Once()

	emitter.Emit(context.Background(), "WARN", "failed login attempt: alice", "req-2", nil)
	publisher.AssertExpectations(t)
}
