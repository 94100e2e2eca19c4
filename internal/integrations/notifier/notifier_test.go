package notifier

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
)

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) PublishJSON(ctx context.Context, key string, v any) error {
	return m.Called(ctx, key, v).Error(0)
}

func testPromotion() *domain.WaitlistPromotion {
	return &domain.WaitlistPromotion{
		EntryID:            11,
		UserID:             7,
		CourtID:            1,
		CourtName:          "Court 1",
		StartTime:          time.Date(2025, 10, 18, 19, 0, 0, 0, time.UTC),
		CancelledBookingID: 42,
	}
}

func TestAMQPNotifier_NotifyWaitlistPromotion(t *testing.T) {
	ctx := context.Background()
	occurred := time.Date(2025, 10, 17, 9, 0, 0, 0, time.UTC)

	t.Run("publishes event", func(t *testing.T) {
		pub := &publisherMock{}
		pub.On("PublishJSON", ctx, RoutingKeyWaitlistPromoted, WaitlistPromotedEvent{
			EventType:          RoutingKeyWaitlistPromoted,
			UserID:             7,
			WaitlistEntryID:    11,
			CourtID:            1,
			CourtName:          "Court 1",
			StartTime:          time.Date(2025, 10, 18, 19, 0, 0, 0, time.UTC),
			CancelledBookingID: 42,
			OccurredAt:         occurred,
		}).Return(nil)

		n := NewAMQPNotifier(pub)
		n.now = func() time.Time { return occurred }

		require.NoError(t, n.NotifyWaitlistPromotion(ctx, testPromotion()))
		pub.AssertExpectations(t)
	})

	t.Run("publish failure is returned", func(t *testing.T) {
		pub := &publisherMock{}
		pub.On("PublishJSON", ctx, RoutingKeyWaitlistPromoted, mock.Anything).Return(errors.New("channel closed"))

		err := NewAMQPNotifier(pub).NotifyWaitlistPromotion(ctx, testPromotion())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "channel closed")
	})
}

func TestLogNotifier_NotifyWaitlistPromotion(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(logger.NewWithWriter(&buf, "info"))

	require.NoError(t, n.NotifyWaitlistPromotion(context.Background(), testPromotion()))
	assert.Contains(t, buf.String(), "user_id=7 entry_id=11")
	assert.Contains(t, buf.String(), "2025-10-18T19:00:00Z")
}
