// Package notifier доставляет событие о продвижении в очереди ожидания
// через брокер сообщений или в лог.
package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// RoutingKeyWaitlistPromoted routing key события продвижения
const RoutingKeyWaitlistPromoted = "waitlist.promoted"

// Publisher публикует JSON сообщения (*mq.Publisher)
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// WaitlistPromotedEvent сообщение о продвижении в очереди
type WaitlistPromotedEvent struct {
	EventType          string    `json:"event_type"`
	UserID             int64     `json:"user_id"`
	WaitlistEntryID    int64     `json:"waitlist_entry_id"`
	CourtID            int64     `json:"court_id"`
	CourtName          string    `json:"court_name"`
	StartTime          time.Time `json:"start_time"`
	CancelledBookingID int64     `json:"cancelled_booking_id"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// AMQPNotifier публикует событие в RabbitMQ
type AMQPNotifier struct {
	publisher Publisher
	now       func() time.Time
}

// NewAMQPNotifier создает нотификатор поверх издателя
func NewAMQPNotifier(publisher Publisher) *AMQPNotifier {
	return &AMQPNotifier{publisher: publisher, now: time.Now}
}

// NotifyWaitlistPromotion публикует событие waitlist.promoted
func (n *AMQPNotifier) NotifyWaitlistPromotion(ctx context.Context, promotion *domain.WaitlistPromotion) error {
	event := WaitlistPromotedEvent{
		EventType:          RoutingKeyWaitlistPromoted,
		UserID:             promotion.UserID,
		WaitlistEntryID:    promotion.EntryID,
		CourtID:            promotion.CourtID,
		CourtName:          promotion.CourtName,
		StartTime:          promotion.StartTime.UTC(),
		CancelledBookingID: promotion.CancelledBookingID,
		OccurredAt:         n.now().UTC(),
	}

	if err := n.publisher.PublishJSON(ctx, RoutingKeyWaitlistPromoted, event); err != nil {
		return fmt.Errorf("notifier: publish %s: %w", RoutingKeyWaitlistPromoted, err)
	}
	return nil
}

// LogNotifier только пишет событие в лог
type LogNotifier struct {
	log Logger
}

// NewLogNotifier создает нотификатор, пишущий в лог
func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// NotifyWaitlistPromotion пишет событие в лог
func (n *LogNotifier) NotifyWaitlistPromotion(_ context.Context, promotion *domain.WaitlistPromotion) error {
	n.log.Info("Waitlist promotion: user_id=%d entry_id=%d court=%d (%s) start=%s",
		promotion.UserID, promotion.EntryID, promotion.CourtID, promotion.CourtName,
		promotion.StartTime.UTC().Format(time.RFC3339))
	return nil
}
