package notificationservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с NotificationService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotificationService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NotifyWaitlistPromotion отправляет пользователю уведомление об освободившемся слоте
func (c *Client) NotifyWaitlistPromotion(ctx context.Context, promotion *domain.WaitlistPromotion) error {
	url := fmt.Sprintf("%s/internal/notifications/waitlist-promotions", c.baseURL)

	payload, err := json.Marshal(WaitlistPromotionRequest{
		UserID:             promotion.UserID,
		WaitlistEntryID:    promotion.EntryID,
		CourtID:            promotion.CourtID,
		CourtName:          promotion.CourtName,
		StartTime:          promotion.StartTime.UTC(),
		CancelledBookingID: promotion.CancelledBookingID,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	c.log.Info("Sending waitlist promotion for user_id=%d, entry_id=%d", promotion.UserID, promotion.EntryID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		c.log.Info("Waitlist promotion delivered for user_id=%d", promotion.UserID)
		return nil
	case http.StatusNotFound:
		return ErrRecipientNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}
