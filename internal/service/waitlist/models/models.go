package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// JoinRequest запрос на вступление в очередь ожидания
type JoinRequest struct {
	UserID    int64
	CourtID   int64
	StartTime time.Time
}

// EntryResponse запись очереди ожидания
type EntryResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	CourtID    int64     `json:"courtId"`
	StartTime  time.Time `json:"startTime"`
	Status     string    `json:"status"`
	NotifiedAt *string   `json:"notifiedAt,omitempty"` // ISO 8601 format
	CreatedAt  time.Time `json:"createdAt"`
}

// EntryListResponse список записей очереди
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.WaitlistEntry) *EntryResponse {
	if e == nil {
		return nil
	}

	resp := &EntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		CourtID:   e.CourtID,
		StartTime: e.StartTime,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
	}

	if e.NotifiedAt != nil {
		notifiedStr := e.NotifiedAt.Format(time.RFC3339)
		resp.NotifiedAt = &notifiedStr
	}

	return resp
}

// FromDomainEntryList конвертирует список записей в DTO
func FromDomainEntryList(entries []*domain.WaitlistEntry) *EntryListResponse {
	resp := &EntryListResponse{
		Entries: make([]EntryResponse, 0, len(entries)),
	}

	for _, e := range entries {
		if entryResp := FromDomainEntry(e); entryResp != nil {
			resp.Entries = append(resp.Entries, *entryResp)
		}
	}

	return resp
}
