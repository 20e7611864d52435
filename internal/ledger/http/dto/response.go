// Package dto provides data transfer objects for the ledger HTTP layer.
package dto

import (
	"time"

	ledgerDomain "github.com/viralspark/gateway/internal/ledger/domain"
)

// UsageRecordResponse is the API representation of a ledger entry.
type UsageRecordResponse struct {
	ID           string    `json:"id"`
	SubjectID    string    `json:"subject_id"`
	Capability   string    `json:"capability"`
	Endpoint     string    `json:"endpoint"`
	Outcome      string    `json:"outcome"`
	ElapsedMS    int64     `json:"elapsed_ms"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UsageListResponse is a paginated ledger listing.
type UsageListResponse struct {
	Records []UsageRecordResponse `json:"records"`
	Offset  int                   `json:"offset"`
	Limit   int                   `json:"limit"`
}

// MapUsageRecordToResponse converts a ledger entry to its API representation.
func MapUsageRecordToResponse(record *ledgerDomain.UsageRecord) UsageRecordResponse {
	return UsageRecordResponse{
		ID:           record.ID.String(),
		SubjectID:    record.SubjectID,
		Capability:   record.Capability,
		Endpoint:     record.Endpoint,
		Outcome:      string(record.Outcome),
		ElapsedMS:    record.ElapsedMS,
		ErrorMessage: record.ErrorMessage,
		CreatedAt:    record.CreatedAt,
	}
}

// MapUsageRecordsToResponse converts a page of ledger entries to the API listing.
func MapUsageRecordsToResponse(
	records []*ledgerDomain.UsageRecord,
	offset, limit int,
) UsageListResponse {
	response := UsageListResponse{
		Records: make([]UsageRecordResponse, 0, len(records)),
		Offset:  offset,
		Limit:   limit,
	}
	for _, record := range records {
		response.Records = append(response.Records, MapUsageRecordToResponse(record))
	}
	return response
}
