package models

import (
	"encoding/json"
	"time"
)

type (
	SubmissionKind    string // Тип пакетной отправки
	SubmissionOutcome string // Результат пакетной отправки
)

const (
	CounterOfferSubmission SubmissionKind = "COUNTER_OFFER"
	ArcApprovalSubmission  SubmissionKind = "ARC_APPROVAL"

	SucceededSubmission SubmissionOutcome = "SUCCEEDED"
	FailedSubmission    SubmissionOutcome = "FAILED"
)

// Valid проверяет тип отправки.
func (k SubmissionKind) Valid() bool {
	return k == CounterOfferSubmission || k == ArcApprovalSubmission
}

// Submission представляет запись журнала пакетных отправок.
type Submission struct {
	ID         string            `json:"id"`
	SessionID  string            `json:"sessionId"`
	RFQEventID string            `json:"rfqEventId"`
	Kind       SubmissionKind    `json:"kind"`
	Payload    json.RawMessage   `json:"payload"`
	Outcome    SubmissionOutcome `json:"outcome"`
	Error      string            `json:"error,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}
