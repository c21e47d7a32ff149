package summary

import (
	"encoding/json"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Status reports whether the upstream call produced a summary. A failed call
// still yields a well-formed (empty) response so legacy callers keep working.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Request is the incoming summarization payload. MedicalData is kept raw so
// the flattener sees the document's original key order.
type Request struct {
	MedicalData json.RawMessage `json:"medicalData"`
	PatientID   string          `json:"patientId,omitempty"`
}

// Reference is one citation entry returned by the summarization endpoint.
type Reference struct {
	ReferenceNumber int    `json:"referenceNumber"`
	Label           string `json:"label"`
	ExternalURL     string `json:"externalURL,omitempty"`
}

// Result is the parsed body of a successful upstream response.
type Result struct {
	Answer       string      `json:"answer"`
	References   []Reference `json:"references"`
	ResponseTime int64       `json:"responseTime,omitempty"`
}

var markupPattern = regexp.MustCompile(`<[^>]+>`)

// PlainAnswer returns the answer with inline markup stripped, for display
// surfaces that render plain text.
func (r Result) PlainAnswer() string {
	return markupPattern.ReplaceAllString(r.Answer, "")
}

// Response is returned by the summarize endpoint.
type Response struct {
	SummaryID    uuid.UUID   `json:"summaryId"`
	PatientID    string      `json:"patientId,omitempty"`
	Answer       string      `json:"answer"`
	References   []Reference `json:"references"`
	ResponseTime int64       `json:"responseTime,omitempty"`
	ProcessingMs int64       `json:"processingMs"`
	Status       Status      `json:"status"`
}

// StoredSummary is the record shape handed to the record store.
type StoredSummary struct {
	ID           uuid.UUID   `json:"id"`
	PatientID    string      `json:"patientId,omitempty"`
	Answer       string      `json:"answer"`
	References   []Reference `json:"references"`
	ResponseTime int64       `json:"responseTime"`
	CreatedAt    time.Time   `json:"createdAt"`
}
