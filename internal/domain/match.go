package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchResult is the outcome of one gallery query. Identity is nil when no
// entry fell under the distance threshold; Confidence and Distance still
// describe the closest candidate so callers can surface diagnostics.
type MatchResult struct {
	Identity   *Identity `json:"identity,omitempty"`
	Confidence float64   `json:"confidence"`
	Distance   float64   `json:"distance"`
}

// Accepted reports whether the query resolved to an enrolled identity.
func (r *MatchResult) Accepted() bool {
	return r != nil && r.Identity != nil
}

// Outcome classifies what the recognition session decided for one face.
type Outcome string

const (
	// OutcomeRecorded means a new attendance event was written.
	OutcomeRecorded Outcome = "recorded"
	// OutcomeAlreadyPresent means the ledger already had an event for
	// this identity today. Expected, not an error.
	OutcomeAlreadyPresent Outcome = "already_present"
	// OutcomeDuplicateSession means this run already handled the identity;
	// the ledger was not consulted again.
	OutcomeDuplicateSession Outcome = "duplicate_session"
	// OutcomeUnknown means no enrolled identity matched under the threshold.
	OutcomeUnknown Outcome = "unknown"
	// OutcomeSkipped means embedding extraction failed for the face.
	OutcomeSkipped Outcome = "skipped"
)

// FaceDecision is the per-face result a session reports to its caller.
type FaceDecision struct {
	Outcome    Outcome   `json:"outcome"`
	Identity   *Identity `json:"identity,omitempty"`
	Confidence float64   `json:"confidence"`
}

// RecognitionAudit registra o resultado de uma consulta ao motor de busca
type RecognitionAudit struct {
	ID             uuid.UUID `json:"id"`
	MatchedUserID  *string   `json:"matched_user_id,omitempty"`
	Confidence     float64   `json:"confidence"`
	Threshold      float64   `json:"threshold"`
	Source         string    `json:"source"`
	QueryEmbedding []float64 `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
