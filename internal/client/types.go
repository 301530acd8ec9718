package client

import "encoding/json"

// Decision is the moderation verdict attached to every chat response.
type Decision string

const (
	DecisionBlock Decision = "BLOCK"
	DecisionWarn  Decision = "WARN"
	DecisionAllow Decision = "ALLOW"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the decision-tagged answer from the firewall.
// Which fields are populated depends on Decision: BLOCK carries
// SafeResponse, WARN carries Warning and LLMResponse, ALLOW carries
// LLMResponse. Explain is kept raw so callers can pretty-print it
// without losing fields the server may add.
type ChatResponse struct {
	Decision     Decision        `json:"decision"`
	SafeResponse string          `json:"safe_response,omitempty"`
	Warning      string          `json:"warning,omitempty"`
	LLMResponse  string          `json:"llm_response,omitempty"`
	Explain      json.RawMessage `json:"explain,omitempty"`
}

// StringList is a list field of an audit row. The server stores these
// columns as JSON text in SQLite; the audit endpoints decode them before
// responding, but the review endpoint returns raw rows, so the same
// field arrives either as an array or as a string holding an encoded
// array ("[\"dosage\"]"). UnmarshalJSON accepts both shapes.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		if inner == "" {
			*s = nil
			return nil
		}
		data = []byte(inner)
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = items
	return nil
}

// AuditRecord is the typed view of one audit row. The download path
// never uses it (the file must be a faithful re-indent of the server
// JSON); it exists for the review queue, where individual fields are
// displayed.
type AuditRecord struct {
	ID               int64      `json:"id"`
	Timestamp        string     `json:"timestamp"`
	SessionID        string     `json:"session_id"`
	MaskedText       string     `json:"masked_text"`
	Decision         Decision   `json:"decision"`
	MatchedRules     StringList `json:"matched_rules,omitempty"`
	BlockHits        StringList `json:"block_hits,omitempty"`
	WarnHits         StringList `json:"warn_hits,omitempty"`
	ReviewerDecision string     `json:"reviewer_decision,omitempty"`
}

// ReviewPage is the response of GET /admin/review.
type ReviewPage struct {
	Count     int           `json:"count"`
	WarnItems []AuditRecord `json:"warn_items"`
}

// Health is the response of GET /health.
type Health struct {
	Status   string `json:"status"`
	Requests int64  `json:"requests"`
}

// Metrics is the response of GET /metrics.
type Metrics struct {
	Requests    int64  `json:"requests"`
	Allowed     int64  `json:"allowed"`
	Blocked     int64  `json:"blocked"`
	Warned      int64  `json:"warned"`
	LastRequest string `json:"last_request,omitempty"`
}

// ReviewActions are the verdicts an admin may record for a WARN item.
var ReviewActions = []string{"allow", "block", "ignore"}

// ValidReviewAction reports whether action is one of ReviewActions.
func ValidReviewAction(action string) bool {
	for _, a := range ReviewActions {
		if action == a {
			return true
		}
	}
	return false
}
