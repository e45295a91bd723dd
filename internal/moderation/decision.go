package moderation

import (
	"strings"

	dErrors "uwevents/pkg/domain-errors"
	"uwevents/pkg/validation"
)

// Kind is the type of submission a decision applies to.
type Kind string

const (
	KindEvent Kind = "event"
	KindClub  Kind = "club"
)

// Verdict is the moderation outcome.
type Verdict string

const (
	VerdictApproved Verdict = "approved"
	VerdictRejected Verdict = "rejected"
)

// MsgReasonRequired is reported when a rejection carries no reason.
const MsgReasonRequired = "Rejection reason is required"

// Decision approves or rejects one pending submission.
type Decision struct {
	ID              int64   `json:"id" validate:"min=1"`
	Kind            Kind    `json:"kind" validate:"oneof=event club"`
	Verdict         Verdict `json:"verdict" validate:"oneof=approved rejected"`
	RejectionReason string  `json:"rejection_reason"`
}

// Validate checks the decision before anything is sent.
func (d Decision) Validate() error {
	if err := validation.Validate(d); err != nil {
		return err
	}
	if d.Verdict == VerdictRejected && strings.TrimSpace(d.RejectionReason) == "" {
		return dErrors.New(dErrors.CodeValidation, MsgReasonRequired)
	}
	return nil
}

type moderateRequest struct {
	Status          Verdict `json:"status"`
	RejectionReason string  `json:"rejection_reason,omitempty"`
}

// body is the PATCH payload; approvals never carry a reason.
func (d Decision) body() moderateRequest {
	req := moderateRequest{Status: d.Verdict}
	if d.Verdict == VerdictRejected {
		req.RejectionReason = strings.TrimSpace(d.RejectionReason)
	}
	return req
}
