package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "uwevents/pkg/domain-errors"
)

func TestDecisionValidate(t *testing.T) {
	tests := []struct {
		name    string
		d       Decision
		wantErr string
	}{
		{name: "approval without reason", d: Decision{ID: 1, Kind: KindEvent, Verdict: VerdictApproved}},
		{name: "rejection with reason", d: Decision{ID: 1, Kind: KindClub, Verdict: VerdictRejected, RejectionReason: "duplicate"}},
		{name: "rejection with empty reason", d: Decision{ID: 1, Kind: KindEvent, Verdict: VerdictRejected}, wantErr: "Rejection reason is required"},
		{name: "rejection with blank reason", d: Decision{ID: 1, Kind: KindClub, Verdict: VerdictRejected, RejectionReason: " \t"}, wantErr: "Rejection reason is required"},
		{name: "zero id", d: Decision{Kind: KindEvent, Verdict: VerdictApproved}, wantErr: "id must be at least 1"},
		{name: "unknown kind", d: Decision{ID: 1, Kind: "society", Verdict: VerdictApproved}, wantErr: "kind must be one of [event club]"},
		{name: "unknown verdict", d: Decision{ID: 1, Kind: KindEvent, Verdict: "pending"}, wantErr: "verdict must be one of [approved rejected]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestDecisionBodyOmitsReasonOnApproval(t *testing.T) {
	approved := Decision{ID: 1, Kind: KindEvent, Verdict: VerdictApproved, RejectionReason: "left over"}
	assert.Equal(t, moderateRequest{Status: VerdictApproved}, approved.body())

	rejected := Decision{ID: 1, Kind: KindEvent, Verdict: VerdictRejected, RejectionReason: "  spam "}
	assert.Equal(t, moderateRequest{Status: VerdictRejected, RejectionReason: "spam"}, rejected.body())
}
