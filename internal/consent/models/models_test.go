package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "consentd/pkg/domain-errors"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    State
		wantErr bool
	}{
		{name: "empty means not set", raw: "", want: StateNotSet},
		{name: "not_set", raw: "not_set", want: StateNotSet},
		{name: "requested", raw: "requested", want: StateRequested},
		{name: "accepted", raw: "accepted", want: StateAccepted},
		{name: "revoked", raw: "revoked", want: StateRevoked},
		{name: "garbage", raw: "maybe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseState(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuardTable(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		guard    func(State) error
		wantCode dErrors.Code
	}{
		{name: "request from not_set", state: StateNotSet, guard: State.CanRequest},
		{name: "request from requested", state: StateRequested, guard: State.CanRequest, wantCode: dErrors.CodeAlreadyRequested},
		{name: "request from accepted", state: StateAccepted, guard: State.CanRequest, wantCode: dErrors.CodeAlreadyRequested},
		{name: "request from revoked", state: StateRevoked, guard: State.CanRequest, wantCode: dErrors.CodeAlreadyRequested},

		{name: "accept from not_set", state: StateNotSet, guard: State.CanAccept},
		{name: "accept from requested", state: StateRequested, guard: State.CanAccept},
		{name: "accept from accepted", state: StateAccepted, guard: State.CanAccept, wantCode: dErrors.CodeAlreadyAccepted},
		{name: "accept from revoked", state: StateRevoked, guard: State.CanAccept, wantCode: dErrors.CodeAlreadyRevoked},

		{name: "revoke from not_set", state: StateNotSet, guard: State.CanRevoke, wantCode: dErrors.CodeAlreadyRevoked},
		{name: "revoke from requested", state: StateRequested, guard: State.CanRevoke},
		{name: "revoke from accepted", state: StateAccepted, guard: State.CanRevoke},
		{name: "revoke from revoked", state: StateRevoked, guard: State.CanRevoke, wantCode: dErrors.CodeAlreadyRevoked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.guard(tt.state)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, tt.wantCode))
		})
	}
}

func TestStateIsValid(t *testing.T) {
	assert.True(t, StateNotSet.IsValid())
	assert.True(t, StateRequested.IsValid())
	assert.True(t, StateAccepted.IsValid())
	assert.True(t, StateRevoked.IsValid())
	assert.False(t, State("pending").IsValid())
}
