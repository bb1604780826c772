package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusRequested, StatusApproved, true},
		{StatusRequested, StatusCanceled, true},
		{StatusRequested, StatusRequested, false},
		{StatusApproved, StatusApproved, false},
		{StatusApproved, StatusCanceled, false},
		{StatusApproved, StatusRequested, false},
		{StatusCanceled, StatusCanceled, false},
		{StatusCanceled, StatusApproved, false},
		{StatusCanceled, StatusRequested, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestSameStateNeverTransitions(t *testing.T) {
	for _, s := range Statuses() {
		assert.False(t, CanTransition(s, s), s)
	}
}

func TestTerminalStates(t *testing.T) {
	assert.False(t, StatusRequested.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusCanceled.IsTerminal())
	for _, target := range Statuses() {
		assert.False(t, CanTransition(StatusApproved, target))
		assert.False(t, CanTransition(StatusCanceled, target))
	}
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(" Aprovado ")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, status)

	_, err = ParseStatus("approved")
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus("")
	require.ErrorIs(t, err, ErrInvalidStatus)
}
