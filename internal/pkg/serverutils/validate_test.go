package serverutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSessionID(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		wantErr   bool
	}{
		{"canonical v4", "11111111-1111-4111-8111-111111111111", false},
		{"random v4", "de305d54-75b4-431b-adb2-eb6b9e546014", false},
		{"empty", "", true},
		{"not a uuid", "session-42", true},
		{"version 1", "11111111-1111-1111-8111-111111111111", true},
		{"braced form", "{11111111-1111-4111-8111-111111111111}", true},
		{"missing hyphens", "11111111111141118111111111111111", true},
		{"truncated", "11111111-1111-4111-8111", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSessionID(tt.sessionID)
			if tt.wantErr {
				require.Error(t, err)
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "Invalid session ID format", verr.Message)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type loginPayload struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(&loginPayload{Username: "operator", Password: "secret"})
	assert.NoError(t, err)

	err = ValidateRequest(&loginPayload{Password: "secret"})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Missing required property: 'username'", verr.Message)

	err = ValidateRequest(&loginPayload{Username: "operator"})
	require.Error(t, err)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Missing required property: 'password'", verr.Message)
}
