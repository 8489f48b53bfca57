package sealer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShareTokenRoundTrip(t *testing.T) {
	token, err := CreateShareToken("studio-north", "65f1c0ffee0000000000aaaa")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	studioID, serviceID, err := ParseShareToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "studio-north", studioID)
	assert.Equal(t, "65f1c0ffee0000000000aaaa", serviceID)
}

func TestShareTokenUnique(t *testing.T) {
	// Random nonce means two seals of the same pair differ.
	a, err := CreateShareToken("s", "x")
	assert.NoError(t, err)
	b, err := CreateShareToken("s", "x")
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParseShareTokenRejectsGarbage(t *testing.T) {
	_, _, err := ParseShareToken("not-a-token")
	assert.Error(t, err)

	_, _, err = ParseShareToken("")
	assert.Error(t, err)
}
