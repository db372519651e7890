package validators

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func stubVerifier(release bool, ok bool, err error) *TurnstileVerifier {
	v := NewTurnstileVerifier("secret", "test-token", release, zap.NewNop())
	v.verify = func(context.Context, string, string) (bool, error) {
		return ok, err
	}
	return v
}

func TestTurnstileDisabledWithoutSecret(t *testing.T) {
	v := NewTurnstileVerifier("", "", true, zap.NewNop())
	assert.False(t, v.Enabled())
	assert.NoError(t, v.Verify(context.Background(), "", "127.0.0.1"))
}

func TestTurnstileNilVerifierAcceptsEverything(t *testing.T) {
	var v *TurnstileVerifier
	assert.NoError(t, v.Verify(context.Background(), "", "127.0.0.1"))
}

func TestTurnstileRequiresToken(t *testing.T) {
	v := stubVerifier(true, true, nil)
	assert.ErrorIs(t, v.Verify(context.Background(), "", "127.0.0.1"), ErrTokenRequired)
}

func TestTurnstileTestTokenOnlyOutsideRelease(t *testing.T) {
	dev := stubVerifier(false, false, nil)
	assert.NoError(t, dev.Verify(context.Background(), "test-token", "127.0.0.1"))

	rel := stubVerifier(true, false, nil)
	assert.ErrorIs(t, rel.Verify(context.Background(), "test-token", "127.0.0.1"), ErrTokenInvalid)
}

func TestTurnstileVerificationOutcome(t *testing.T) {
	assert.NoError(t, stubVerifier(true, true, nil).Verify(context.Background(), "tok", "1.2.3.4"))
	assert.ErrorIs(t, stubVerifier(true, false, nil).Verify(context.Background(), "tok", "1.2.3.4"), ErrTokenInvalid)
	assert.ErrorIs(t, stubVerifier(true, false, errors.New("boom")).Verify(context.Background(), "tok", "1.2.3.4"), ErrVerification)
}
