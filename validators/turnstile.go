package validators

import (
	"context"
	"errors"

	"github.com/9ssi7/turnstile"
	"go.uber.org/zap"
)

var (
	ErrTokenRequired = errors.New("token is required")
	ErrTokenInvalid  = errors.New("token_not_valid")
	ErrVerification  = errors.New("internal_server_error")
)

// TurnstileVerifier checks Cloudflare Turnstile tokens posted with a form.
// A verifier without a secret accepts everything.
type TurnstileVerifier struct {
	secret    string
	testToken string
	release   bool
	verify    func(ctx context.Context, token, ip string) (bool, error)
	logger    *zap.Logger
}

func NewTurnstileVerifier(secret, testToken string, release bool, logger *zap.Logger) *TurnstileVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := &TurnstileVerifier{
		secret:    secret,
		testToken: testToken,
		release:   release,
		logger:    logger,
	}
	if secret != "" {
		srv := turnstile.New(turnstile.Config{
			Secret: secret,
		})
		v.verify = srv.Verify
	}
	return v
}

func (v *TurnstileVerifier) Enabled() bool {
	return v != nil && v.secret != ""
}

func (v *TurnstileVerifier) Verify(ctx context.Context, token string, ip string) error {
	if !v.Enabled() {
		return nil
	}
	if token == "" {
		v.logger.Info("turnstile token missing", zap.String("ip", ip))
		return ErrTokenRequired
	}
	if !v.release && v.testToken != "" && token == v.testToken {
		v.logger.Debug("turnstile test token used")
		return nil
	}

	ok, err := v.verify(ctx, token, ip)
	if err != nil {
		v.logger.Warn("turnstile verification error", zap.Error(err))
		return ErrVerification
	}
	if !ok {
		v.logger.Info("turnstile token not valid", zap.String("ip", ip))
		return ErrTokenInvalid
	}
	return nil
}
