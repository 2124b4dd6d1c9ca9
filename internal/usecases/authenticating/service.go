package authenticating

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-sync/infrastructure/integrator/adplatform/adplatformclient"
	adplatformdomain "github.com/vfg2006/campaign-sync/infrastructure/integrator/adplatform/domain"
	"github.com/vfg2006/campaign-sync/internal/config"
)

type Authenticator interface {
	Authenticate(ctx context.Context) (string, error)
}

type Service struct {
	client adplatformclient.Client
	cfg    *config.Config
}

func NewService(client adplatformclient.Client, cfg *config.Config) Authenticator {
	return &Service{
		client: client,
		cfg:    cfg,
	}
}

// Authenticate troca as credenciais configuradas por um bearer token.
// Não há cache nem renovação: cada execução autentica uma vez.
func (s *Service) Authenticate(ctx context.Context) (string, error) {
	if err := s.validateCredentials(); err != nil {
		return "", err
	}

	logrus.WithField("api_url", s.cfg.AdPlatform.URL).Info("auth: authenticating with ad platform")

	tokenResp, err := s.client.RequestAccessToken(ctx, s.cfg.AdPlatform.Email, s.cfg.AdPlatform.Password)
	if err != nil {
		authErr := toAuthenticationError(err)
		logrus.WithError(authErr).Error("auth: authentication failed")
		return "", authErr
	}

	fields := logrus.Fields{}
	if expiresAt, ok := tokenExpiry(tokenResp); ok {
		fields["expires_at"] = expiresAt.Format(time.RFC3339)
	}
	logrus.WithFields(fields).Info("auth: authenticated successfully")

	return tokenResp.AccessToken, nil
}

func (s *Service) validateCredentials() error {
	missing := make([]string, 0, 2)
	if s.cfg.AdPlatform.Email == "" {
		missing = append(missing, "AD_PLATFORM_EMAIL")
	}
	if s.cfg.AdPlatform.Password == "" {
		missing = append(missing, "AD_PLATFORM_PASSWORD")
	}

	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

func toAuthenticationError(err error) *AuthenticationError {
	if errors.Is(err, adplatformclient.ErrMissingAccessToken) {
		return &AuthenticationError{Err: ErrMissingAccessToken}
	}

	var apiErr *adplatformdomain.APIError
	if errors.As(err, &apiErr) {
		return &AuthenticationError{
			Err:        ErrAuthenticationFailed,
			StatusCode: apiErr.StatusCode,
			Details:    apiErr.Message(),
		}
	}

	return &AuthenticationError{
		Err:     ErrAuthenticationFailed,
		Details: err.Error(),
	}
}

// tokenExpiry lê a expiração do token sem validar a assinatura: serve apenas para log.
// Tokens que não são JWT usam expires_in, quando informado.
func tokenExpiry(tokenResp *adplatformdomain.TokenResponse) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenResp.AccessToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time, true
		}
	}

	if tokenResp.ExpiresIn > 0 {
		return time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second), true
	}

	return time.Time{}, false
}
