package adplatformclient

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/pkg/errors"
	adplatformdomain "github.com/vfg2006/campaign-sync/infrastructure/integrator/adplatform/domain"
)

var ErrMissingAccessToken = errors.New("access token missing from auth response")

// RequestAccessToken troca email e senha por um bearer token via HTTP Basic
func (c *AdPlatformClient) RequestAccessToken(ctx context.Context, email, password string) (*adplatformdomain.TokenResponse, error) {
	endpoint, err := c.endpoint(nil, "auth", "token")
	if err != nil {
		return nil, err
	}

	req, err := newRequest(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Basic "+BasicCredentials(email, password))

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	tokenResp, err := adplatformdomain.DecodeTokenResponse(body)
	if err != nil {
		return nil, errors.Wrap(err, "adplatform: decoding auth response")
	}

	if tokenResp.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}

	return tokenResp, nil
}

// BasicCredentials codifica email:senha em base64
func BasicCredentials(email, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(email + ":" + password))
}
