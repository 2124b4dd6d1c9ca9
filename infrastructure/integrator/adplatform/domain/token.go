package adplatformdomain

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// TokenResponse representa a resposta de POST /auth/token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

type tokenEnvelope struct {
	AccessToken jsoniter.RawMessage `json:"access_token"`
	TokenType   jsoniter.RawMessage `json:"token_type"`
	ExpiresIn   jsoniter.RawMessage `json:"expires_in"`
}

// DecodeTokenResponse interpreta o corpo da autenticação campo a campo.
// Só retorna erro quando o corpo não é JSON válido; campos com tipo inesperado
// ficam com o valor zero (access_token vazio é tratado por quem chamou).
func DecodeTokenResponse(body []byte) (*TokenResponse, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("auth response is not valid JSON")
	}

	token := &TokenResponse{}

	var envelope tokenEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return token, nil
	}

	decodeField(envelope.AccessToken, &token.AccessToken)
	decodeField(envelope.TokenType, &token.TokenType)

	var expiresIn float64
	if decodeField(envelope.ExpiresIn, &expiresIn) && expiresIn > 0 {
		token.ExpiresIn = int64(expiresIn)
	}

	return token, nil
}

func decodeField(raw jsoniter.RawMessage, v any) bool {
	return len(raw) > 0 && json.Unmarshal(raw, v) == nil
}

// SyncCampaignRequest é o corpo de POST /api/campaigns/{id}/sync
type SyncCampaignRequest struct {
	CampaignID string `json:"campaign_id"`
}
