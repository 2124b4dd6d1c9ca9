package adplatformclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	adplatformdomain "github.com/vfg2006/campaign-sync/infrastructure/integrator/adplatform/domain"
	"github.com/vfg2006/campaign-sync/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	RequestAccessToken(ctx context.Context, email, password string) (*adplatformdomain.TokenResponse, error)
	ListCampaigns(ctx context.Context, accessToken string, page, limit int) (*adplatformdomain.CampaignPage, error)
	SyncCampaign(ctx context.Context, accessToken, campaignID string) error
}

type AdPlatformClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient cria o cliente da plataforma de anúncios. O http.Client não tem
// timeout próprio: os limites vêm do contexto de cada chamada.
func NewClient(cfg *config.Config) Client {
	return &AdPlatformClient{
		httpClient: &http.Client{},
		baseURL:    cfg.AdPlatform.URL,
	}
}

// endpoint junta os segmentos (escapados) à URL base e aplica os parâmetros de consulta.
// Segmentos vazios são mantidos: um id vazio gera "//" no path.
func (c *AdPlatformClient) endpoint(query url.Values, elem ...string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", errors.Wrap(err, "adplatform: invalid base url")
	}

	raw := strings.TrimSuffix(u.Path, "/")
	escaped := strings.TrimSuffix(u.EscapedPath(), "/")
	for _, e := range elem {
		raw += "/" + e
		escaped += "/" + url.PathEscape(e)
	}

	u.Path = raw
	u.RawPath = escaped
	if query != nil {
		u.RawQuery = query.Encode()
	}

	return u.String(), nil
}

// do executa a requisição e devolve o corpo. Respostas não-2xx viram *adplatformdomain.APIError.
func (c *AdPlatformClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "adplatform: %s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "adplatform: reading %s %s response", req.Method, req.URL.Path)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return body, adplatformdomain.NewAPIError(resp.StatusCode, resp.Status, body)
	}

	return body, nil
}

func newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, errors.Wrap(err, "adplatform: creating request")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
