package adplatformclient

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	adplatformdomain "github.com/vfg2006/campaign-sync/infrastructure/integrator/adplatform/domain"
)

// ListCampaigns busca uma página de campanhas
func (c *AdPlatformClient) ListCampaigns(ctx context.Context, accessToken string, page, limit int) (*adplatformdomain.CampaignPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	endpoint, err := c.endpoint(query, "api", "campaigns")
	if err != nil {
		return nil, err
	}

	req, err := newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	campaignPage, err := adplatformdomain.DecodeCampaignPage(body)
	if err != nil {
		return nil, errors.Wrapf(err, "adplatform: decoding campaigns page %d", page)
	}

	return campaignPage, nil
}

// SyncCampaign pede à plataforma a sincronização de uma campanha. O corpo da
// resposta é ignorado: só o status importa.
func (c *AdPlatformClient) SyncCampaign(ctx context.Context, accessToken, campaignID string) error {
	endpoint, err := c.endpoint(nil, "api", "campaigns", campaignID, "sync")
	if err != nil {
		return err
	}

	payload, err := json.Marshal(adplatformdomain.SyncCampaignRequest{CampaignID: campaignID})
	if err != nil {
		return errors.Wrap(err, "adplatform: encoding sync request")
	}

	req, err := newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req)
	return err
}
