package adplatformdomain

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/campaign-sync/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrInvalidCampaign = errors.New("invalid campaign record")

// CampaignPage é uma página de GET /api/campaigns já com os valores padrão aplicados:
// data ausente ou que não seja lista vira lista vazia, has_more ausente ou não booleano vira false.
type CampaignPage struct {
	Data    []jsoniter.RawMessage
	HasMore bool
}

type campaignPageEnvelope struct {
	Data       jsoniter.RawMessage `json:"data"`
	Pagination jsoniter.RawMessage `json:"pagination"`
}

type pagination struct {
	HasMore jsoniter.RawMessage `json:"has_more"`
}

// DecodeCampaignPage interpreta o corpo de uma página de campanhas.
// Só retorna erro quando o corpo não é JSON válido.
func DecodeCampaignPage(body []byte) (*CampaignPage, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("campaign page is not valid JSON")
	}

	page := &CampaignPage{Data: []jsoniter.RawMessage{}}

	var envelope campaignPageEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		// JSON válido mas não é objeto (lista, string, número)
		return page, nil
	}

	var data []jsoniter.RawMessage
	if len(envelope.Data) > 0 && json.Unmarshal(envelope.Data, &data) == nil && data != nil {
		page.Data = data
	}

	var p pagination
	if len(envelope.Pagination) > 0 && json.Unmarshal(envelope.Pagination, &p) == nil && len(p.HasMore) > 0 {
		var hasMore bool
		if json.Unmarshal(p.HasMore, &hasMore) == nil {
			page.HasMore = hasMore
		}
	}

	return page, nil
}

// ToCampaign converte um registro bruto em campanha. O registro precisa ser um
// objeto com id e name do tipo string; os demais campos passam sem validação.
func ToCampaign(raw jsoniter.RawMessage) (*domain.Campaign, error) {
	var attributes map[string]any
	if err := json.Unmarshal(raw, &attributes); err != nil || attributes == nil {
		return nil, fmt.Errorf("%w: record is not an object", ErrInvalidCampaign)
	}

	id, ok := attributes["id"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCampaign, describeField("id", attributes))
	}

	name, ok := attributes["name"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCampaign, describeField("name", attributes))
	}

	// synced_at nunca vem da API
	delete(attributes, "synced_at")

	return domain.NewCampaign(id, name, attributes), nil
}

func describeField(field string, attributes map[string]any) string {
	v, ok := attributes[field]
	if !ok || v == nil {
		return fmt.Sprintf("missing %s", field)
	}
	return fmt.Sprintf("%s is %T, want string", field, v)
}
