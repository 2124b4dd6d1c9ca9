package domain

import (
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SyncedAtLayout é o formato ISO-8601 em UTC com milissegundos usado em synced_at
const SyncedAtLayout = "2006-01-02T15:04:05.000Z"

// Campaign representa uma campanha recebida da plataforma de anúncios.
// Attributes guarda o registro original, campo a campo, sem validação.
type Campaign struct {
	ID         string
	Name       string
	SyncedAt   string
	Attributes map[string]any
}

// NewCampaign monta uma campanha a partir do registro original da API
func NewCampaign(id, name string, attributes map[string]any) *Campaign {
	if attributes == nil {
		attributes = map[string]any{"id": id, "name": name}
	}

	return &Campaign{
		ID:         id,
		Name:       name,
		Attributes: attributes,
	}
}

// Field retorna um campo do registro original
func (c *Campaign) Field(name string) (any, bool) {
	v, ok := c.Attributes[name]
	return v, ok
}

// Stamp define synced_at a partir do instante informado
func (c *Campaign) Stamp(at time.Time) {
	c.SyncedAt = at.UTC().Format(SyncedAtLayout)
}

// Clone devolve uma cópia rasa do registro
func (c *Campaign) Clone() *Campaign {
	attributes := make(map[string]any, len(c.Attributes))
	for k, v := range c.Attributes {
		attributes[k] = v
	}

	return &Campaign{
		ID:         c.ID,
		Name:       c.Name,
		SyncedAt:   c.SyncedAt,
		Attributes: attributes,
	}
}

// MarshalJSON achata o registro original e acrescenta synced_at quando presente
func (c *Campaign) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Attributes)+1)
	for k, v := range c.Attributes {
		out[k] = v
	}

	out["id"] = c.ID
	out["name"] = c.Name
	if c.SyncedAt != "" {
		out["synced_at"] = c.SyncedAt
	} else {
		delete(out, "synced_at")
	}

	return json.Marshal(out)
}

// SortCampaignsByID ordena as campanhas pelo id
func SortCampaignsByID(campaigns []*Campaign) {
	sort.Slice(campaigns, func(i, j int) bool {
		return campaigns[i].ID < campaigns[j].ID
	})
}
