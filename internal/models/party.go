package models

import (
	"bytes"
	"encoding/json"
)

// Party is a reference to a user (farmer, partner, buyer or seller). The API
// sends either a bare id string or a populated object, depending on the endpoint.
type Party struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (p *Party) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &p.ID)
	}

	type plain Party
	var aux struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Party(aux.plain)
	if p.ID == "" {
		p.ID = aux.MongoID
	}
	return nil
}

// Label is what list pages show for the party.
func (p Party) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
