package dragonball

import (
	"bytes"
	"encoding/json"
)

// PowerLevel is a ki value as published by the API ("60.000.000", "90 Septillion").
// Numeric values are accepted and kept in their textual form.
type PowerLevel string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (p *PowerLevel) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PowerLevel(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = PowerLevel(n.String())
	return nil
}

// Character is a character record as returned by the listing endpoint.
type Character struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Ki          PowerLevel `json:"ki"`
	MaxKi       PowerLevel `json:"maxKi"`
	Race        string     `json:"race"`
	Gender      string     `json:"gender"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Affiliation string     `json:"affiliation"`
	DeletedAt   *string    `json:"deletedAt"`
}

// Planet is a planet record, embedded in character details as originPlanet.
type Planet struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	IsDestroyed bool    `json:"isDestroyed"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	DeletedAt   *string `json:"deletedAt"`
}

// Transformation is a transformation record attached to a character.
type Transformation struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Image     string     `json:"image"`
	Ki        PowerLevel `json:"ki"`
	DeletedAt *string    `json:"deletedAt"`
}

// CharacterDetail is the response of GET /characters/{id}.
//
// A decoded CharacterDetail remembers the exact bytes it was decoded from and
// marshals back to them, so no upstream field is dropped or renamed.
type CharacterDetail struct {
	Character
	OriginPlanet    *Planet          `json:"originPlanet,omitempty"`
	Transformations []Transformation `json:"transformations,omitempty"`

	raw json.RawMessage
}

type characterDetailFields CharacterDetail

// UnmarshalJSON decodes the detail and keeps a copy of data.
func (d *CharacterDetail) UnmarshalJSON(data []byte) error {
	var fields characterDetailFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*d = CharacterDetail(fields)
	d.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the upstream bytes when available.
func (d CharacterDetail) MarshalJSON() ([]byte, error) {
	if len(d.raw) > 0 {
		return d.raw, nil
	}
	return json.Marshal(characterDetailFields(d))
}

// Raw returns the upstream body this value was decoded from, if any.
func (d CharacterDetail) Raw() json.RawMessage {
	return d.raw
}

// PageMeta carries pagination counters of a listing response.
type PageMeta struct {
	TotalItems   int `json:"totalItems"`
	ItemCount    int `json:"itemCount"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

// PageLinks holds navigation URLs; the API uses "" where a link does not apply.
type PageLinks struct {
	First    string `json:"first"`
	Previous string `json:"previous"`
	Next     string `json:"next"`
	Last     string `json:"last"`
}

// CharacterPage is the paginated envelope returned by GET /characters.
// Like CharacterDetail it marshals back to the exact upstream bytes.
type CharacterPage struct {
	Items []Character `json:"items"`
	Meta  PageMeta    `json:"meta"`
	Links PageLinks   `json:"links"`

	raw           json.RawMessage
	requestedPage int
}

type characterPageFields CharacterPage

// UnmarshalJSON decodes the envelope and keeps a copy of data.
func (p *CharacterPage) UnmarshalJSON(data []byte) error {
	var fields characterPageFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*p = CharacterPage(fields)
	p.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the upstream bytes when available.
func (p CharacterPage) MarshalJSON() ([]byte, error) {
	if len(p.raw) > 0 {
		return p.raw, nil
	}
	return json.Marshal(characterPageFields(p))
}

// Raw returns the upstream body this value was decoded from, if any.
func (p CharacterPage) Raw() json.RawMessage {
	return p.raw
}

// RequestedPage is the page number that was asked for, falling back to the
// page reported by the API when the value was not produced by ListCharacters.
func (p CharacterPage) RequestedPage() int {
	if p.requestedPage > 0 {
		return p.requestedPage
	}
	return p.Meta.CurrentPage
}
