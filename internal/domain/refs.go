package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

var jsonNull = []byte("null")

// Ref is a back-reference the API returns either as a bare id string or as a
// populated object such as {"_id": "...", "title": "..."}. It re-encodes in
// the shape it was decoded from.
type Ref struct {
	id    string
	title string
	raw   json.RawMessage
}

// NewRef builds an id-only reference.
func NewRef(id string) *Ref {
	return &Ref{id: id}
}

// ID returns the referenced id; nil refs yield "".
func (r *Ref) ID() string {
	if r == nil {
		return ""
	}
	return r.id
}

// Title returns the title of a populated reference.
func (r *Ref) Title() string {
	if r == nil {
		return ""
	}
	return r.title
}

// Populated reports whether the reference was returned as an object.
func (r *Ref) Populated() bool {
	return r != nil && r.raw != nil
}

// Label returns the title when populated, else the id.
func (r *Ref) Label() string {
	if t := r.Title(); t != "" {
		return t
	}
	return r.ID()
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = Ref{}
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.id)
	}

	var obj struct {
		ID    string `json:"_id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode reference: %w", err)
	}
	r.id = obj.ID
	r.title = obj.Title
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	return json.Marshal(r.id)
}

// Ingredient is either a plain string or an object carrying a title or name.
type Ingredient struct {
	label string
	raw   json.RawMessage
}

// NewIngredient builds a plain string ingredient.
func NewIngredient(label string) Ingredient {
	return Ingredient{label: label}
}

// Label returns the display text of the ingredient.
func (i Ingredient) Label() string { return i.label }

func (i *Ingredient) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*i = Ingredient{}
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &i.label)
	}

	var obj struct {
		Title string `json:"title"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode ingredient: %w", err)
	}
	i.label = strings.TrimSpace(obj.Title)
	if i.label == "" {
		i.label = strings.TrimSpace(obj.Name)
	}
	i.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (i Ingredient) MarshalJSON() ([]byte, error) {
	if i.raw != nil {
		return i.raw, nil
	}
	return json.Marshal(i.label)
}
