package domain

import "encoding/json"

// Domain contains the menu entities as the remote API returns them.
// Optional scalars are pointers so that an absent field stays absent.

type Category struct {
	ID          string `json:"_id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

type SubCategory struct {
	ID          string `json:"_id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Category    *Ref   `json:"category,omitempty"`
}

type Product struct {
	ID                 string       `json:"_id"`
	Title              string       `json:"title,omitempty"`
	Description        string       `json:"description,omitempty"`
	Image              string       `json:"image,omitempty"`
	Price              float64      `json:"price"`
	PriceAfterDiscount *float64     `json:"priceAfterDiscount,omitempty"`
	Ingredients        []Ingredient `json:"ingredients,omitempty"`
	Extras             []Extra      `json:"extras,omitempty"`
	Category           *Ref         `json:"category,omitempty"`
	SubCategory        *Ref         `json:"subCategory,omitempty"`
	Available          *bool        `json:"available,omitempty"`
}

// Extra is a paid add-on offered with a product.
type Extra struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Offer is a promotional bundle; Items are only populated by the detail endpoint.
type Offer struct {
	ID                 string    `json:"_id"`
	Title              string    `json:"title,omitempty"`
	Description        string    `json:"description,omitempty"`
	Image              string    `json:"image,omitempty"`
	PriceAfterDiscount *float64  `json:"priceAfterDiscount,omitempty"`
	IsActive           *bool     `json:"isActive,omitempty"`
	Items              []Product `json:"items,omitempty"`
}

// Envelope is a response body shaped as {data: ..., message: ...}.
// Raw holds the full body as received so fields the typed model does not
// name can still be read.
type Envelope[T any] struct {
	Data    T               `json:"data"`
	Message string          `json:"message,omitempty"`
	Raw     json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes data strictly. A message that is not a string is
// left empty; it remains readable through Raw.
func (e *Envelope[T]) UnmarshalJSON(b []byte) error {
	var fields struct {
		Data    json.RawMessage `json:"data"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	var env Envelope[T]
	if len(fields.Data) > 0 {
		if err := json.Unmarshal(fields.Data, &env.Data); err != nil {
			return err
		}
	}
	var msg any
	if len(fields.Message) > 0 && json.Unmarshal(fields.Message, &msg) == nil {
		if s, ok := msg.(string); ok {
			env.Message = s
		}
	}
	env.Raw = e.Raw
	*e = env
	return nil
}
