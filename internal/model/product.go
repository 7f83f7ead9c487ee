package model

// Product represents a catalogue product held in the document store.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Equal reports whether two products carry the same data. The ID is not compared.
func (p Product) Equal(other Product) bool {
	return p.Title == other.Title &&
		p.Description == other.Description &&
		p.Price == other.Price
}

// WithData returns a copy of p with title, description and price taken from data.
// The ID of p is kept.
func (p Product) WithData(data Product) Product {
	p.Title = data.Title
	p.Description = data.Description
	p.Price = data.Price
	return p
}

// ProductRequest represents the request payload for creating or updating a product.
// Price is a pointer so that a missing price can be told apart from zero.
type ProductRequest struct {
	ID          *string  `json:"id,omitempty"`
	Title       string   `json:"title" validate:"notblank"`
	Description string   `json:"description" validate:"notblank"`
	Price       *float64 `json:"price" validate:"required,gt=0"`
}

// ToProduct converts a validated request into a Product without an ID.
// Any client-supplied ID is dropped.
func (r ProductRequest) ToProduct() Product {
	p := Product{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	return p
}
