// internal/models/catalog.go
package models

// Tree is the full nested catalog: categories containing businesses
// containing products and services. Sequence order is display order and
// is preserved across sync.
type Tree []Category

type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Icon        string     `json:"icon"`
	Color       string     `json:"color,omitempty"`
	Businesses  []Business `json:"businesses"`
}

type Business struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"categoryId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Hours       string    `json:"hours,omitempty"`
	WhatsApp    string    `json:"whatsapp,omitempty"`
	Rating      float64   `json:"rating"`
	Visits      int       `json:"visits"`
	Products    []Product `json:"products"`
	Services    []Service `json:"services"`
}

// Product price is in minor currency units (CLP has no minor unit, so the
// stored value is the full peso amount).
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Available   bool   `json:"available"`
}

type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceFrom   int64  `json:"priceFrom"`
	Image       string `json:"image"`
}

// Clone returns a deep copy of the tree. Mutations are copy-on-write, so
// every hand-out across a store boundary must be detached from the
// canonical slice.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for i, c := range t {
		out[i] = c.Clone()
	}
	return out
}

func (c Category) Clone() Category {
	out := c
	if c.Businesses != nil {
		out.Businesses = make([]Business, len(c.Businesses))
		for i, b := range c.Businesses {
			out.Businesses[i] = b.Clone()
		}
	}
	return out
}

func (b Business) Clone() Business {
	out := b
	if b.Products != nil {
		out.Products = append([]Product(nil), b.Products...)
	}
	if b.Services != nil {
		out.Services = append([]Service(nil), b.Services...)
	}
	return out
}
