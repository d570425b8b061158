package models

// Product represents a single catalog entry. Products are generated
// in-process and never persisted; price and stock are snapshots.
type Product struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Discount    int     `json:"discount" validate:"gte=0,lte=100"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	IsNew       bool    `json:"is_new"`
}

// EffectivePrice is the base price reduced by the discount percentage.
// Always recomputed, never stored.
func (p Product) EffectivePrice() float64 {
	return p.Price * (1 - float64(p.Discount)/100)
}
