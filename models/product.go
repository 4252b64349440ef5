package models

// ProductPrice is the price of the first variant as reported by the catalog.
type ProductPrice struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

// Product is a catalog entity owned by the commerce platform. It is never
// persisted locally; raffles reference it by its platform GID.
type Product struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Handle   string        `json:"handle"`
	Status   string        `json:"status"`
	ImageURL string        `json:"image_url,omitempty"`
	Price    *ProductPrice `json:"price,omitempty"`
}
