package domain

// Product is a catalog item. UnidadBase is the default purchase unit label
// shown next to the product name when capturing an order.
type Product struct {
	ID         int64  `json:"id"`
	Nombre     string `json:"nombre"`
	UnidadBase string `json:"unidadBase"`
}
