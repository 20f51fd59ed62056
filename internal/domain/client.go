package domain

// Client is a catalog customer. Alias is the short name printed on tickets.
type Client struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Alias  string `json:"alias"`
}
