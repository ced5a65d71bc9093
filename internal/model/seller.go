package model

// Seller is an administrative record only; it has no tie-in with auth.
type Seller struct {
	ID      string
	Name    string
	Phone   string
	Email   string
	Address string
}
