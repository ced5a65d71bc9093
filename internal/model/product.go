package model

type Product struct {
	ID          string
	Name        string
	Weight      string
	Rate        int
	Description string
	Image       string
	Category    string
}
