package model

type LineStatus string

const (
	LineStatusPending LineStatus = "Pending"
	LineStatusOrdered LineStatus = "Ordered"
)

// CartLine is one product entry in a user's cart, keyed by (Username, ProductID).
// TotalPrice is derived (Price * Qty) and stamped when the cart is viewed or
// snapshotted into an order.
type CartLine struct {
	Username   string
	ProductID  string
	Name       string
	Price      int
	Qty        int
	Status     LineStatus
	TotalPrice int
}
