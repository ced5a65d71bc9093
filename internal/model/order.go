package model

import "time"

type Order struct {
	ID        string
	Username  string
	Items     []CartLine
	Status    OrderStatus
	CreatedAt time.Time
}

type OrderStatus string

const (
	// OrderStatusReserving marks an order that has been written but whose
	// originating cart lines have not been cleared yet. Checkout either
	// commits it to Ordered or deletes it again.
	OrderStatusReserving OrderStatus = "Reserving"
	OrderStatusOrdered   OrderStatus = "Ordered"
)

// Total sums the line totals of the snapshot.
func (o Order) Total() int {
	total := 0
	for _, item := range o.Items {
		total += item.TotalPrice
	}
	return total
}
