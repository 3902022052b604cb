// Package queue defines message payloads exchanged over the message
// broker, the publisher for ticket sales and the background consumer.
package queue

// TicketSoldEvent is published when a ticket is successfully created.
// It carries enough information for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type TicketSoldEvent struct {
	TicketID     uint64 `json:"ticket_id"`
	MovieID      uint64 `json:"movie_id"`
	MovieTitle   string `json:"movie_title"`
	Count        int    `json:"count"`
	CustomerName string `json:"customer_name"`
	TotalPrice   int    `json:"total_price"`
	SoldAt       string `json:"sold_at"`
}
