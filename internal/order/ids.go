package order

import "github.com/google/uuid"

func newOrderID() string {
	return uuid.New().String()
}
