package api

import "fmt"

// NotFoundError is returned when an upstream list response is empty but a
// singular result was expected (symbol details, latest price, period stats).
type NotFoundError struct {
	What string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found for %s", e.What, e.Key)
}
