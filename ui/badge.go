// Package ui holds the storefront widget logic as pure state transitions.
// Each reducer takes the current state and an intent and returns the next
// state; rendering is left to the caller.
package ui

import (
	"strconv"

	"golden-elegance/models"
)

// BadgeFor returns the cart badge for a total item quantity. The badge is
// hidden when the cart is empty.
func BadgeFor(count int) models.Badge {
	if count <= 0 {
		return models.Badge{Text: "0", Visible: false}
	}
	return models.Badge{Text: strconv.Itoa(count), Visible: true}
}
