package cart

import (
	"github.com/shopspring/decimal"

	"github.com/Demmynile/hanniefoods/pkg/models"
)

// Item is one cart line: a frozen product snapshot plus a quantity.
// A stored item always has quantity >= 1.
type Item struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// State is the full cart, ordered by insertion and unique by product id.
// Mutations are pure functions over State so storage side effects stay
// outside the reducer.
type State struct {
	Items []Item `json:"items"`
}

func (s State) clone() State {
	if len(s.Items) == 0 {
		return State{}
	}
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	return State{Items: items}
}

func (s State) indexOf(productID string) int {
	for i, item := range s.Items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddItem merges a product into the cart, clamping the resulting quantity
// to the product's current stock. An out-of-stock product leaves the cart
// unchanged. The second return reports whether requested units were
// dropped by the clamp, so callers can surface a notice.
func AddItem(state State, product models.Product, quantity int) (State, bool) {
	if quantity < 1 {
		quantity = 1
	}
	if !product.Available() {
		return state, false
	}

	next := state.clone()
	if i := next.indexOf(product.ID); i >= 0 {
		desired := next.Items[i].Quantity + quantity
		clamped := minInt(desired, product.Stock)
		next.Items[i].Product = product
		next.Items[i].Quantity = clamped
		return next, clamped < desired
	}

	clamped := minInt(quantity, product.Stock)
	next.Items = append(next.Items, Item{Product: product, Quantity: clamped})
	return next, clamped < quantity
}

// RemoveItem drops the line for the product id. Removing an absent id is
// a no-op.
func RemoveItem(state State, productID string) State {
	i := state.indexOf(productID)
	if i < 0 {
		return state
	}
	next := state.clone()
	next.Items = append(next.Items[:i], next.Items[i+1:]...)
	return next
}

// UpdateQuantity sets the line quantity for the product id, clamped to the
// snapshot's stock. A quantity <= 0 removes the line, same as RemoveItem.
// Updating an absent id is a no-op.
func UpdateQuantity(state State, productID string, quantity int) (State, bool) {
	if quantity <= 0 {
		return RemoveItem(state, productID), false
	}
	i := state.indexOf(productID)
	if i < 0 {
		return state, false
	}
	next := state.clone()
	clamped := minInt(quantity, next.Items[i].Product.Stock)
	next.Items[i].Quantity = clamped
	return next, clamped < quantity
}

// Clear empties the cart unconditionally.
func Clear(State) State {
	return State{}
}

// Total sums price*quantity across all lines in major currency units.
func Total(state State) decimal.Decimal {
	total := decimal.Zero
	for _, item := range state.Items {
		line := decimal.NewFromInt(int64(item.Product.Price)).
			Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total
}

// Count sums the quantities across all lines.
func Count(state State) int {
	count := 0
	for _, item := range state.Items {
		count += item.Quantity
	}
	return count
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
