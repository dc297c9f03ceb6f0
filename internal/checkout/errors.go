package checkout

import "errors"

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to checkout")
	ErrIllegalTransition = errors.New("illegal transition of checkout status")
)
