package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Currency is the single currency supported by the marketplace.
// All order totals are denominated in it; there is no conversion.
const Currency = "USD"

// ErrMoneyIsNotConstructed indicates that a Money value was not created via NewMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney")

// Money is a value object representing a positive amount in the marketplace
// currency. It is used for order totals, which are fixed at order creation
// and never change afterwards.
//
// The zero value of Money is invalid; use NewMoney.
//
// Example usage:
//
//	amount, err := kernel.NewMoney(100.00)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(amount.String()) // "$100.00"
type Money struct {
	amount float64

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value. The amount must be strictly positive.
func NewMoney(amount float64) (Money, error) {
	if amount <= 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%.2f is not greater than 0", amount),
		)
	}

	return Money{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Amount returns the numeric amount.
func (m Money) Amount() float64 {
	return m.amount
}

// IsEqual compares two Money values by amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String formats the amount for display, e.g. "$100.00".
// Implements fmt.Stringer.
func (m Money) String() string {
	return fmt.Sprintf("$%.2f", m.amount)
}

// Validate checks that the Money value was created via NewMoney.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
