package order

import (
	"fmt"
	"strings"

	"roadside/internal/pkg/errs"
)

// PaymentMethod decides the initial status of an order and whether dispatch
// advances it.
type PaymentMethod string

const (
	// Cash is paid to the agent on site. Cash orders start Confirmed.
	Cash PaymentMethod = "cash"
	// Online is paid through the payment gateway. Online orders start Pending.
	Online PaymentMethod = "online"
)

// ParsePaymentMethod accepts "cash" or "online" in any case. An empty value
// means cash.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return Cash, nil
	}
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m PaymentMethod) Validate() error {
	if m != Cash && m != Online {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not supported", string(m)))
	}
	return nil
}

func (m PaymentMethod) String() string {
	return string(m)
}

// InitialStatus is the status an order is created in.
func (m PaymentMethod) InitialStatus() Status {
	if m == Online {
		return Pending
	}
	return Confirmed
}
