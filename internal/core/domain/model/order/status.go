package order

import (
	"fmt"

	"roadside/internal/pkg/errs"
)

// Status is the position of an order in its lifecycle.
//
//	(new, cash)   -> Confirmed
//	(new, online) -> Pending
//	Pending   --confirm payment--> Confirmed
//	Confirmed --assign (cash)----> Assigned
//	Confirmed|Assigned --complete--> Completed
//	any non-terminal   --cancel----> Cancelled
//
// Completed and Cancelled are terminal.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota

	// Pending orders wait for an online payment confirmation.
	Pending

	// Confirmed orders are paid for (or cash on service) and may be dispatched.
	Confirmed

	// Assigned cash orders have an agent on the way.
	Assigned

	// Completed orders have been serviced.
	Completed

	// Cancelled orders were withdrawn before completion.
	Cancelled
)

const (
	eventConfirmPayment = "confirm_payment"
	eventAssign         = "assign"
	eventComplete       = "complete"
	eventCancel         = "cancel"
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		Assigned:  "assigned",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// ParseStatus is the inverse of Status.String for valid statuses.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ConfirmPayment applies a payment confirmation. Confirming an already
// confirmed order returns Confirmed unchanged so duplicate webhook deliveries
// are harmless.
func (s Status) ConfirmPayment() (Status, error) {
	switch s { //nolint:exhaustive // every other status rejects the event
	case Pending, Confirmed:
		return Confirmed, nil
	default:
		return s, s.invalid(eventConfirmPayment)
	}
}

// Assign moves a confirmed order to Assigned.
func (s Status) Assign() (Status, error) {
	if s != Confirmed {
		return s, s.invalid(eventAssign)
	}
	return Assigned, nil
}

// Complete marks a confirmed or assigned order as serviced.
func (s Status) Complete() (Status, error) {
	if s != Confirmed && s != Assigned {
		return s, s.invalid(eventComplete)
	}
	return Completed, nil
}

// Cancel withdraws any non-terminal order.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return s, err
	}
	if s.IsTerminal() {
		return s, s.invalid(eventCancel)
	}
	return Cancelled, nil
}

func (s Status) invalid(event string) error {
	return errs.NewInvalidTransitionError("order", s.String(), event)
}
