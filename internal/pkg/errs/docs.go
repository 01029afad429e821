// Package errs holds the typed errors shared by the booking and dispatch code.
//
// Every error type pairs a struct carrying details with a sentinel reachable via
// errors.Is:
//   - ObjectNotFoundError / ErrObjectNotFound
//   - ValueIsInvalidError / ErrValueIsInvalid
//   - ValueIsOutOfRangeError / ErrValueIsOutOfRange
//   - ValueIsRequiredError / ErrValueIsRequired
//   - InvalidTransitionError / ErrInvalidTransition
//   - TransactionFailedError / ErrTransactionFailed
//
// The HTTP adapter maps sentinels to status codes, so handlers and domain code
// only need to return the right type.
package errs
