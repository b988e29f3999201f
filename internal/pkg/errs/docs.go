// Package errs provides standardized error types for the valet application.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works across layers
//
// The order workflow relies on four of them:
//   - ObjectNotFoundError: an order or transaction id does not exist
//   - InvalidStateError: a status value outside the known enumeration
//   - RemoteWriteError: the authoritative order store rejected a write
//   - LocalSyncError: the transaction mirror write failed after the remote write committed
package errs
