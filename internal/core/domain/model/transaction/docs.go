// Package transaction provides the Transaction aggregate, the locally kept
// mirror of an order used for rider history.
//
// A transaction is written once at booking time with denormalized copies of
// the order's descriptive fields. Afterwards only its status changes, always
// by overwrite. The optional OrderID correlates it with the remote order;
// transactions without one never take part in synchronization.
package transaction
