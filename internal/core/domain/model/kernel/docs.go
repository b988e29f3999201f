// Package kernel holds value objects shared by the order and transaction
// aggregates. Its only member today is UUID, the identifier type for both.
package kernel
