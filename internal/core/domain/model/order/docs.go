// Package order contains the order aggregate and its lifecycle primitives:
// the Status value object, the Action value object describing the operations
// customers can request, and the event emitted when an action transitions an
// order.
//
// Orders are created by an out-of-scope ingestion process and mutated
// exclusively through the action orchestrator's conditional status
// transitions. The aggregate enforces identity immutability and the invariant
// that a delivery date exists only for delivered orders.
package order
