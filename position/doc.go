// Package position is the calculation engine behind tradebrain.
//
// A Book tracks the executions taken against a single instrument, sizes new
// entries and exits from a per-trade risk budget, and reports the average
// entry price, realized and unrealized profit, the break-even adjusted price
// (BERT) and how much of the open position is covered by resting stop and
// target orders.
//
// Every query recomputes from the trade ledger. The ledger is replaced as a
// whole on each command and is cleared when its net share count returns to
// zero, so each round trip starts from an empty book.
//
// A Book is not safe for concurrent use; see the session package for a
// guarded wrapper.
package position
