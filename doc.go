// Package capgains computes capital gains from brokerage transactions.
//
// Transactions are read into a [Ledger], from a tax center CSV export or a JSONL
// ledger, and split into one [Book] per symbol. Each book matches its sales
// against its open lots, first in first out, splitting lots and sales as needed.
// A lot closed at a loss is checked for wash sales: the loss is deferred into the
// cost basis of replacement lots bought within the wash sale window.
//
// All amounts are exact decimals. Rounding only happens when a [Report] is
// rendered, see package renderer.
//
// Books are independent, [Process] matches them concurrently.
package capgains
