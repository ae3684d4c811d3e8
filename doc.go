// Package performance attributes the change in value of a personal ledger
// over a date range to its causes.
//
// A ledger declares accounts, portfolios and securities, and records dated
// transactions together with market prices and exchange rates. From it, the
// package computes:
//   - Snapshots: the value of every account and position on a given day, in
//     a reporting currency.
//   - Performance: the split of the value change between two snapshots into
//     capital gains, earnings, fees, taxes, currency gains and transfers,
//     which always reconciles with the final value.
//   - Capital gains: the checkpoint walk of every position, from which the
//     gains of the range are derived.
//
// Ledgers are stored as JSONL, one command per line, and decoded with
// DecodeLedger. The AccountingSystem ties a ledger to a reporting currency
// and a logger, and is the entry point of the perf command line.
package performance
