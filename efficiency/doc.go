// Package efficiency computes year-over-year fossil-fuel efficiency change per
// U.S. state from two annual power-plant datasets.
//
// # Reading Guide
//
//   - stats.go: per-state fuel and generation totals (StateStats, StateMap)
//   - compare.go: the inner join of two years' totals into StateEfficiency rows
//   - rank.go: ordering by magnitude of change and top-N selection
//   - summary.go: aggregate counts over a comparison
//
// # Architecture
//
// The efficiency package holds pure data types and arithmetic; I/O lives in
// sub-packages:
//   - efficiency/ingest/: preamble skipping, header matching, tolerant row parsing (CSV, XLSX)
//   - efficiency/report/: console table and CSV/XLSX result files
//   - efficiency/metrics/: Prometheus counters for accepted and rejected rows
//
// Efficiency is fuel consumed per unit of net generation (MMBtu per MWh for
// EIA-923 data), so a negative Delta means the state burned less fuel per
// megawatthour in the second year.
package efficiency
