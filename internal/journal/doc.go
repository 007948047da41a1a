// Package journal keeps an append-only record of finished play sessions in
// SQLite. The catalogue file only holds per-day aggregates; the journal
// preserves the individual sessions behind them for auditing.
package journal
