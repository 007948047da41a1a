// Package notifications delivers user-facing push notifications through
// ntfy. Failures are transient reports; nothing here blocks or rolls back
// catalogue state.
package notifications
