// Package history persists probe outcomes to SQLite for later inspection.
//
// Recording is best-effort: the store satisfies the gateway's Recorder
// interface and swallows write failures after logging them, so a broken
// database never degrades health checking. A Pruner deletes rows older
// than the configured retention window, either on demand or on a cron
// schedule.
package history
