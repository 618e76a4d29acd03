// Package store keeps vocabulary on disk in a SQLite database. A Store is
// both a local vocabulary source, used when no proxy is configured, and
// the durable word cache the session starts from while the proxy wakes up.
package store
