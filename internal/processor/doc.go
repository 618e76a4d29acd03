// Package processor wires the configuration into the collaborators of a
// study session and implements the non-interactive commands: batch and
// CSV import, CSV export, statistics, model listing and archiving.
package processor
