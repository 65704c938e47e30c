// Package health reports process liveness for external monitoring.
//
// An Indicator produces a Health value: a status of UP or DOWN plus
// diagnostic details. MemoryIndicator compares a free-memory reading
// against a fixed threshold, and Handler serves any Indicator as JSON.
package health
