// Package kernel contains shared value objects used across the domain model.
// These are the building blocks every aggregate relies on: strongly typed
// identifiers with validation, safe construction, and immutability.
package kernel
