// Package mock provides function-field mock implementations of docrag
// interfaces for testing.
package mock
