// Package kv defines the synchronous key-value persistence port the
// ledger writes through, scoped per device profile.
package kv

// Store is the outbound persistence contract. Get returns ok=false for
// a missing key; implementations never interpret the stored value.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}
