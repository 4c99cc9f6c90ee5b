// Package session provides server-side session state keyed by an opaque ID.
//
// A Session is a snapshot loaded per request. Writes go straight to the Store
// one key at a time, and Store.Take reads and deletes a value atomically so
// that single-use values, such as an OAuth state token, can be consumed at
// most once even under concurrent requests.
//
// Two stores are provided: MemoryStore for single-process deployments and
// tests, and RedisStore, which keeps each session in a Redis hash expiring
// with the session.
package session
