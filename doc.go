// Package lrucache implements a fixed-capacity key-value store with a
// least-recently-used eviction policy. It is intended as a building block
// inside larger services: request caches, lookup-result memoization,
// connection reuse tables and the like.
//
// All entry storage lives in a flat arena allocated at construction time.
// Entries are addressed by small integer handles and threaded onto a
// circular recency ring anchored by a sentinel slot, so promoting an entry
// to most recently used and reclaiming the least recently used one are both
// constant-time splice operations with no per-entry heap allocation. Key
// lookup goes through a pluggable KeyIndex backend: a runtime map by
// default, or a B-tree for ordered keys. The backend choice affects only the
// lookup complexity class, never cache behavior.
//
// The cache is deliberately single-threaded. Wrap calls in external locking
// if it must be shared across goroutines.
package lrucache
