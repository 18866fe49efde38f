// Package store provides AccountDataStore implementations.
//
// FileStore keeps one JSON document per account-data type in a directory,
// written atomically via a temp file and rename. MemStore is a mutex-guarded
// in-memory map, used by tests and by callers that bring their own
// persistence. Both report a missing entry as absent, not as an error.
package store
