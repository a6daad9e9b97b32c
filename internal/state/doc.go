// Package state holds the local copy of the todo collection.
//
// Store is the only shared mutable resource in the client. Network calls
// complete on their own goroutines, so every method takes the lock; the
// lock is never held across I/O.
//
// Writes follow one rule: items change only through Replace, which swaps the
// whole collection for the latest server listing and clears the error slot.
// Nothing edits a single Todo in place. Concurrent replaces resolve as last
// writer wins.
//
//	store.Replace(items)   // items = server order, Err = ""
//	store.SetLoading(true) // refresh in flight
//	store.SetError(msg)    // overwrite the one error slot
//	snap := store.Snapshot()
//
// Snapshot returns a copy; callers may modify it freely.
package state
