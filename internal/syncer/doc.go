// Package syncer keeps the local todo collection consistent with the
// remote API.
//
// The protocol is mutate-then-refetch: every successful Create, Update,
// Toggle, Remove or Commit is followed by one full Refresh, and the store is
// rebuilt from that listing alone. The server is the only source of truth;
// nothing is merged locally.
//
// Calls are not serialized. Two operations may be in flight at once and a
// late refresh can overwrite the result of a newer one; whichever listing
// resolves last wins.
//
// Every failure lands in the store's single error slot as user facing text
// (see Message). Validation failures (ErrEmptyTitle, ErrLocked, ...) are
// returned to the caller only.
package syncer
