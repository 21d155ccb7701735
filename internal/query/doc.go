// Package query provides a process-wide keyed cache of fetches with
// per-key request deduplication.
//
// # Overview
//
// A Cache maps a Key (a kind plus one parameter) to an entry holding a
// Status, the fetched value and the fetch error. The first Query for a key
// creates a pending entry and starts its fetch; any later interest in the
// same key, concurrent or not, observes that entry instead of issuing
// another request. Entries move from pending to success or error exactly
// once.
//
// Keys with different parameters are different entries. Changing a search
// term therefore creates a new entry and leaves the old one untouched.
//
// # Observing completion
//
// Query never blocks. Consumers that need to know when an entry settles
// wait on Done(key), which is closed on settlement and may be shared by
// any number of observers. Await is the blocking form used outside the
// TUI.
//
// # Lifetime
//
// New takes the context fetches run under. Close cancels it; entries
// already present remain readable but no new fetch is started.
package query
