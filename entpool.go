// Package entpool is an in-process runtime for entity/component storage and
// lifecycle. A Pool owns lightweight entities carrying sparse, integer
// indexed component slots, recycles entity shells and component values
// through object pools to avoid steady-state allocation churn, and keeps
// live, incrementally maintained groups of entities matching a component
// composition predicate so repeated queries never re-scan.
//
// The runtime is single-threaded by design: every mutation synchronously
// notifies all interested groups and lifecycle observers before the call
// returns. A pool adapted to a multithreaded host requires external mutual
// exclusion around all of its methods.
package entpool
