// Package executor applies or simulates a link plan.
//
// Dry-run derives its log from the plan alone. Apply walks the same
// operations in the same order; every operation succeeds or fails on its
// own, so one permission error does not stop the rest of the plan. The one
// exception is a folded directory link that could not be removed: operations
// below it fail rather than write through the link.
//
// AlreadyLinked and Conflict operations are logged as Skipped in both modes,
// so a dry-run log and an apply log of the same plan differ only in the
// outcome of Create and Remove operations.
package executor
