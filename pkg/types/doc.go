// Package types defines the core types shared by slinky's linking engine:
// packages, the file entries found by walking them, the filesystem
// abstraction every component goes through, and the RunContext value that
// replaces process-wide configuration in resolver, planner and executor calls.
package types
