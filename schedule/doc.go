// Package schedule orders recipe steps by their dependencies and projects
// due times for each step from a start time.
//
// Three stages make up a scheduling call:
//   - ParseDurationToMinutes normalizes a human duration ("14d", "2h",
//     "120m", 90) into minutes. Invalid input degrades to zero.
//   - TopologicalOrder produces a linear extension of the dependency order,
//     preserving input order between unrelated steps, and reports cycles.
//   - A Policy turns the ordered steps into Entries. Linear (the default)
//     models one operator working a sequential checklist; CriticalPath lets
//     independent steps overlap.
//
// Everything in this package is pure and safe for concurrent use.
package schedule
