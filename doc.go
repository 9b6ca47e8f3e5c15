// Package sweeprun runs parameter-sweep experiments.
//
// An experiment is a tree of Comparison and Optimised nodes (see ComparisonNode and
// OptimisedNode) built by config.Build from a config.RootConfig. The tree enumerates or searches a
// parameter space, materializing Tasks — one-or-more shell commands parameterised
// by the current point — that are handed to a pool of worker processes (package
// exec). Each task's last line of standard output is parsed as a floating-point
// score and routed back into the tree, which advances nested optimisers (package
// optimiser) until every node reports done.
//
// The driver loop lives in Run: pull ready tasks from the root node, submit them
// to the worker pool, and feed completions back until the tree and the pool have
// both drained.
package sweeprun
