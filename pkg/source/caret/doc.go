// Package caret reads CARET architecture exports.
//
// A CARET architecture YAML lists nodes with the topics they publish and
// subscribe, their callback groups and callbacks, the executors driving those
// groups, and user-declared named paths. This package turns it into:
//
//   - the canonical graph, either for the whole system ([AllGraph]) or for one
//     named path ([BuildGraph])
//   - callback group details attached to each node ([ExtendCallbackGroups])
//   - the named path dictionary ([ExtractPaths])
//
// Typical use:
//
//	arch, err := caret.LoadFile("architecture.yaml")
//	g, err := caret.BuildGraph(arch, caret.AllGraph, true)
//	err = caret.ExtendCallbackGroups(arch, g, caret.ExtendOptions{})
//	paths := caret.ExtractPaths(arch)
package caret
