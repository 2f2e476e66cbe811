// Package templates holds the template tree stamped into projects and the
// fixed layout facts the installer relies on: the canonical rules file, its
// alias names, and the scaffold subdirectories every project must have.
//
// The default tree is compiled into the binary with //go:embed. A directory on
// disk can stand in for it (see FromDir), which is how teams ship their own
// rules without rebuilding the tool.
package templates
