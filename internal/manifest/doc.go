// Package manifest parses and validates the two structured files the
// installer ships: the canonical rules.yaml, checked against an embedded JSON
// schema, and the package.json dependency descriptor, which is summarized
// rather than overwritten when a project already has one.
package manifest
