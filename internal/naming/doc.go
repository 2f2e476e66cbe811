// Package naming validates proposed project directory names before anything
// touches the filesystem. The rules follow portable package-name syntax:
// letters, digits, hyphen, underscore and dot, at most 214 characters, no
// leading dot/hyphen/underscore, and no reserved or device names.
package naming
