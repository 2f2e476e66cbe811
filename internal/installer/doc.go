// Package installer sequences a scaffolding run: validate the target, plan
// and copy the template tree, ensure the fixed scaffold directories, then link
// the assistant aliases. CreateNew scaffolds a fresh directory; AddToExisting
// scaffolds into the working directory without overwriting anything.
package installer
