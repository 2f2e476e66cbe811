// Package linker creates the alias dotfiles that downstream assistants read,
// each resolving to the project's canonical rules file. Aliases are symlinks
// where the filesystem allows them and byte copies where it does not. It also
// inspects existing aliases for the doctor command.
package linker
