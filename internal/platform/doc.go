// Package platform provides the filesystem surface the installer writes
// through, and the cross-platform pieces around symbolic links: a capability
// probe and the byte-copy used when links cannot be created (Windows without
// developer mode, FAT and some network mounts).
package platform
