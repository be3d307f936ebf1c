// Package files provides file management over the application's
// managed directories: storing uploads, listing exported snapshots,
// and resolving snapshot names to safe on-disk paths for download.
package files
