// Package filesystem provides filesystem implementations for openwith.
//
// The XDG databases (desktop entries, mimeapps.list chains, mimeinfo.cache
// and the shared MIME database) are read through the FS interface so the
// parsers can be exercised against an in-memory tree.
package filesystem
