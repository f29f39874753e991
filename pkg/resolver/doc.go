// Package resolver answers "which applications can open these files?" for
// XDG desktops.
//
// A call to GetAppCandidates runs the whole pipeline inside an operation
// context that snapshots the system databases once:
//
//   - detect: raw MIME signals per file
//   - mimetype: the expanded, most-specific-first MIME list
//   - discovery: xdg-mime default, mimeapps.list, then mimeinfo.cache or a
//     full desktop-file scan, each source ranked by specificity
//   - multi-file calls: one discovery per unique profile, intersected
//
// Ranks are (N-i)*100 + source rank for the i-th of N MIME types, so a more
// specific type always wins over a stronger source on a generic type.
package resolver
