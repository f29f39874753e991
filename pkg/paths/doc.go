// Package paths provides centralized path handling for openwith.
//
// It implements the XDG Base Directory lookups the resolver needs, in
// priority order (highest first):
//
//   - Desktop entry directories: $XDG_DATA_HOME/applications, every
//     $XDG_DATA_DIRS entry's applications dir, then Flatpak and Snap exports.
//   - mimeapps.list chain: $XDG_CONFIG_HOME, $XDG_CONFIG_DIRS, then the
//     legacy data-dir locations. Desktop-specific variants
//     ($desktop-mimeapps.list) precede the plain file in each directory.
//   - Shared MIME database directories: $XDG_DATA_HOME/mime and every
//     $XDG_DATA_DIRS entry's mime dir.
//
// Base directories come from github.com/adrg/xdg, reloaded each time New is
// called so a resolution call always sees the current environment.
// Relative entries are ignored as the XDG specification requires.
package paths
