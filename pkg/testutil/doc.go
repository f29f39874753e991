// Package testutil provides utilities for testing openwith components.
//
// Key components:
//   - XDGEnv: isolated XDG base-directory tree under t.TempDir() with the
//     matching environment variables set through t.Setenv
//   - DesktopEntry: builder for .desktop file contents
//   - MockRunner: testify mock of toolrun.Runner
//
// Usage guidelines:
//   - Parser unit tests use filesystem.NewMemory() directly
//   - Anything that walks XDG search paths uses XDGEnv
//   - All test data should be defined inline, not in external files
//   - Each test should be completely isolated with no shared state
package testutil
