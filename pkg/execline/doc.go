// Package execline compiles the Exec key of a desktop entry into command lines.
//
// Compilation happens in two stages. Analyze runs once per entry: it resolves
// key-file escapes, tokenizes the result with the Desktop Entry double-quote
// rules and derives the execution model from the unquoted field codes.
// Assemble then expands the argument templates against concrete files and
// produces a shell-escaped command line.
//
// Execution models:
//
//   - FileList: %F or %U present, all files go to one invocation.
//   - PerFile: %f or %u present, one invocation per file.
//   - LegacyImplicit: no file field codes, files are appended after the
//     expanded arguments.
//
// Field codes inside quoted arguments are not expanded. %i drops its whole
// argument (icons are not supported), the deprecated %d %D %n %N %v %m codes
// expand to nothing, and unknown codes are kept literally.
package execline
