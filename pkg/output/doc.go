// Package output renders openwith results for terminals, pipes and scripts.
//
// Terminal output is styled with lipgloss using the semantic styles in
// embedded/styles.yaml; candidate details go through glamour as a markdown
// table. Plain text is stable for piping and JSON is meant for scripts.
// FormatAuto picks terminal or text from NO_COLOR, isatty and the termenv
// color profile.
package output
