// Package color provides terminal color theming for pfm output.
//
// Colors are organized into semantic categories rather than raw
// values, so every command reports success, warnings, errors, and
// highlighted fields the same way:
//   - Success: positive states (created, running, cleaned up)
//   - Warning: caution states (remapped port, stopped forward)
//   - Error: failure states (unresolved delete tokens)
//   - Accent: ids, ports, and field labels
//   - Dim: secondary hints
//
// Capability detection is delegated to lipgloss, which inspects
// COLORTERM, TERM, and NO_COLOR and adapts or disables styling
// accordingly.
package color
