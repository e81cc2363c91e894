// Package output provides output format types for the cq CLI.
//
// # Format Types
//
// Three output formats are supported:
//
//   - Text (default): Human-readable, colorized summaries
//   - YAML: Self-documenting, same structure as JSON
//   - JSON: Machine-readable, stable field names
//
// YAML and JSON share one encoding path: every command result type carries
// yaml and json struct tags with snake_case keys, and a Formatter encodes
// the value as-is. Text output is rendered per command because each command
// has its own natural summary shape.
//
// # Example Usage
//
// Encoding a command result as YAML:
//
//	formatter, err := output.GetFormatter(output.FormatYAML)
//	if err != nil {
//	    return err
//	}
//	text, err := formatter.Format(result)
//
// Agent-facing surfaces (the MCP server, --for-agents mode) always use JSON
// so downstream tooling can rely on one stable schema.
package output
