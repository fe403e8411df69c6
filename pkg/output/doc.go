// Package output renders slinky's results for people and for scripts.
//
// Text and terminal output go through embedded Go templates; a "style"
// template function applies the semantic styles from pkg/ui/styles, and is
// a no-op in text mode. Tabular views (status, findings) are drawn with
// pterm. JSON output encodes stable view structs instead of internal types.
package output
