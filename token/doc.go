// Package token scans Cargo.toml source into line-oriented items:
// blank and comment lines, table headers, and key-value bindings with
// their exact raw text.  The scanner understands just enough TOML to
// find binding boundaries (quoted keys, multi-line strings, multi-line
// arrays, trailing comments); it does not interpret values.
package token
