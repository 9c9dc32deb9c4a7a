// Package manifest implements Cargo.toml normalization: collapsing
// nested dependency tables to inline entries, sorting dependency keys,
// ordering [package] keys, and reordering top-level sections into
// canonical order, all while preserving comments and formatting the
// rules do not target.
package manifest
