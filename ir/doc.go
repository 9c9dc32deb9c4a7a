// Package ir defines the in-memory representation of a Cargo.toml
// manifest.  The representation is ordered and round-trip preserving:
// every comment, blank line, and formatting nuance of the source is
// carried on the node it precedes, and a document which is not modified
// re-serializes to exactly its input bytes.
package ir
