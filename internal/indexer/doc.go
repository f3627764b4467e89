// Package indexer scans a project directory to detect the languages,
// frameworks and layout that shape generated instructions.
//
// A scan is a bounded-depth walk that counts files by extension, plus
// substring checks against root-level manifests (Cargo.toml, go.mod,
// package.json, program.json and the Python manifests).
package indexer
