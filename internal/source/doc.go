// Package source loads datasets from files.
//
// Supported formats, chosen by extension or Options.Format:
//
//	.json                  top-level array of objects (fastjson)
//	.yaml, .yml            top-level sequence of mappings (yaml.v3)
//	.cue                   top-level list, or a list in a `records` field (CUE)
//	.db, .sqlite, .sqlite3 one table, read-only (go-sqlite3)
//
// JSON, YAML and CUE files may be compressed; a trailing .gz or .zst is
// decompressed before the format is detected.
//
// Records are flat. Null values mean the field is absent; nested arrays and
// objects are rejected with an error naming the record and field.
package source
