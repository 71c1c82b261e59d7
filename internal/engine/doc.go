// Package engine executes queries against an in-memory dataset.
//
// A query flows through the engine in a fixed order:
//
//  1. querysql.ParseQuery splits SELECT, FROM, WHERE and LIMIT and builds
//     the WHERE expression tree
//  2. The tree is evaluated bottom-up over the full dataset; each leaf is
//     parsed into a condition and matched against every record
//  3. Matches are sorted back into original dataset order
//  4. LIMIT truncates, then SELECT projects
//
// The FROM name is parsed and ignored: an engine always queries the one
// dataset it was built with.
//
// CRITICAL PATTERNS:
//
// Identity by index:
// Records are identified by their position in the dataset, never by value.
// Two identical records are both kept by an OR and both dropped by a
// failing AND, independently of each other.
//
// Strict typing:
// Numeric coercion is applied to the record's field, and only when the
// literal is numeric. Strings, numbers and booleans never compare equal
// across kinds otherwise.
package engine
