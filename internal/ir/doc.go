// Package ir defines the in-memory data model the query engine operates on.
//
// A Dataset is an ordered sequence of Records loaded once and never mutated.
// Each Record maps field names to scalar Values, and fields are not required
// to be uniform across records: the same field name may hold a String in one
// record and an Int in the next, or be missing entirely.
//
// VALUES:
//
// Value is a sealed interface with exactly four variants:
//
//	String  Int  Float  Bool
//
// There is no null. Loaders treat a null source value as an absent field, and
// absence is reported by Record.Get returning false.
//
// IDENTITY:
//
// Every record in a Dataset carries its original 0-based position (Row.Index).
// The engine uses this index, never structural equality, for set membership
// and for restoring original order.
//
// NUMERIC TEXT:
//
// The numeric literal shape is -?digits or -?digits.digits. IsNumericText,
// ParseNumber and CoerceNumeric implement that shape in one place so the
// parser and the matcher cannot disagree about it.
package ir
