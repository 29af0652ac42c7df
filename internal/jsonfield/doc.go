// Package jsonfield extracts individual scalar fields from raw JSON payloads.
//
// The extractor walks the token stream of a full JSON parse, so nested keys,
// escaped quotes, and arrays are handled correctly while the observable
// contract stays minimal: the first scalar value carried by a named field,
// rendered as text.
package jsonfield
