// Package wai models a parsed interface description: the type graph, the
// function table, and read-only cursors over both.
//
// Parse turns source text into an Interface. The graph is append-only during
// parsing and immutable afterwards; every accessor is a pure query. Named
// types may reference each other freely (forward references included), but a
// type may not contain itself by value: containment cycles through record
// fields, variant payloads, or alias targets are rejected at construction.
// A list introduces indirection and is therefore allowed to close a loop.
//
// The type model follows the witx2-era text format:
//
//   - string is an anonymous list<char>
//   - bool, enum, option and expected are variants with a shape tag
//   - tuple and flags are records with a shape tag
//
// Kind-specific accessors (Fields, Cases, Elem, Target) return an
// invalid_argument error when called on a type of the wrong kind.
package wai
