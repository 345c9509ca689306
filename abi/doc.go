// Package abi computes the canonical lowering of interface types onto the
// core wasm machine: byte layouts (size, alignment, field offsets) for
// values stored in linear memory, and flat core value-type sequences for
// values passed through function signatures.
//
// The two views are independent: Calculator answers "how does this type sit
// in memory", Signer answers "how does this function cross the boundary".
// Both treat aliases as transparent and both assume the graph has already
// been validated, so plain recursion is safe.
package abi
