// Package towit parses WIT-style interface definitions and computes their
// canonical ABI lowering onto core wasm value types.
//
// # Architecture Overview
//
// The library is organized into a few packages with distinct
// responsibilities:
//
//	towit/          Root package with the Session API
//	├── wai/        Interface model: type graph, function table, cursors
//	├── abi/        Layout and flattening: sizes, alignments, signatures
//	├── errors/     Structured error types for debugging
//	└── cmd/wai/    Command-line inspector
//
// # Quick Start
//
// Parse a definition and inspect a lowered signature:
//
//	s := towit.New(towit.WithDirection(abi.Export))
//	defer s.Close()
//
//	if err := s.Parse(src); err != nil {
//	    log.Fatal(err)
//	}
//
//	f, err := s.FuncByName("greet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sig, err := s.Signature(f)
//	fmt.Println(sig.Params, sig.Results)
//
// # Type System Support
//
// The parser accepts the witx2-era text format:
//
//   - Primitives: bool, u8-u64, s8-s64, f32, f64, char, string
//   - Compound: list<T>, option<T>, expected<T, E>, tuple<...>
//   - Named: record, variant, enum, flags, type aliases
//
// # Thread Safety
//
// A Session is NOT safe for concurrent use; wrap it in your own
// synchronization or use one Session per goroutine. Parsed wai.Interface
// values are immutable and may be shared freely.
package towit
