package abi

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/singlestore-labs/to-wit/wai"
)

// Direction states which side of the boundary the lowered signature is
// generated for. It only affects how an indirect result is carried: an
// exported function receives a caller-allocated return pointer as a
// trailing parameter, an imported one returns a pointer into its own
// memory.
type Direction int

const (
	Export Direction = iota
	Import
)

func (d Direction) String() string {
	if d == Import {
		return "import"
	}
	return "export"
}

// Signature is the lowered core signature of one function.
//
// Params and Results are what actually crosses the boundary. RetPtr is
// non-empty exactly when the result is indirect: it is the flattening of
// the result type, i.e. the shape of the value behind the return pointer.
type Signature struct {
	Params          []CoreValType
	Results         []CoreValType
	RetPtr          []CoreValType
	IndirectParams  bool
	IndirectResults bool
}

// Signer lowers functions to core signatures for one direction.
type Signer struct {
	dir Direction
}

func NewSigner(dir Direction) *Signer {
	return &Signer{dir: dir}
}

// Signature lowers f. Parameters flatten in declaration order; a parameter
// list over MaxFlatParams collapses to a single i32 pointer to a synthetic
// record of the parameters. A result over MaxFlatResults moves behind a
// return pointer whose placement depends on the direction.
func (s *Signer) Signature(f *wai.Function) (Signature, error) {
	var sig Signature

	for _, p := range f.Params() {
		flat, err := FlattenType(p.Type)
		if err != nil {
			return Signature{}, err
		}
		sig.Params = append(sig.Params, flat...)
	}

	if r := f.Result(); r != nil {
		flat, err := FlattenType(r)
		if err != nil {
			return Signature{}, err
		}
		sig.Results = flat
	}

	if len(sig.Params) > MaxFlatParams {
		sig.Params = []CoreValType{api.ValueTypeI32}
		sig.IndirectParams = true
	}

	if len(sig.Results) > MaxFlatResults {
		sig.RetPtr = sig.Results
		sig.Results = nil
		sig.IndirectResults = true
		if s.dir == Export {
			sig.Params = append(sig.Params, api.ValueTypeI32)
		} else {
			sig.Results = []CoreValType{api.ValueTypeI32}
		}
	}

	return sig, nil
}
