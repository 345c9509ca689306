package abi

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/singlestore-labs/to-wit/errors"
	"github.com/singlestore-labs/to-wit/wai"
)

// CoreValType is a core wasm value type.
type CoreValType = api.ValueType

// Canonical ABI flattening limits. A parameter list that flattens to more
// than MaxFlatParams slots is passed through memory instead; likewise for a
// result beyond MaxFlatResults. Return registers are scarcer than argument
// registers, so the result limit is the smaller of the two.
const (
	MaxFlatParams  = 16
	MaxFlatResults = 8
)

// FlattenType flattens a type to its core value-type sequence.
func FlattenType(t *wai.TypeDef) ([]CoreValType, error) {
	if t == nil {
		return nil, errors.InvalidArgument(errors.PhaseLower, "cannot flatten nil type")
	}

	switch t.Kind() {
	case wai.KindU8, wai.KindU16, wai.KindU32,
		wai.KindS8, wai.KindS16, wai.KindS32,
		wai.KindChar, wai.KindCChar, wai.KindUsize:
		return []CoreValType{api.ValueTypeI32}, nil
	case wai.KindU64, wai.KindS64:
		return []CoreValType{api.ValueTypeI64}, nil
	case wai.KindF32:
		return []CoreValType{api.ValueTypeF32}, nil
	case wai.KindF64:
		return []CoreValType{api.ValueTypeF64}, nil

	case wai.KindRecord:
		return flattenRecord(t)

	case wai.KindVariant:
		return flattenVariant(t)

	case wai.KindList:
		return []CoreValType{api.ValueTypeI32, api.ValueTypeI32}, nil // ptr, len

	case wai.KindAlias:
		target, err := t.Target()
		if err != nil {
			return nil, err
		}
		return FlattenType(target)
	}
	return nil, errors.InvalidArgument(errors.PhaseLower, "cannot flatten kind %s", t.Kind())
}

// flattenRecord concatenates the field flattenings in declaration order.
func flattenRecord(t *wai.TypeDef) ([]CoreValType, error) {
	fields, err := t.Fields()
	if err != nil {
		return nil, err
	}
	var flat []CoreValType
	for _, field := range fields {
		f, err := FlattenType(field.Type)
		if err != nil {
			return nil, err
		}
		flat = append(flat, f...)
	}
	return flat, nil
}

// flattenVariant yields an i32 discriminant followed by the per-position
// join of the case payload flattenings.
func flattenVariant(t *wai.TypeDef) ([]CoreValType, error) {
	cases, err := t.Cases()
	if err != nil {
		return nil, err
	}

	var payload []CoreValType
	for _, cs := range cases {
		if cs.Type == nil {
			continue
		}
		caseFlat, err := FlattenType(cs.Type)
		if err != nil {
			return nil, err
		}
		for i, ft := range caseFlat {
			if i < len(payload) {
				payload[i] = joinTypes(payload[i], ft)
			} else {
				payload = append(payload, ft)
			}
		}
	}

	return append([]CoreValType{api.ValueTypeI32}, payload...), nil
}

// joinTypes unions two core types sharing one payload slot.
func joinTypes(a, b CoreValType) CoreValType {
	if a == b {
		return a
	}
	// 32-bit types can share storage
	if (a == api.ValueTypeI32 && b == api.ValueTypeF32) ||
		(a == api.ValueTypeF32 && b == api.ValueTypeI32) {
		return api.ValueTypeI32
	}
	// Different sizes require i64
	return api.ValueTypeI64
}
