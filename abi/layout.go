package abi

import (
	"github.com/singlestore-labs/to-wit/errors"
	"github.com/singlestore-labs/to-wit/wai"
)

// Info describes the linear-memory layout of one type.
type Info struct {
	FieldOffs map[string]uint32 // records only; byte offset per field name
	Size      uint32
	Align     uint32
}

// Calculator computes and memoizes type layouts. Results are cached per
// TypeDef identity, so sharing a Calculator across queries amortizes the
// cost for large graphs. A Calculator is not safe for concurrent use.
type Calculator struct {
	cache map[*wai.TypeDef]Info
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*wai.TypeDef]Info),
	}
}

// Calculate returns the layout of t. A nil or dangling node is a layout
// error, never a defaulted answer.
func (c *Calculator) Calculate(t *wai.TypeDef) (Info, error) {
	if t == nil {
		return Info{}, errors.LayoutFailed("", "nil type")
	}
	if cached, ok := c.cache[t]; ok {
		return cached, nil
	}

	info, err := c.calculate(t)
	if err != nil {
		return Info{}, err
	}
	c.cache[t] = info
	return info, nil
}

func (c *Calculator) calculate(t *wai.TypeDef) (Info, error) {
	switch t.Kind() {
	case wai.KindU8, wai.KindS8, wai.KindCChar:
		return Info{Size: 1, Align: 1}, nil
	case wai.KindU16, wai.KindS16:
		return Info{Size: 2, Align: 2}, nil
	case wai.KindU32, wai.KindS32, wai.KindF32, wai.KindChar, wai.KindUsize:
		return Info{Size: 4, Align: 4}, nil
	case wai.KindU64, wai.KindS64, wai.KindF64:
		return Info{Size: 8, Align: 8}, nil

	case wai.KindRecord:
		return c.calculateRecord(t)

	case wai.KindVariant:
		return c.calculateVariant(t)

	case wai.KindList:
		// [ptr: u32, len: u32] regardless of element
		return Info{Size: 8, Align: 4}, nil

	case wai.KindAlias:
		target, err := t.Target()
		if err != nil {
			return Info{}, err
		}
		if target == nil {
			return Info{}, errors.LayoutFailed(t.Name(), "alias has no target")
		}
		return c.Calculate(target)
	}
	return Info{}, errors.LayoutFailed(t.Name(), "unknown kind "+t.Kind().String())
}

func (c *Calculator) calculateRecord(t *wai.TypeDef) (Info, error) {
	fields, err := t.Fields()
	if err != nil {
		return Info{}, err
	}
	if len(fields) == 0 {
		return Info{Size: 0, Align: 1}, nil
	}

	fieldOffs := make(map[string]uint32, len(fields))
	maxAlign := uint32(1)
	offset := uint32(0)

	for _, field := range fields {
		fl, err := c.Calculate(field.Type)
		if err != nil {
			return Info{}, err
		}

		offset = AlignTo(offset, fl.Align)
		fieldOffs[field.Name] = offset

		if fl.Align > maxAlign {
			maxAlign = fl.Align
		}
		offset += fl.Size
	}

	return Info{
		Size:      AlignTo(offset, maxAlign),
		Align:     maxAlign,
		FieldOffs: fieldOffs,
	}, nil
}

func (c *Calculator) calculateVariant(t *wai.TypeDef) (Info, error) {
	cases, err := t.Cases()
	if err != nil {
		return Info{}, err
	}

	discSize := DiscriminantSize(len(cases))
	maxAlign := discSize
	maxSize := uint32(0)

	for _, cs := range cases {
		if cs.Type == nil {
			continue
		}
		cl, err := c.Calculate(cs.Type)
		if err != nil {
			return Info{}, err
		}
		if cl.Align > maxAlign {
			maxAlign = cl.Align
		}
		if cl.Size > maxSize {
			maxSize = cl.Size
		}
	}

	payloadOffset := AlignTo(discSize, maxAlign)
	return Info{
		Size:  AlignTo(payloadOffset+maxSize, maxAlign),
		Align: maxAlign,
	}, nil
}
