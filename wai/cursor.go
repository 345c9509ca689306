package wai

import (
	"github.com/singlestore-labs/to-wit/errors"
)

// Cursors are forward-only, restartable-per-call views over a parent's
// children. Each call to a *Cursor constructor yields an independent cursor;
// advancing one never disturbs another. A cursor borrows its parent's
// storage and is valid as long as the parent is.
//
// The three primitive operations are Done (test-exhausted), At
// (read-current) and Next (advance). Reading or advancing an exhausted
// cursor is an invalid_argument error.

// FieldCursor walks a record's fields in declaration order.
type FieldCursor struct {
	fields []Field
	pos    int
}

// FieldCursor returns a fresh cursor over a record's fields.
func (t *TypeDef) FieldCursor() (*FieldCursor, error) {
	fields, err := t.Fields()
	if err != nil {
		return nil, err
	}
	return &FieldCursor{fields: fields}, nil
}

func (c *FieldCursor) Done() bool { return c.pos >= len(c.fields) }

func (c *FieldCursor) At() (Field, error) {
	if c.Done() {
		return Field{}, errors.Exhausted("field")
	}
	return c.fields[c.pos], nil
}

func (c *FieldCursor) Next() error {
	if c.Done() {
		return errors.Exhausted("field")
	}
	c.pos++
	return nil
}

// CaseCursor walks a variant's cases in declaration order.
type CaseCursor struct {
	cases []Case
	pos   int
}

// CaseCursor returns a fresh cursor over a variant's cases.
func (t *TypeDef) CaseCursor() (*CaseCursor, error) {
	cases, err := t.Cases()
	if err != nil {
		return nil, err
	}
	return &CaseCursor{cases: cases}, nil
}

func (c *CaseCursor) Done() bool { return c.pos >= len(c.cases) }

func (c *CaseCursor) At() (Case, error) {
	if c.Done() {
		return Case{}, errors.Exhausted("case")
	}
	return c.cases[c.pos], nil
}

func (c *CaseCursor) Next() error {
	if c.Done() {
		return errors.Exhausted("case")
	}
	c.pos++
	return nil
}

// ParamCursor walks a function's parameters in declaration order.
type ParamCursor struct {
	params []Param
	pos    int
}

// ParamCursor returns a fresh cursor over the function's parameters.
func (f *Function) ParamCursor() *ParamCursor {
	return &ParamCursor{params: f.params}
}

func (c *ParamCursor) Done() bool { return c.pos >= len(c.params) }

func (c *ParamCursor) At() (Param, error) {
	if c.Done() {
		return Param{}, errors.Exhausted("param")
	}
	return c.params[c.pos], nil
}

func (c *ParamCursor) Next() error {
	if c.Done() {
		return errors.Exhausted("param")
	}
	c.pos++
	return nil
}

// ResultCursor walks a function's result types: one element for a function
// with a result, none for a void function.
type ResultCursor struct {
	results []*TypeDef
	pos     int
}

// ResultCursor returns a fresh cursor over the function's results.
func (f *Function) ResultCursor() *ResultCursor {
	var results []*TypeDef
	if f.result != nil {
		results = []*TypeDef{f.result}
	}
	return &ResultCursor{results: results}
}

func (c *ResultCursor) Done() bool { return c.pos >= len(c.results) }

func (c *ResultCursor) At() (*TypeDef, error) {
	if c.Done() {
		return nil, errors.Exhausted("result")
	}
	return c.results[c.pos], nil
}

func (c *ResultCursor) Next() error {
	if c.Done() {
		return errors.Exhausted("result")
	}
	c.pos++
	return nil
}
