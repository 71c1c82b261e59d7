package source

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/jsonsql/internal/ir"
)

// DecodeCUE evaluates a CUE file and decodes its records. The file is
// either a top-level list or a struct with a `records` list. Every field
// must be concrete.
func DecodeCUE(filename string, data []byte) ([]ir.Record, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile cue: %w", err)
	}

	list := v
	if v.IncompleteKind() != cue.ListKind {
		list = v.LookupPath(cue.ParsePath("records"))
		if !list.Exists() {
			return nil, fmt.Errorf("cue dataset must be a list or define a records list")
		}
	}

	iter, err := list.List()
	if err != nil {
		return nil, fmt.Errorf("records: %w", err)
	}

	var records []ir.Record
	for i := 0; iter.Next(); i++ {
		rec, err := cueRecord(i, iter.Value())
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func cueRecord(index int, v cue.Value) (ir.Record, error) {
	fields, err := v.Fields()
	if err != nil {
		return ir.Record{}, fmt.Errorf("record %d: expected struct: %w", index, err)
	}

	var rec ir.Record
	for fields.Next() {
		name := fields.Label()
		val, ok, err := cueScalar(fields.Value())
		if err != nil {
			return ir.Record{}, fieldError(index, name, err.Error())
		}
		if ok {
			rec.Set(name, val)
		}
	}
	return rec, nil
}

// cueScalar converts a concrete CUE value, taking the default of a
// disjunction. Null reports ok=false.
func cueScalar(v cue.Value) (ir.Value, bool, error) {
	v, _ = v.Default()
	if !v.IsConcrete() {
		return nil, false, fmt.Errorf("value is not concrete")
	}

	switch v.Kind() {
	case cue.NullKind:
		return nil, false, nil
	case cue.StringKind:
		s, err := v.String()
		return ir.String(s), err == nil, err
	case cue.BoolKind:
		b, err := v.Bool()
		return ir.Bool(b), err == nil, err
	case cue.IntKind:
		if n, err := v.Int64(); err == nil {
			return ir.Int(n), true, nil
		}
		f, err := v.Float64()
		return ir.Float(f), err == nil, err
	case cue.FloatKind:
		f, err := v.Float64()
		return ir.Float(f), err == nil, err
	default:
		return nil, false, fmt.Errorf("nested %s values are not supported", v.Kind())
	}
}
