package source

import (
	"fmt"
	"strconv"

	"github.com/valyala/fastjson"

	"github.com/roach88/jsonsql/internal/ir"
)

var jsonParsers fastjson.ParserPool

// DecodeJSON decodes a JSON array of flat objects. Object keys keep their
// document order.
func DecodeJSON(data []byte) ([]ir.Record, error) {
	p := jsonParsers.Get()
	defer jsonParsers.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if v.Type() != fastjson.TypeArray {
		return nil, fmt.Errorf("json dataset must be an array of objects, got %s", v.Type())
	}

	items, _ := v.Array()
	records := make([]ir.Record, 0, len(items))
	for i, item := range items {
		rec, err := jsonRecord(i, item)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func jsonRecord(index int, v *fastjson.Value) (ir.Record, error) {
	obj, err := v.Object()
	if err != nil {
		return ir.Record{}, fmt.Errorf("record %d: expected object, got %s", index, v.Type())
	}

	var (
		rec      ir.Record
		visitErr error
	)
	obj.Visit(func(key []byte, fv *fastjson.Value) {
		if visitErr != nil {
			return
		}
		name := string(key)
		val, ok, err := jsonScalar(fv)
		if err != nil {
			visitErr = fieldError(index, name, err.Error())
			return
		}
		if ok {
			rec.Set(name, val)
		}
	})
	if visitErr != nil {
		return ir.Record{}, visitErr
	}
	return rec, nil
}

// jsonScalar converts a JSON value. Null reports ok=false.
func jsonScalar(v *fastjson.Value) (ir.Value, bool, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return nil, false, nil
	case fastjson.TypeString:
		return ir.String(v.GetStringBytes()), true, nil
	case fastjson.TypeTrue:
		return ir.Bool(true), true, nil
	case fastjson.TypeFalse:
		return ir.Bool(false), true, nil
	case fastjson.TypeNumber:
		return jsonNumber(v)
	default:
		return nil, false, fmt.Errorf("nested %s values are not supported", v.Type())
	}
}

func jsonNumber(v *fastjson.Value) (ir.Value, bool, error) {
	raw := v.String()
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ir.Int(n), true, nil
	}
	f, err := v.Float64()
	if err != nil {
		return nil, false, fmt.Errorf("invalid number %s", raw)
	}
	return ir.Float(f), true, nil
}
