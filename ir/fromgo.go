package ir

import (
	"fmt"
	"reflect"
	"slices"
)

// FromGo converts a host value to a Value.
//
// Strings, signed integers, uint8 through uint32, floats, bools and nil map
// to the scalar kinds.  Slices become sequences, arrays (being fixed size)
// become tuples and maps become mappings ordered by key.  *Value and Value
// are returned as is once Check accepts them.  Everything else, including
// uint and uint64 whose range exceeds int64, fails with ErrUnsupportedType.
func FromGo(v any) (*Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Value:
		if x == nil {
			return Null(), nil
		}
		if err := Check(x); err != nil {
			return nil, err
		}
		return x, nil
	case Value:
		if err := Check(&x); err != nil {
			return nil, err
		}
		return &x, nil
	case string:
		return FromString(x), nil
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	}
	return fromReflect(reflect.ValueOf(v), v)
}

func fromReflect(rv reflect.Value, orig any) (*Value, error) {
	switch rv.Kind() {
	case reflect.String:
		return FromString(rv.String()), nil
	case reflect.Bool:
		return FromBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(rv.Int()), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return FromInt(int64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return FromFloat(rv.Float()), nil
	case reflect.Slice:
		if rv.IsNil() {
			return FromSlice(nil), nil
		}
		vs, err := elems(rv)
		if err != nil {
			return nil, err
		}
		return FromSlice(vs), nil
	case reflect.Array:
		vs, err := elems(rv)
		if err != nil {
			return nil, err
		}
		return FromTuple(vs...), nil
	case reflect.Map:
		kvs := make([]KeyVal, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k, err := FromGo(iter.Key().Interface())
			if err != nil {
				return nil, err
			}
			val, err := FromGo(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, KeyVal{Key: k, Val: val})
		}
		slices.SortFunc(kvs, func(a, b KeyVal) int {
			return Compare(a.Key, b.Key)
		})
		return FromKeyVals(kvs), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromGo(rv.Elem().Interface())
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, orig)
}

func elems(rv reflect.Value) ([]*Value, error) {
	n := rv.Len()
	res := make([]*Value, n)
	for i := range n {
		v, err := FromGo(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}
