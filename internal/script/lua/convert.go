package lua

import (
	"reflect"

	lua "github.com/yuin/gopher-lua"
)

// toLua converts a Go value to a Lua value. Unsupported types surface as
// userdata so scripts can still carry them around opaquely.
func (r *Runtime) toLua(v any) lua.LValue {
	if v == nil {
		return lua.LNil
	}

	switch val := v.(type) {
	case lua.LValue:
		return val
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int32:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case uint32:
		return lua.LNumber(val)
	case uint64:
		return lua.LNumber(val)
	case float32:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []byte:
		return lua.LString(val)
	case []any:
		t := r.L.NewTable()
		for i, item := range val {
			t.RawSetInt(i+1, r.toLua(item))
		}
		return t
	case map[string]any:
		t := r.L.NewTable()
		for k, item := range val {
			t.RawSetString(k, r.toLua(item))
		}
		return t
	default:
		return r.reflectToLua(reflect.ValueOf(v))
	}
}

func (r *Runtime) reflectToLua(rv reflect.Value) lua.LValue {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return lua.LNil
		}
		return r.reflectToLua(rv.Elem())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lua.LNumber(rv.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return lua.LNumber(rv.Uint())

	case reflect.Slice, reflect.Array:
		t := r.L.NewTable()
		for i := 0; i < rv.Len(); i++ {
			t.RawSetInt(i+1, r.toLua(rv.Index(i).Interface()))
		}
		return t

	case reflect.Map:
		t := r.L.NewTable()
		for _, key := range rv.MapKeys() {
			t.RawSet(r.toLua(key.Interface()), r.toLua(rv.MapIndex(key).Interface()))
		}
		return t

	case reflect.Struct:
		t := r.L.NewTable()
		rt := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			field := rt.Field(i)
			if field.PkgPath != "" {
				continue // unexported
			}
			t.RawSetString(field.Name, r.toLua(rv.Field(i).Interface()))
		}
		return t

	default:
		ud := r.L.NewUserData()
		ud.Value = rv.Interface()
		return ud
	}
}

// fromLua converts a Lua value to a Go value for native consumers of
// script-published payloads.
func fromLua(lv lua.LValue) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		m := make(map[string]any)
		v.ForEach(func(k, val lua.LValue) {
			m[k.String()] = fromLua(val)
		})
		return m
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}
