package http

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
)

// EncodeForm renders payload the way PHP's http_build_query does: nested
// maps become key[sub]=v, slices become key[0]=v, booleans become 1 or 0,
// and nil values and empty containers are left out.
func EncodeForm(payload map[string]interface{}) string {
	return FormValues(payload).Encode()
}

// FormValues flattens payload into url.Values using bracketed keys.
func FormValues(payload map[string]interface{}) url.Values {
	values := url.Values{}

	for _, key := range sortedKeys(payload) {
		appendValue(values, key, payload[key])
	}

	return values
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func appendValue(values url.Values, key string, value interface{}) {
	switch typed := value.(type) {
	case nil:
		return
	case string:
		values.Add(key, typed)

		return
	case json.Number:
		values.Add(key, typed.String())

		return
	case bool:
		values.Add(key, formatBool(typed))

		return
	case fmt.Stringer:
		values.Add(key, typed.String())

		return
	}

	appendReflected(values, key, reflect.ValueOf(value))
}

func appendReflected(values url.Values, key string, rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Invalid:
		return
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return
		}

		appendValue(values, key, rv.Elem().Interface())
	case reflect.Map:
		entries := make(map[string]reflect.Value, rv.Len())
		names := make([]string, 0, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			name := fmt.Sprint(iter.Key().Interface())
			entries[name] = iter.Value()
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			appendValue(values, key+"["+name+"]", entries[name].Interface())
		}
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			appendValue(values, key+"["+strconv.Itoa(i)+"]", rv.Index(i).Interface())
		}
	case reflect.Bool:
		values.Add(key, formatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		values.Add(key, strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		values.Add(key, strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32:
		values.Add(key, strconv.FormatFloat(rv.Float(), 'f', -1, 32))
	case reflect.Float64:
		values.Add(key, strconv.FormatFloat(rv.Float(), 'f', -1, 64))
	case reflect.String:
		values.Add(key, rv.String())
	default:
		values.Add(key, fmt.Sprint(rv.Interface()))
	}
}

func formatBool(b bool) string {
	if b {
		return "1"
	}

	return "0"
}
