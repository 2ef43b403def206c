package tile

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Text converts an evaluated marker value to the text spliced into the
// template.
//
//   - nil and nil pointers render as the empty string.
//   - Strings and byte slices render verbatim.
//   - Booleans and numbers use [strconv] formatting; floats use the
//     shortest representation without an exponent.
//   - Errors and [fmt.Stringer] values use their methods.
//   - Slices and arrays render one element per line, so a list of
//     strings becomes a multi-line fragment.
//   - Maps and structs render as a YAML block.
//   - Anything else uses [fmt.Sprint].
func Text(v any) string {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ""
	}

	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	case []string:
		return strings.Join(val, "\n")
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		lines := make([]string, rv.Len())
		for i := range lines {
			lines[i] = Text(rv.Index(i).Interface())
		}

		return strings.Join(lines, "\n")

	case reflect.Map, reflect.Struct:
		return yamlText(v)

	case reflect.Pointer:
		if rv.IsNil() {
			return ""
		}

		return Text(rv.Elem().Interface())

	default:
		return fmt.Sprint(v)
	}
}

// yamlText renders v as a YAML block without the trailing newline.
func yamlText(v any) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}

	return strings.TrimRight(string(b), "\n")
}
