package ecnf

import (
	"encoding"
	"log/slog"
	"reflect"
	"strings"
	"unicode"
)

// Unmarshal stores the entries of m in the struct pointed to by v.
//
// Each exported field is matched to a key named by its `ecnf` tag, or by the
// field name converted to upper snake case (LogFile becomes LOG_FILE). A tag
// of "-" skips the field. Nested structs decode the section of the same name.
//
// Supported field types are string, *string, [Value], nested structs, and
// any type whose pointer implements [encoding.TextUnmarshaler]. An absent
// value sets a string to "" and a *string to nil; a TextUnmarshaler is only
// called for values that are set. Fields whose key is missing from m are
// left unchanged, and entries of m without a matching field are ignored.
func Unmarshal(m Map, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() ||
		rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget.With(slog.String("type", typeName(v)))
	}

	return decodeStruct(m, "", rv.Elem())
}

var (
	valueType           = reflect.TypeFor[Value]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

func decodeStruct(m Map, prefix string, rv reflect.Value) error {
	rt := rv.Type()

	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		name, ok := fieldKey(field)
		if !ok {
			continue
		}

		key := name
		if prefix != "" {
			key = prefix + PathSeparator + name
		}

		err := decodeField(m, key, rv.Field(i))
		if err != nil {
			return err
		}
	}

	return nil
}

func decodeField(m Map, key string, fv reflect.Value) error {
	ft := fv.Type()

	if ft == valueType {
		if val, ok := m[key]; ok {
			fv.Set(reflect.ValueOf(val))
		}

		return nil
	}

	if reflect.PointerTo(ft).Implements(textUnmarshalerType) {
		s, ok := m.Get(key)
		if !ok {
			return nil
		}

		tu, _ := fv.Addr().Interface().(encoding.TextUnmarshaler)

		err := tu.UnmarshalText([]byte(s))
		if err != nil {
			return WrapError(err).With(
				slog.String("key", key),
				slog.String("type", ft.String()),
			)
		}

		return nil
	}

	switch ft.Kind() {
	case reflect.String:
		if val, ok := m[key]; ok {
			fv.SetString(val.String())
		}

		return nil

	case reflect.Pointer:
		if ft.Elem().Kind() != reflect.String {
			break
		}

		val, ok := m[key]
		if !ok {
			return nil
		}

		if !val.Valid() {
			fv.SetZero()

			return nil
		}

		ptr := reflect.New(ft.Elem())
		ptr.Elem().SetString(val.String())
		fv.Set(ptr)

		return nil

	case reflect.Struct:
		return decodeStruct(m, key, fv)
	}

	return ErrUnsupportedType.With(
		slog.String("key", key),
		slog.String("type", ft.String()),
	)
}

// fieldKey returns the key segment for field, or false if it is skipped.
func fieldKey(field reflect.StructField) (string, bool) {
	tag, ok := field.Tag.Lookup("ecnf")
	if ok {
		name, _, _ := strings.Cut(tag, ",")

		switch name {
		case "-":
			return "", false
		case "":
		default:
			return name, true
		}
	}

	return upperSnake(field.Name), true
}

// upperSnake converts a Go identifier to an ECNF key: AccountName becomes
// ACCOUNT_NAME and DBPath becomes DB_PATH.
func upperSnake(name string) string {
	runes := []rune(name)

	var sb strings.Builder

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
				sb.WriteByte('_')
			}
		}

		sb.WriteRune(unicode.ToUpper(r))
	}

	return sb.String()
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}

	return reflect.TypeOf(v).String()
}
