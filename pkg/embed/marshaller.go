package tigersem

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/tigersem/internal/symbols"
	"github.com/funvibe/tigersem/internal/typesystem"
)

// Marshaller maps Go types onto the language's types. Structs must be bound
// by name before they can appear in a signature. Every Go slice or array
// whose elements convert to the same type maps to one shared array type, so
// []int and [5]int64 are interchangeable.
type Marshaller struct {
	records map[reflect.Type]*typesystem.TName
	arrays  map[typesystem.Type]*typesystem.TArray
}

func NewMarshaller() *Marshaller {
	return &Marshaller{
		records: make(map[reflect.Type]*typesystem.TName),
		arrays:  make(map[typesystem.Type]*typesystem.TArray),
	}
}

// TypeOf converts a Go type. Integers and booleans become int, strings become
// string, slices and arrays become arrays, and bound structs (or pointers to
// them) become their record type.
func (m *Marshaller) TypeOf(t reflect.Type) (typesystem.Type, error) {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Bool:
		return typesystem.Int, nil
	case reflect.String:
		return typesystem.String, nil
	case reflect.Slice, reflect.Array:
		elem, err := m.TypeOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return m.arrayOf(elem), nil
	case reflect.Ptr:
		if t.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("unsupported pointer type %s", t)
		}
		return m.TypeOf(t.Elem())
	case reflect.Struct:
		if name, ok := m.records[t]; ok {
			return name, nil
		}
		return nil, fmt.Errorf("struct type %s is not bound; call BindType first", t)
	}
	return nil, fmt.Errorf("unsupported Go type %s", t)
}

func (m *Marshaller) arrayOf(elem typesystem.Type) *typesystem.TArray {
	if a, ok := m.arrays[elem]; ok {
		return a
	}
	a := typesystem.NewArray(elem)
	m.arrays[elem] = a
	return a
}

// record declares t under name and converts its exported fields. The name is
// registered before the fields so that self-referencing structs resolve.
func (m *Marshaller) record(name string, t reflect.Type) (*typesystem.TName, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s: expected a struct or slice, got %s", name, t)
	}
	if _, ok := m.records[t]; ok {
		return nil, fmt.Errorf("%s: struct %s is already bound", name, t)
	}

	tn := typesystem.NewName(symbols.Intern(name))
	m.records[t] = tn

	var fields []typesystem.Field
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fieldName := f.Tag.Get("tiger")
		if fieldName == "-" {
			continue
		}
		if fieldName == "" {
			fieldName = lowerFirst(f.Name)
		}
		ft, err := m.TypeOf(f.Type)
		if err != nil {
			delete(m.records, t)
			return nil, fmt.Errorf("%s: field %s: %w", name, f.Name, err)
		}
		fields = append(fields, typesystem.Field{Name: symbols.Intern(fieldName), Type: ft})
	}
	if err := tn.Bind(typesystem.NewRecord(fields)); err != nil {
		delete(m.records, t)
		return nil, err
	}
	return tn, nil
}

// signature converts a Go function type. A trailing error result is ignored;
// no result means the function is a procedure.
func (m *Marshaller) signature(t reflect.Type) ([]typesystem.Field, typesystem.Type, error) {
	if t.Kind() != reflect.Func {
		return nil, nil, fmt.Errorf("expected a function, got %s", t)
	}
	if t.IsVariadic() {
		return nil, nil, fmt.Errorf("variadic functions are not supported")
	}

	formals := make([]typesystem.Field, t.NumIn())
	for i := range formals {
		pt, err := m.TypeOf(t.In(i))
		if err != nil {
			return nil, nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		formals[i] = typesystem.Field{Name: symbols.Intern(fmt.Sprintf("a%d", i+1)), Type: pt}
	}

	errorType := reflect.TypeOf((*error)(nil)).Elem()
	numOut := t.NumOut()
	if numOut > 0 && t.Out(numOut-1) == errorType {
		numOut--
	}
	switch numOut {
	case 0:
		return formals, typesystem.Void, nil
	case 1:
		rt, err := m.TypeOf(t.Out(0))
		if err != nil {
			return nil, nil, fmt.Errorf("result: %w", err)
		}
		return formals, rt, nil
	}
	return nil, nil, fmt.Errorf("functions may return at most one value besides an error, got %d", numOut)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if !(r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))) {
			return false
		}
	}
	return s != ""
}
