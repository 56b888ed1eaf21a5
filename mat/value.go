package mat

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Value is a MATLAB array that can be stored as a variable or struct field.
type Value interface {
	encode(e *encoder, name string) error
}

// Single is a numeric array of class single. Data is column-major.
type Single struct {
	Dims []int
	Data []float32
}

// Double is a numeric array of class double. Data is column-major.
type Double struct {
	Dims []int
	Data []float64
}

// Scalar returns a 1x1 double.
func Scalar(v float64) Double {
	return Double{Dims: []int{1, 1}, Data: []float64{v}}
}

// Char is a character row vector.
type Char string

// Field is a named struct member.
type Field struct {
	Name  string
	Value Value
}

// Struct is a 1x1 struct.
type Struct struct {
	Fields []Field
}

func (s Single) encode(e *encoder, name string) error {
	if err := checkDims(s.Dims, len(s.Data)); err != nil {
		return err
	}

	return e.matrix(mxSINGLE, s.Dims, name, func() error {
		e.single(s.Data)
		return nil
	})
}

func (d Double) encode(e *encoder, name string) error {
	if err := checkDims(d.Dims, len(d.Data)); err != nil {
		return err
	}

	return e.matrix(mxDOUBLE, d.Dims, name, func() error {
		e.double(d.Data)
		return nil
	})
}

func (c Char) encode(e *encoder, name string) error {
	units := utf16.Encode([]rune(string(c)))
	dims := []int{1, len(units)}
	if len(units) == 0 {
		dims = []int{0, 0}
	}

	return e.matrix(mxCHAR, dims, name, func() error {
		e.uint16s(units)
		return nil
	})
}

func (s Struct) encode(e *encoder, name string) error {
	nameLen := minFieldNameLength
	for _, f := range s.Fields {
		if !ValidName(f.Name) {
			return fmt.Errorf("invalid struct field name %q", f.Name)
		}
		nameLen = max(nameLen, len(f.Name)+1)
	}

	return e.matrix(mxSTRUCT, []int{1, 1}, name, func() error {
		e.int32Element(int32(nameLen))

		names := make([]byte, nameLen*len(s.Fields))
		for i, f := range s.Fields {
			copy(names[i*nameLen:], f.Name)
		}
		e.element(miINT8, names)

		for _, f := range s.Fields {
			if err := f.Value.encode(e, ""); err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
		}

		return nil
	})
}

func checkDims(dims []int, n int) error {
	if len(dims) < 2 {
		return fmt.Errorf("array needs at least 2 dimensions, got %d", len(dims))
	}

	total := 1
	for _, d := range dims {
		if d < 0 || d > math.MaxInt32 {
			return fmt.Errorf("invalid dimension %d", d)
		}
		total *= d
	}
	if total != n {
		return fmt.Errorf("dimensions %v hold %d elements, data has %d", dims, total, n)
	}

	return nil
}

// ValidName reports whether s is a legal MATLAB variable or field name.
func ValidName(s string) bool {
	if s == "" || len(s) > MaxNameLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '_'):
		default:
			return false
		}
	}

	return true
}

// FieldName maps an arbitrary column title to a legal MATLAB field name.
//
// Characters outside [A-Za-z0-9_] become '_', runs of '_' collapse, names not starting with a
// letter get an "f_" prefix, and the result is cut to MaxNameLength. An empty title maps to "f".
func FieldName(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		ok := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
		if !ok {
			if lastUnderscore || b.Len() == 0 {
				continue
			}
			b.WriteByte('_')
			lastUnderscore = true

			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	name := strings.TrimRight(b.String(), "_")
	if name == "" {
		return "f"
	}
	if c := name[0]; !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
		name = "f_" + name
	}
	if len(name) > MaxNameLength {
		name = strings.TrimRight(name[:MaxNameLength], "_")
	}

	return name
}

// NewStruct builds a struct from parallel keys and values, renaming keys with FieldName and
// suffixing duplicates with _2, _3 and so on.
//
// float64 values become 1x1 doubles, strings become char arrays and other values are stored
// as their fmt representation.
func NewStruct(keys []string, values []any) Struct {
	s := Struct{Fields: make([]Field, 0, len(keys))}
	used := make(map[string]struct{}, len(keys))

	for i, key := range keys {
		name := FieldName(key)
		if _, dup := used[name]; dup {
			for n := 2; ; n++ {
				cand := withSuffix(name, n)
				if _, dup := used[cand]; !dup {
					name = cand
					break
				}
			}
		}
		used[name] = struct{}{}

		var v any
		if i < len(values) {
			v = values[i]
		}
		s.Fields = append(s.Fields, Field{Name: name, Value: toValue(v)})
	}

	return s
}

func withSuffix(name string, n int) string {
	suffix := "_" + strconv.Itoa(n)
	if len(name)+len(suffix) > MaxNameLength {
		name = name[:MaxNameLength-len(suffix)]
	}

	return name + suffix
}

func toValue(v any) Value {
	switch x := v.(type) {
	case float64:
		return Scalar(x)
	case float32:
		return Scalar(float64(x))
	case int:
		return Scalar(float64(x))
	case int64:
		return Scalar(float64(x))
	case string:
		return Char(x)
	case nil:
		return Double{Dims: []int{0, 0}}
	default:
		return Char(fmt.Sprint(x))
	}
}
