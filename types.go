package faroeste

import "fmt"

// Type is either a PrimitiveType or a ListType. Both are comparable values,
// so two types are equal exactly when == holds.
type Type interface {
	String() string
	typeNode()
}

// PrimitiveType is one of the built-in scalar types.
type PrimitiveType int

const (
	TypeInt PrimitiveType = iota + 1
	TypeFloat
	TypeString
	TypeBool

	// TypeNull is the absent-value marker. It is the type of `deserto`, the
	// return type of value-less functions and the element type of `[]`.
	// It cannot be written in a variable declaration.
	TypeNull
)

func (PrimitiveType) typeNode() {}

func (t PrimitiveType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeFloat:
		return "FLOAT"
	case TypeString:
		return "STRING"
	case TypeBool:
		return "BOOL"
	case TypeNull:
		return "NULL"
	default:
		return fmt.Sprintf("PrimitiveType(%d)", int(t))
	}
}

// ListType is a homogeneous list. The element is always primitive, so lists
// cannot nest.
type ListType struct {
	Elem PrimitiveType
}

func (ListType) typeNode() {}

func (t ListType) String() string {
	return "LIST[" + t.Elem.String() + "]"
}

// TypesEqual reports structural equality. nil equals only nil.
func TypesEqual(a, b Type) bool {
	return a == b
}

// isNumeric reports whether t is INT or FLOAT.
func isNumeric(t Type) bool {
	return t == TypeInt || t == TypeFloat
}

// typeKeywords maps the primitive type keywords to their types.
var typeKeywords = map[TokenType]PrimitiveType{
	TYPE_INT:    TypeInt,
	TYPE_FLOAT:  TypeFloat,
	TYPE_STRING: TypeString,
	TYPE_BOOL:   TypeBool,
}

// typeSpelling renders a type the way it is written in source.
func typeSpelling(t Type) string {
	switch t := t.(type) {
	case PrimitiveType:
		switch t {
		case TypeInt:
			return "int"
		case TypeFloat:
			return "float"
		case TypeString:
			return "string"
		case TypeBool:
			return "bool"
		case TypeNull:
			return "deserto"
		}
	case ListType:
		return "lista[" + typeSpelling(t.Elem) + "]"
	}
	return "?"
}
