package table

// Kind is the storage type of an output column.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	default:
		return "unknown"
	}
}

// Field describes one output column.
type Field struct {
	Name string
	Kind Kind
}

// Frame is a read-only, row-addressable result table handed to writers.
// Value returns string, int64 or float64 matching the column's Kind.
type Frame interface {
	Schema() []Field
	Len() int
	Value(row, col int) any
}

// Columns returns the column names of f in order.
func Columns(f Frame) []string {
	schema := f.Schema()
	names := make([]string, len(schema))
	for i, field := range schema {
		names[i] = field.Name
	}
	return names
}
