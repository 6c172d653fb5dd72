package dialect

import (
	"strings"

	"github.com/hlop3z/tabula/internal/schema"
)

// TypeMapper provides the SQL type of each recognized column type.
type TypeMapper interface {
	TextType() string
	IntegerType() string
	BooleanType() string
	DateType() string
	TimestampType() string
	UUIDType() string
	JSONType() string
}

// ColumnType returns the SQL type for a non-enum column type. Enum columns
// are typed by name and unknown types fall back to text.
func ColumnType(typ schema.ColumnType, mapper TypeMapper) string {
	switch typ {
	case schema.TypeInteger:
		return mapper.IntegerType()
	case schema.TypeUUID:
		return mapper.UUIDType()
	case schema.TypeDate:
		return mapper.DateType()
	case schema.TypeTimestamp:
		return mapper.TimestampType()
	case schema.TypeBoolean:
		return mapper.BooleanType()
	case schema.TypeJSON:
		return mapper.JSONType()
	default:
		return mapper.TextType()
	}
}

// QuoteList returns comma-separated quoted identifiers.
// Example: QuoteList(d, "a", "b") -> `"a", "b"`
func QuoteList(d Dialect, items ...string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.QuoteIdent(item))
	}
	return b.String()
}

// LiteralList returns comma-separated quoted string literals:
//
//	LiteralList(d, "a", "it's") // 'a', 'it''s'
func LiteralList(d Dialect, values ...string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = d.QuoteLiteral(v)
	}
	return strings.Join(quoted, ", ")
}
