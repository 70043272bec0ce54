package value

import (
	"strconv"
	"strings"
)

var _ Value = NewTextValue("")

// TextValue is a UTF-8 string.
type TextValue string

func NewTextValue(x string) TextValue {
	return TextValue(x)
}

func (v TextValue) Type() Type {
	return TypeText
}

func (v TextValue) V() any {
	return string(v)
}

func (v TextValue) String() string {
	return strconv.Quote(string(v))
}

var _ Value = NewURIValue("")

// URIValue holds the spelling of a URI. The codec never validates it;
// it is ordered and stored by its raw UTF-8 bytes.
type URIValue string

func NewURIValue(x string) URIValue {
	return URIValue(x)
}

func (v URIValue) Type() Type {
	return TypeURI
}

func (v URIValue) V() any {
	return string(v)
}

func (v URIValue) String() string {
	return "<" + string(v) + ">"
}

var _ Value = NewKeywordValue(":a/b")

// KeywordValue is a namespaced symbol. The value holds the name
// without the leading sigil, e.g. "entity/id" for :entity/id.
type KeywordValue string

// NewKeywordValue strips a leading ':' if present.
func NewKeywordValue(x string) KeywordValue {
	return KeywordValue(strings.TrimPrefix(x, ":"))
}

func (v KeywordValue) Type() Type {
	return TypeKeyword
}

func (v KeywordValue) V() any {
	return string(v)
}

// Name returns the keyword without its sigil.
func (v KeywordValue) Name() string {
	return string(v)
}

func (v KeywordValue) String() string {
	return ":" + string(v)
}
