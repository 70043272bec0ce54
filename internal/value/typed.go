package value

import (
	"sync"

	"github.com/cockroachdb/errors"
)

var _ Value = NewTypedValue("", "")

// TypedValue is a literal tagged with a datatype URI. On the wire the
// two parts are space-separated, split on the first space.
type TypedValue struct {
	Datatype string
	Lexical  string
}

func NewTypedValue(datatype, lexical string) TypedValue {
	return TypedValue{Datatype: datatype, Lexical: lexical}
}

func (v TypedValue) Type() Type {
	return TypeTyped
}

func (v TypedValue) V() any {
	return v.Lexical
}

func (v TypedValue) String() string {
	return "\"" + v.Lexical + "\"^^<" + v.Datatype + ">"
}

// Foreign is implemented by values outside the builtin type system.
// They are stored under a registered type name with a lexical form the
// registered constructor can rebuild the value from.
type Foreign interface {
	Value
	ForeignType() string
	Lexical() string
}

// ErrForeignType is returned when a stored type name has no registered
// constructor, or the constructor rejects the lexical form.
var ErrForeignType = errors.New("unknown foreign type")

var foreignRegistry = struct {
	sync.RWMutex
	ctors map[string]func(string) (Value, error)
}{ctors: make(map[string]func(string) (Value, error))}

// RegisterForeign installs a constructor for a foreign type name.
// Registration is expected at program start; later registrations for
// the same name replace the previous one.
func RegisterForeign(name string, ctor func(string) (Value, error)) {
	foreignRegistry.Lock()
	defer foreignRegistry.Unlock()
	foreignRegistry.ctors[name] = ctor
}

// NewForeign rebuilds a foreign value from its stored name and lexical
// form. Unregistered names fail with ErrForeignType.
func NewForeign(name, lexical string) (Value, error) {
	foreignRegistry.RLock()
	ctor, ok := foreignRegistry.ctors[name]
	foreignRegistry.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrForeignType, "%q", name)
	}

	v, err := ctor(lexical)
	if err != nil {
		return nil, errors.Wrapf(ErrForeignType, "%q: %s", name, err)
	}

	return v, nil
}
