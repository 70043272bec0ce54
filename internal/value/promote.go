package value

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/golang-module/carbon/v2"
)

// Datatype URIs that Promote knows how to parse into native values.
const (
	XSDDate     = "http://www.w3.org/2001/XMLSchema#date"
	XSDDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"
	XSDLong     = "http://www.w3.org/2001/XMLSchema#long"
)

// Promote parses a typed literal with a known XSD datatype into the
// matching native value. Unknown datatypes pass through unchanged.
func Promote(tv TypedValue) (Value, error) {
	switch tv.Datatype {
	case XSDDate:
		c := carbon.Parse(tv.Lexical, carbon.UTC)
		if c.Error != nil {
			return nil, errors.Wrapf(c.Error, "invalid date literal %q", tv.Lexical)
		}
		return NewDateValue(c.TimestampMilli()), nil
	case XSDDateTime:
		c := carbon.Parse(tv.Lexical, carbon.UTC)
		if c.Error != nil {
			return nil, errors.Wrapf(c.Error, "invalid dateTime literal %q", tv.Lexical)
		}
		return NewInstantValue(c.ToStdTime()), nil
	case XSDLong:
		x, err := strconv.ParseInt(tv.Lexical, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid long literal %q", tv.Lexical)
		}
		return NewLongValue(x), nil
	}

	return tv, nil
}
