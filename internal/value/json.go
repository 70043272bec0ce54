package value

import (
	"math/big"

	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
)

// FromJSON converts a JSON document into a value: objects become maps,
// arrays become sequences, numbers become longs, big integers or
// doubles depending on what fits. JSON null is rejected, the graph
// layer has no null value.
func FromJSON(data []byte) (Value, error) {
	v, dt, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, err
	}

	return fromJSON(dt, v)
}

func fromJSON(dataType jsonparser.ValueType, data []byte) (Value, error) {
	switch dataType {
	case jsonparser.Object:
		var pairs []Pair
		err := jsonparser.ObjectEach(data, func(key, v []byte, vt jsonparser.ValueType, _ int) error {
			k, err := jsonparser.ParseString(key)
			if err != nil {
				return err
			}

			pv, err := fromJSON(vt, v)
			if err != nil {
				return err
			}

			pairs = append(pairs, Pair{Key: NewTextValue(k), Value: pv})
			return nil
		})
		if err != nil {
			return nil, err
		}
		return NewMapValue(pairs), nil
	case jsonparser.Array:
		var elems []Value
		var elemErr error
		_, err := jsonparser.ArrayEach(data, func(v []byte, vt jsonparser.ValueType, _ int, _ error) {
			if elemErr != nil {
				return
			}

			ev, err := fromJSON(vt, v)
			if err != nil {
				elemErr = err
				return
			}
			elems = append(elems, ev)
		})
		if err != nil {
			return nil, err
		}
		if elemErr != nil {
			return nil, elemErr
		}
		return NewSequenceValue(elems), nil
	case jsonparser.Number:
		i, err := jsonparser.ParseInt(data)
		if err == nil {
			return NewLongValue(i), nil
		}

		// an integer too wide for int64, or a floating point number
		if x, ok := new(big.Int).SetString(string(data), 10); ok {
			return NewBigintValue(x), nil
		}

		f, err := jsonparser.ParseFloat(data)
		if err != nil {
			return nil, err
		}
		return NewDoubleValue(f), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, err
		}
		return NewTextValue(s), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return nil, err
		}
		return NewBoolValue(b), nil
	default:
		return nil, errors.Errorf("unsupported JSON type: %v", dataType)
	}
}
