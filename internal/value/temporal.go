package value

import (
	"strconv"
	"time"
)

var _ Value = NewDateValue(0)

// DateValue is a date, held as milliseconds since the Unix epoch.
type DateValue int64

func NewDateValue(ms int64) DateValue {
	return DateValue(ms)
}

func NewDateFromTime(t time.Time) DateValue {
	return DateValue(t.UnixMilli())
}

func (v DateValue) Type() Type {
	return TypeDate
}

func (v DateValue) V() any {
	return int64(v)
}

func (v DateValue) Time() time.Time {
	return time.UnixMilli(int64(v)).UTC()
}

func (v DateValue) String() string {
	return strconv.Quote(v.Time().Format("2006-01-02"))
}

var _ Value = NewInstantValue(time.Time{})

// InstantValue is a point in time with nanosecond precision, held as
// an (epoch seconds, nanoseconds) pair.
type InstantValue struct {
	Seconds int64
	Nanos   int32
}

func NewInstantValue(t time.Time) InstantValue {
	return InstantValue{
		Seconds: t.Unix(),
		Nanos:   int32(t.Nanosecond()),
	}
}

func NewInstantFromUnix(secs int64, nanos int32) InstantValue {
	return InstantValue{Seconds: secs, Nanos: nanos}
}

func (v InstantValue) Type() Type {
	return TypeInstant
}

func (v InstantValue) V() any {
	return v.Time()
}

func (v InstantValue) Time() time.Time {
	return time.Unix(v.Seconds, int64(v.Nanos)).UTC()
}

// Millis returns the instant truncated to milliseconds since the
// epoch. Instants whose nanoseconds are not millisecond-aligned lose
// precision; WholeMillis reports whether the conversion is exact.
func (v InstantValue) Millis() int64 {
	return v.Seconds*1000 + int64(v.Nanos)/1_000_000
}

func (v InstantValue) WholeMillis() bool {
	return v.Nanos%1_000_000 == 0
}

func (v InstantValue) String() string {
	return strconv.Quote(v.Time().Format(time.RFC3339Nano))
}
