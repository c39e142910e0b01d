package csvload

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

// MalformedRecordError: one record failed basic type coercion. Fatal for
// that record only; the loader skips it, counts it, and keeps going.
type MalformedRecordError struct {
	Relation string
	Line     int
	Field    string
	Cause    error
}

func (self *MalformedRecordError) Error() string {
	return fmt.Sprintf(
		"%s line %d: field %s: %s",
		self.Relation,
		self.Line,
		self.Field,
		self.Cause,
	)
}

// fieldReader wraps one CSV record with header-indexed, type-coercing
// accessors. The first coercion failure sticks; the caller checks err()
// once after reading every field, which keeps the per-relation parse
// functions flat.
type fieldReader struct {
	relation string
	line     int
	idx      map[string]int
	rec      []string
	failed   *MalformedRecordError
}

func (self *fieldReader) err() *MalformedRecordError { return self.failed }

func (self *fieldReader) fail(field string, cause error) {
	if self.failed == nil {
		self.failed = &MalformedRecordError{
			Relation: self.relation,
			Line:     self.line,
			Field:    field,
			Cause:    cause,
		}
	}
}

func (self *fieldReader) raw(field string) string {
	i, ok := self.idx[field]
	if !ok || i >= len(self.rec) {
		return ""
	}
	return strings.TrimSpace(self.rec[i])
}

func (self *fieldReader) str(field string) string {
	v := self.raw(field)
	if v == "" {
		self.fail(field, fmt.Errorf("empty value"))
	}
	return v
}

func (self *fieldReader) optStr(field string) *string {
	v := self.raw(field)
	if v == "" {
		return nil
	}
	return &v
}

func (self *fieldReader) f64(field string) float64 {
	v := self.raw(field)
	out, err := strconv.ParseFloat(v, 64)
	if err != nil {
		self.fail(field, fmt.Errorf("not a number: %q", v))
		return 0
	}
	return out
}

// non-negative decimal, e.g. price/freight/payment value
func (self *fieldReader) money(field string) float64 {
	out := self.f64(field)
	if out < 0 {
		self.fail(field, fmt.Errorf("negative value: %f", out))
		return 0
	}
	return out
}

func (self *fieldReader) optF64(field string) *float64 {
	if self.raw(field) == "" {
		return nil
	}
	out := self.f64(field)
	return &out
}

func (self *fieldReader) int_(field string) int {
	v := self.raw(field)
	out, err := strconv.Atoi(v)
	if err != nil {
		self.fail(field, fmt.Errorf("not an integer: %q", v))
		return 0
	}
	return out
}

func (self *fieldReader) optInt(field string) *int {
	if self.raw(field) == "" {
		return nil
	}
	out := self.int_(field)
	return &out
}

func (self *fieldReader) time_(field string) time.Time {
	v := self.raw(field)
	out, err := time.Parse(timeLayout, v)
	if err != nil {
		self.fail(field, fmt.Errorf("bad timestamp: %q", v))
		return time.Time{}
	}
	return out
}

func (self *fieldReader) optTime(field string) *time.Time {
	if self.raw(field) == "" {
		return nil
	}
	out := self.time_(field)
	if self.failed != nil {
		return nil
	}
	return &out
}
