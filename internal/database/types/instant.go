package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/bytedance/sonic"
)

// ErrInvalidInstant indicates a timestamp value whose representation could
// not be recognized.
var ErrInvalidInstant = errors.New("unrecognized timestamp representation")

// Instant is a canonical UTC instant that tolerates every timestamp shape
// found in legacy document-store exports: native timestamps, RFC3339 or
// otherwise parseable strings, epoch seconds or milliseconds as numbers,
// and {seconds[, nanoseconds]} objects. It is the single conversion point
// for sanction timestamps; nothing downstream branches on representation.
type Instant struct {
	time.Time
}

// NewInstant wraps a native timestamp as a canonical Instant.
func NewInstant(t time.Time) Instant {
	return Instant{Time: t.UTC()}
}

// ParseInstant normalizes any supported timestamp representation into a
// UTC time.
func ParseInstant(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v.UTC(), nil
	case *time.Time:
		if v == nil {
			return time.Time{}, ErrInvalidInstant
		}
		return v.UTC(), nil
	case Instant:
		return v.Time.UTC(), nil
	case *Instant:
		if v == nil {
			return time.Time{}, ErrInvalidInstant
		}
		return v.Time.UTC(), nil
	case int:
		return fromEpoch(int64(v)), nil
	case int64:
		return fromEpoch(v), nil
	case float64:
		return fromEpoch(int64(v)), nil
	case string:
		return parseInstantString(v)
	case []byte:
		return parseInstantString(string(v))
	case map[string]any:
		return fromSecondsObject(v)
	}

	return time.Time{}, fmt.Errorf("%w: %T", ErrInvalidInstant, value)
}

// fromEpoch interprets a raw number as epoch seconds, or epoch
// milliseconds when the magnitude rules out a plausible seconds value.
func fromEpoch(n int64) time.Time {
	if n > 1e12 || n < -1e12 {
		return time.UnixMilli(n).UTC()
	}

	return time.Unix(n, 0).UTC()
}

// fromSecondsObject handles the {seconds, nanoseconds} object shape the
// old document store's timestamp type serialized to.
func fromSecondsObject(obj map[string]any) (time.Time, error) {
	sec, ok := numberField(obj, "seconds", "_seconds")
	if !ok {
		return time.Time{}, fmt.Errorf("%w: object without seconds field", ErrInvalidInstant)
	}

	nanos, _ := numberField(obj, "nanoseconds", "_nanoseconds")

	return time.Unix(sec, nanos).UTC(), nil
}

func numberField(obj map[string]any, keys ...string) (int64, bool) {
	for _, key := range keys {
		switch n := obj[key].(type) {
		case float64:
			return int64(n), true
		case int64:
			return n, true
		case int:
			return int64(n), true
		}
	}

	return 0, false
}

func parseInstantString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return time.Time{}, ErrInvalidInstant
	}

	// JSON object shape, e.g. {"seconds": 1700000000}
	if strings.HasPrefix(s, "{") {
		var obj map[string]any
		if err := sonic.UnmarshalString(s, &obj); err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInstant, s)
		}

		return fromSecondsObject(obj)
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fromEpoch(n), nil
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInstant, s)
	}

	return t.UTC(), nil
}

// UnmarshalJSON accepts any of the supported representations.
func (i *Instant) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidInstant, s)
		}

		t, err := parseInstantString(unquoted)
		if err != nil {
			return err
		}

		i.Time = t

		return nil
	}

	t, err := parseInstantString(s)
	if err != nil {
		return err
	}

	i.Time = t

	return nil
}

// MarshalJSON always writes the canonical RFC3339 form.
func (i Instant) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(i.Time.UTC().Format(time.RFC3339Nano))), nil
}

// Scan implements sql.Scanner so legacy jsonb and text columns decode
// through the same normalization path.
func (i *Instant) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*i = Instant{}
		return nil
	case time.Time:
		i.Time = v.UTC()
		return nil
	case []byte:
		return i.UnmarshalJSON(v)
	case string:
		return i.UnmarshalJSON([]byte(v))
	}

	t, err := ParseInstant(src)
	if err != nil {
		return err
	}

	i.Time = t

	return nil
}
