package dto

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/task-manager/internal/model"
)

// Timestamp normalizes a timestamp for serialization. It accepts the
// native time types as well as text already produced by a driver, and
// always returns the canonical RFC 3339 UTC form. Absent values (nil,
// a nil pointer, an invalid sql.NullTime, the zero time or empty text)
// yield nil so they serialize as JSON null. Text that cannot be parsed
// is passed through unchanged.
func Timestamp(v any) *string {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		if x.IsZero() {
			return nil
		}
		s := model.FormatTimestamp(x)
		return &s
	case *time.Time:
		if x == nil {
			return nil
		}
		return Timestamp(*x)
	case sql.NullTime:
		if !x.Valid {
			return nil
		}
		return Timestamp(x.Time)
	case string:
		if strings.TrimSpace(x) == "" {
			return nil
		}
		t, err := model.ParseTimestamp(x)
		if err != nil {
			return &x
		}
		return Timestamp(t)
	case *string:
		if x == nil {
			return nil
		}
		return Timestamp(*x)
	case []byte:
		if x == nil {
			return nil
		}
		return Timestamp(string(x))
	}
	s := fmt.Sprint(v)
	return &s
}

// timestampText is Timestamp for required columns; absent becomes "".
func timestampText(v any) string {
	if s := Timestamp(v); s != nil {
		return *s
	}
	return ""
}
