package codec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/schemex/schemex/pkg/schema"
)

// defaultHooks is the built-in Parse/Write pair for every schema.Kind,
// tolerant of the handful of representations database/sql and the three
// wired drivers (go-sql-driver/mysql, lib/pq, mattn/go-sqlite3) actually
// hand back for each SQL type: integers arrive as int64, floats as float64
// or sometimes []byte (SQLite's DECIMAL-affinity columns), booleans as bool
// or int64 (SQLite has no native boolean), and text as string or []byte
// depending on driver and column encoding.
var defaultHooks = map[schema.Kind]Hook{
	schema.KindBool: {
		Parse: func(src any) (any, error) {
			switch v := src.(type) {
			case nil:
				return false, nil
			case bool:
				return v, nil
			case int64:
				return v != 0, nil
			case []byte:
				return string(v) != "0" && string(v) != "", nil
			default:
				return nil, fmt.Errorf("%w: cannot parse %T as bool", schema.ErrTypeNotMatch, src)
			}
		},
		Write: func(v any) (any, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: cannot write %T as bool", schema.ErrTypeNotMatch, v)
			}
			return b, nil
		},
	},
	schema.KindInt:    intHook(32),
	schema.KindInt64:  intHook(64),
	schema.KindUint:   uintHook(32),
	schema.KindUint64: uintHook(64),
	schema.KindDouble: {
		Parse: func(src any) (any, error) {
			switch v := src.(type) {
			case nil:
				return 0.0, nil
			case float64:
				return v, nil
			case int64:
				return float64(v), nil
			case []byte:
				f, err := strconv.ParseFloat(string(v), 64)
				if err != nil {
					return nil, fmt.Errorf("codec: parse double: %w", err)
				}
				return f, nil
			default:
				return nil, fmt.Errorf("%w: cannot parse %T as double", schema.ErrTypeNotMatch, src)
			}
		},
		Write: func(v any) (any, error) {
			switch n := v.(type) {
			case float64:
				return n, nil
			case float32:
				return float64(n), nil
			default:
				return nil, fmt.Errorf("%w: cannot write %T as double", schema.ErrTypeNotMatch, v)
			}
		},
	},
	schema.KindTime: {
		Parse: func(src any) (any, error) {
			switch v := src.(type) {
			case nil:
				return time.Time{}, nil
			case time.Time:
				return v, nil
			case []byte:
				return parseTimeLayouts(string(v))
			case string:
				return parseTimeLayouts(v)
			default:
				return nil, fmt.Errorf("%w: cannot parse %T as time", schema.ErrTypeNotMatch, src)
			}
		},
		Write: func(v any) (any, error) {
			t, ok := v.(time.Time)
			if !ok {
				return nil, fmt.Errorf("%w: cannot write %T as time", schema.ErrTypeNotMatch, v)
			}
			return t, nil
		},
	},
	schema.KindString: {
		Parse: func(src any) (any, error) {
			switch v := src.(type) {
			case nil:
				return "", nil
			case string:
				return v, nil
			case []byte:
				return string(v), nil
			default:
				return fmt.Sprintf("%v", v), nil
			}
		},
		Write: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: cannot write %T as string", schema.ErrTypeNotMatch, v)
			}
			return s, nil
		},
	},
	// KindObject and KindArrayPtr hold Go-side pointers with no direct SQL
	// representation (the original system stores these as opaque structured
	// fields a higher layer serializes); the core never asks the codec to
	// round-trip them through a driver, so no default hook is registered —
	// an embedding application supplies its own via Registry.Register.
}

func intHook(bits int) Hook {
	return Hook{
		Parse: func(src any) (any, error) {
			i, err := parseInt64(src)
			if err != nil {
				return nil, err
			}
			if bits == 32 {
				return int(i), nil
			}
			return i, nil
		},
		Write: func(v any) (any, error) {
			switch n := v.(type) {
			case int:
				return int64(n), nil
			case int64:
				return n, nil
			default:
				return nil, fmt.Errorf("%w: cannot write %T as int", schema.ErrTypeNotMatch, v)
			}
		},
	}
}

func uintHook(bits int) Hook {
	return Hook{
		Parse: func(src any) (any, error) {
			i, err := parseInt64(src)
			if err != nil {
				return nil, err
			}
			if bits == 32 {
				return uint(i), nil
			}
			return uint64(i), nil
		},
		Write: func(v any) (any, error) {
			switch n := v.(type) {
			case uint:
				return int64(n), nil
			case uint64:
				return int64(n), nil
			default:
				return nil, fmt.Errorf("%w: cannot write %T as uint", schema.ErrTypeNotMatch, v)
			}
		},
	}
}

func parseInt64(src any) (int64, error) {
	switch v := src.(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case []byte:
		i, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("codec: parse integer: %w", err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: cannot parse %T as integer", schema.ErrTypeNotMatch, src)
	}
}

// layouts mirrors the fixed-format fallback the teacher's scanner.go uses
// for SQLite's text-affinity timestamps, extended with the date-only form
// the Table default CURRENT_TIMESTAMP constant (pkg/sqlplan) can produce on
// engines that store it as DATE rather than DATETIME.
var layouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func parseTimeLayouts(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, fmt.Errorf("codec: parse time %q: %w", s, lastErr)
}
