package codec

import (
	"testing"
	"time"

	"github.com/schemex/schemex/pkg/schema"
)

func TestRegistryParsesDriverScalarsPerKind(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		kind schema.Kind
		src  any
		want any
	}{
		{schema.KindBool, int64(1), true},
		{schema.KindBool, []byte("0"), false},
		{schema.KindInt, int64(42), int(42)},
		{schema.KindInt64, []byte("9001"), int64(9001)},
		{schema.KindUint64, int64(7), uint64(7)},
		{schema.KindDouble, []byte("3.5"), 3.5},
		{schema.KindString, []byte("hello"), "hello"},
		{schema.KindString, nil, ""},
	}

	for _, c := range cases {
		got, err := reg.Parse(c.kind, c.src)
		if err != nil {
			t.Fatalf("Parse(%v, %v): %v", c.kind, c.src, err)
		}
		if got != c.want {
			t.Errorf("Parse(%v, %v) = %v, want %v", c.kind, c.src, got, c.want)
		}
	}
}

func TestRegistryParsesTimeLayouts(t *testing.T) {
	reg := NewRegistry()

	got, err := reg.Parse(schema.KindTime, []byte("2024-03-02 10:00:00"))
	if err != nil {
		t.Fatalf("Parse time: %v", err)
	}
	tm, ok := got.(time.Time)
	if !ok || tm.Year() != 2024 || tm.Month() != time.March || tm.Day() != 2 {
		t.Errorf("unexpected parsed time: %v", got)
	}
}

func TestRegistryWriteRoundTrips(t *testing.T) {
	reg := NewRegistry()

	v, err := reg.Write(schema.KindInt, 7)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if v != int64(7) {
		t.Errorf("Write(int, 7) = %v, want int64(7)", v)
	}

	back, err := reg.Parse(schema.KindInt, v)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if back != int(7) {
		t.Errorf("Parse(int, Write(int, 7)) = %v, want int(7)", back)
	}
}

func TestRegistryUnknownKindErrors(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Parse(schema.KindObject, "x"); err == nil {
		t.Error("expected error parsing KindObject with no registered hook")
	}
}

func TestRegistryOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Register(schema.KindString, Hook{
		Parse: func(src any) (any, error) { return "overridden", nil },
	})
	got, err := reg.Parse(schema.KindString, "anything")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "overridden" {
		t.Errorf("Parse after override = %v, want overridden", got)
	}
}

func TestScannerArgsOrdersByTableColumns(t *testing.T) {
	tbl := schema.NewTable("widgets")
	tbl.AddInt("id").Primary().AutoIncr()
	tbl.AddString("name")

	s := NewScanner(nil)
	names, args, err := s.Args(tbl, map[string]any{"name": "bolt", "id": 3})
	if err != nil {
		t.Fatalf("Args: %v", err)
	}
	if len(names) != 2 || names[0] != "id" || names[1] != "name" {
		t.Fatalf("unexpected column order: %v", names)
	}
	if args[0] != int64(3) || args[1] != "bolt" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestScannerArgsSkipsFieldsNotPresent(t *testing.T) {
	tbl := schema.NewTable("widgets")
	tbl.AddInt("id").Primary()

	s := NewScanner(nil)
	names, args, err := s.Args(tbl, map[string]any{})
	if err != nil {
		t.Fatalf("Args: %v", err)
	}
	if len(names) != 0 || len(args) != 0 {
		t.Errorf("expected no columns bound, got %v %v", names, args)
	}
}
