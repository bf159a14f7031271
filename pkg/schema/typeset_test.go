package schema

import "testing"

func TestTypeFindIsCaseInsensitiveByDefault(t *testing.T) {
	typ := NewType[*Column](true)
	typ.Append(NewColumn("Name", KindString))

	if _, idx := typ.Find("name"); idx < 0 {
		t.Error("expected case-insensitive match for 'name'")
	}
	if _, idx := typ.Find("missing"); idx >= 0 {
		t.Error("did not expect a match for 'missing'")
	}
}

func TestTypeStealAndCompactNulls(t *testing.T) {
	typ := NewType[*Column](true)
	a := NewColumn("a", KindInt)
	b := NewColumn("b", KindInt)
	c := NewColumn("c", KindInt)
	typ.Append(a)
	typ.Append(b)
	typ.Append(c)

	typ.Steal(1)
	typ.CompactNulls(0)

	entries := typ.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after compaction, got %d", len(entries))
	}
	if entries[0].Name() != "a" || entries[1].Name() != "c" {
		t.Errorf("expected [a c], got [%s %s]", entries[0].Name(), entries[1].Name())
	}
}

func TestTypeFindByOldName(t *testing.T) {
	typ := NewType[*Column](true)
	renamed := NewColumn("new_name", KindString)
	renamed.SetOldName("old_name")
	typ.Append(renamed)

	found, _ := typ.FindByOldName("old_name")
	if found == nil || found.Name() != "new_name" {
		t.Fatalf("expected FindByOldName to locate the renamed column, got %v", found)
	}
}
