package schema

import "testing"

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"UserAccount": "user_account",
		"ID":          "i_d",
		"name":        "name",
	}
	for in, want := range cases {
		if got := ToSnakeCase(in); got != want {
			t.Errorf("ToSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToPascalCase(t *testing.T) {
	cases := map[string]string{
		"user_account": "UserAccount",
		"name":         "Name",
	}
	for in, want := range cases {
		if got := ToPascalCase(in); got != want {
			t.Errorf("ToPascalCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPluralToTable(t *testing.T) {
	cases := map[string]string{
		"User":     "users",
		"Category": "categories",
		"Box":      "boxes",
		"Bus":      "buses",
	}
	for in, want := range cases {
		if got := PluralToTable(in); got != want {
			t.Errorf("PluralToTable(%q) = %q, want %q", in, got, want)
		}
	}
}
