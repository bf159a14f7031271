package schema

import "testing"

func TestNewSchemaAssignsIncreasingVersions(t *testing.T) {
	a := NewSchema("app")
	b := NewSchema("app")
	if b.Version <= a.Version {
		t.Errorf("expected increasing versions, got %d then %d", a.Version, b.Version)
	}
}

func TestTableAddColumnsAndGetPrimary(t *testing.T) {
	users := NewTable("users")
	users.AddInt("id").Primary().AutoIncr()
	users.AddString("name").WithSize(191)

	primary := users.GetPrimary()
	if primary == nil || primary.Name() != "id" {
		t.Fatalf("expected primary column 'id', got %v", primary)
	}
	if !users.HasColumn("name") {
		t.Error("expected column 'name' to exist")
	}
	if users.HasColumn("missing") {
		t.Error("did not expect column 'missing' to exist")
	}
}

func TestTableAddForeignSynthesizesName(t *testing.T) {
	posts := NewTable("posts")
	fk := posts.AddForeign("user_id", "users", "id")
	if want := "posts_user_id_foreign"; fk.Name() != want {
		t.Errorf("expected synthesized name %q, got %q", want, fk.Name())
	}
	if fk.Foreign == nil || fk.Foreign.Table != "users" || fk.Foreign.Column != "id" {
		t.Errorf("unexpected foreign descriptor: %+v", fk.Foreign)
	}
}

func TestSchemaAccumulateAdd(t *testing.T) {
	base := NewSchema("app")

	step1 := NewSchemaVersion("app", 1)
	users := NewTable("users")
	users.AddInt("id").Primary().AutoIncr()
	users.AddString("name")
	step1.CreateTable(users)

	if err := SchemaAccumulate(base, step1); err != nil {
		t.Fatalf("SchemaAccumulate: %v", err)
	}
	if !base.HasTable("users") {
		t.Fatal("expected table 'users' after accumulation")
	}
	if got := base.Find("users").GetColumn("name"); got == nil {
		t.Error("expected column 'name' on accumulated table")
	}
}

func TestSchemaAccumulateAlterAddsColumn(t *testing.T) {
	base := NewSchema("app")
	step1 := NewSchemaVersion("app", 1)
	step1.CreateTable(NewTable("users"))
	if err := SchemaAccumulate(base, step1); err != nil {
		t.Fatalf("step1: %v", err)
	}

	step2 := NewSchemaVersion("app", 2)
	alter := step2.AlterTable("users")
	alter.AddString("email")
	if err := SchemaAccumulate(base, step2); err != nil {
		t.Fatalf("step2: %v", err)
	}

	users := base.Find("users")
	if users == nil {
		t.Fatal("expected table 'users' to survive the alter")
	}
	if !users.HasColumn("email") {
		t.Error("expected column 'email' added by the alter step")
	}
}

func TestSchemaAccumulateRenameColumnTracedByForeignKey(t *testing.T) {
	base := NewSchema("app")

	step1 := NewSchemaVersion("app", 1)
	users := NewTable("users")
	users.AddInt("id").Primary().AutoIncr()
	step1.CreateTable(users)
	if err := SchemaAccumulate(base, step1); err != nil {
		t.Fatalf("step1: %v", err)
	}

	step2 := NewSchemaVersion("app", 2)
	alter := step2.AlterTable("users")
	alter.RenameColumn("id", "user_id")
	if err := SchemaAccumulate(base, step2); err != nil {
		t.Fatalf("step2: %v", err)
	}

	step3 := NewSchemaVersion("app", 3)
	posts := NewTable("posts")
	posts.AddInt("id").Primary().AutoIncr()
	posts.AddForeign("author", "users", "id")
	step3.CreateTable(posts)
	if err := SchemaAccumulate(base, step3); err != nil {
		t.Fatalf("step3: %v", err)
	}

	fk := base.Find("posts").GetColumn("posts_author_foreign")
	if fk == nil || fk.Foreign == nil {
		t.Fatal("expected foreign key column to survive accumulation")
	}
	if fk.Foreign.Column != "user_id" {
		t.Errorf("expected foreign key to trace the rename to 'user_id', got %q", fk.Foreign.Column)
	}
}

func TestSchemaAccumulateDropColumnThenDropTombstone(t *testing.T) {
	base := NewSchema("app")
	step1 := NewSchemaVersion("app", 1)
	users := NewTable("users")
	users.AddString("legacy_flag")
	step1.CreateTable(users)
	if err := SchemaAccumulate(base, step1); err != nil {
		t.Fatalf("step1: %v", err)
	}

	step2 := NewSchemaVersion("app", 2)
	alter := step2.AlterTable("users")
	alter.DropColumn("legacy_flag")
	if err := SchemaAccumulate(base, step2); err != nil {
		t.Fatalf("step2: %v", err)
	}

	if base.Find("users").HasColumn("legacy_flag") {
		t.Error("expected 'legacy_flag' to be gone after drop accumulation")
	}
}

func TestSchemaAccumulateAddCollidesWithRenamedTable(t *testing.T) {
	base := NewSchema("app")

	step1 := NewSchemaVersion("app", 1)
	accounts := NewTable("accounts")
	accounts.AddInt("id").Primary().AutoIncr()
	step1.CreateTable(accounts)
	posts := NewTable("posts")
	posts.AddForeign("author", "accounts", "id")
	step1.CreateTable(posts)
	if err := SchemaAccumulate(base, step1); err != nil {
		t.Fatalf("step1: %v", err)
	}

	// rename accounts -> users, and in the same step add a brand-new,
	// unrelated table that happens to reuse the rename's target name —
	// before posts.posts_author_foreign (still pointing at "accounts")
	// ever gets a chance to resolve through the rename.
	step2 := NewSchemaVersion("app", 2)
	step2.RenameTable("accounts", "users")
	unrelated := NewTable("users")
	unrelated.AddInt("id").Primary().AutoIncr()
	step2.CreateTable(unrelated)

	// posts.posts_author_foreign still references the original "accounts"
	// table by its old name; "accounts" now resolves through the rename
	// chain to a name reused by an unrelated table, so it must come back
	// unresolved rather than silently be retargeted at the new table.
	if err := SchemaAccumulate(base, step2); err == nil {
		t.Fatal("expected the superseded rename target to surface an error from TraceForeign")
	}
}

func TestSchemaAccumulateAddRejectsDuplicateLiveName(t *testing.T) {
	base := NewSchema("app")

	step1 := NewSchemaVersion("app", 1)
	step1.CreateTable(NewTable("users"))
	if err := SchemaAccumulate(base, step1); err != nil {
		t.Fatalf("step1: %v", err)
	}

	step2 := NewSchemaVersion("app", 2)
	step2.CreateTable(NewTable("users"))
	if err := SchemaAccumulate(base, step2); err == nil {
		t.Fatal("expected ADD of a duplicate live table name to fail")
	}
}

func TestTraceForeignDroppedReferenceFails(t *testing.T) {
	base := NewSchema("app")
	step1 := NewSchemaVersion("app", 1)
	users := NewTable("users")
	users.AddInt("id").Primary().AutoIncr()
	step1.CreateTable(users)
	posts := NewTable("posts")
	posts.AddForeign("author", "users", "id")
	step1.CreateTable(posts)
	if err := SchemaAccumulate(base, step1); err != nil {
		t.Fatalf("step1: %v", err)
	}

	step2 := NewSchemaVersion("app", 2)
	alter := step2.AlterTable("users")
	alter.DropColumn("id")
	if err := SchemaAccumulate(base, step2); err == nil {
		t.Fatal("expected dropped reference to surface an error from TraceForeign")
	}
}
