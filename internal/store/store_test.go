package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/jumptools/airtime/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestSQLiteKV(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	kv := NewSQLiteKV(db)

	t.Run("unset key returns nil", func(t *testing.T) {
		data, err := kv.Get("missing")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if data != nil {
			t.Errorf("expected nil for unset key, got %q", data)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := kv.Set("k", []byte(`["a"]`)); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		data, err := kv.Get("k")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if string(data) != `["a"]` {
			t.Errorf("got %q, want %q", data, `["a"]`)
		}
	})

	t.Run("set fully rewrites", func(t *testing.T) {
		if err := kv.Set("k", []byte(`["b","c"]`)); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		data, err := kv.Get("k")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if string(data) != `["b","c"]` {
			t.Errorf("got %q, want %q", data, `["b","c"]`)
		}
	})
}

func TestUserStoreBootstrap(t *testing.T) {
	t.Run("creates guest on first run", func(t *testing.T) {
		kv := NewMemoryKV()
		users, err := NewUserStore(kv)
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		if users.Len() != 1 {
			t.Fatalf("expected 1 profile, got %d", users.Len())
		}
		current, ok := users.Current()
		if !ok {
			t.Fatal("expected a current user")
		}
		if current.Name != DefaultUserName {
			t.Errorf("expected %q, got %q", DefaultUserName, current.Name)
		}

		// Guest must be persisted immediately.
		data, err := kv.Get(KeyUsers)
		if err != nil || data == nil {
			t.Errorf("guest profile not persisted: %v", err)
		}
	})

	t.Run("bootstrap is idempotent", func(t *testing.T) {
		kv := NewMemoryKV()
		first, err := NewUserStore(kv)
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		guest, _ := first.Current()

		second, err := NewUserStore(kv)
		if err != nil {
			t.Fatalf("failed to reload store: %v", err)
		}
		if second.Len() != 1 {
			t.Errorf("reload duplicated the guest: %d profiles", second.Len())
		}
		reloaded, _ := second.Current()
		if reloaded.ID != guest.ID {
			t.Errorf("current user changed across reloads: %s != %s", reloaded.ID, guest.ID)
		}
	})
}

func TestUserStoreCreate(t *testing.T) {
	t.Run("appends and switches current", func(t *testing.T) {
		users, err := NewUserStore(NewMemoryKV())
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		before := users.Len()

		user, created := users.Create("Dana")
		if !created {
			t.Fatal("expected profile to be created")
		}
		if users.Len() != before+1 {
			t.Errorf("expected %d profiles, got %d", before+1, users.Len())
		}
		current, _ := users.Current()
		if current.ID != user.ID {
			t.Errorf("expected new profile to be current")
		}
	})

	t.Run("empty name is a silent no-op", func(t *testing.T) {
		users, err := NewUserStore(NewMemoryKV())
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		before := users.Len()
		currentBefore, _ := users.Current()

		for _, name := range []string{"", "   ", "\t\n"} {
			if _, created := users.Create(name); created {
				t.Errorf("Create(%q) created a profile", name)
			}
		}

		if users.Len() != before {
			t.Errorf("profile count changed: %d → %d", before, users.Len())
		}
		currentAfter, _ := users.Current()
		if currentAfter.ID != currentBefore.ID {
			t.Error("current user changed on rejected create")
		}
	})

	t.Run("name is trimmed", func(t *testing.T) {
		users, err := NewUserStore(NewMemoryKV())
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		user, created := users.Create("  Kim  ")
		if !created {
			t.Fatal("expected profile to be created")
		}
		if user.Name != "Kim" {
			t.Errorf("expected trimmed name, got %q", user.Name)
		}
	})
}

func TestUserStoreSwitch(t *testing.T) {
	kv := NewMemoryKV()
	users, err := NewUserStore(kv)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	guest, _ := users.Current()
	users.Create("Dana")

	if err := users.SwitchByID(guest.ID); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	current, _ := users.Current()
	if current.ID != guest.ID {
		t.Errorf("expected guest current, got %s", current.Name)
	}

	// Selection survives a reload.
	reloaded, err := NewUserStore(kv)
	if err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	current, _ = reloaded.Current()
	if current.ID != guest.ID {
		t.Errorf("current user not persisted across reloads")
	}

	if err := users.SwitchByID("missing"); err == nil {
		t.Error("expected error switching to unknown id")
	}
}

func TestUserStoreDelete(t *testing.T) {
	t.Run("falls back to first remaining profile", func(t *testing.T) {
		users, err := NewUserStore(NewMemoryKV())
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		guest, _ := users.Current()
		dana, _ := users.Create("Dana")

		// Dana is current; deleting her falls back to the guest.
		if err := users.Delete(dana.ID); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		current, ok := users.Current()
		if !ok || current.ID != guest.ID {
			t.Errorf("expected fallback to guest, got %v", current.Name)
		}

		if err := users.Delete("missing"); err == nil {
			t.Error("expected error deleting unknown id")
		}
	})

	t.Run("does not cascade to history", func(t *testing.T) {
		users, _ := NewUserStore(NewMemoryKV())
		history, _ := NewHistoryStore(NewMemoryKV())
		dana, _ := users.Create("Dana")
		history.Save(dana.ID, 30.6, 0.5, "")

		if err := users.Delete(dana.ID); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if history.Len() != 1 {
			t.Errorf("deleting a user removed their records")
		}
	})

	t.Run("guest is re-bootstrapped when all profiles are gone", func(t *testing.T) {
		kv := NewMemoryKV()
		users, _ := NewUserStore(kv)
		guest, _ := users.Current()
		if err := users.Delete(guest.ID); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		reloaded, err := NewUserStore(kv)
		if err != nil {
			t.Fatalf("failed to reload store: %v", err)
		}
		if reloaded.Len() != 1 {
			t.Fatalf("expected a fresh guest, got %d profiles", reloaded.Len())
		}
		current, _ := reloaded.Current()
		if current.Name != DefaultUserName {
			t.Errorf("expected %q, got %q", DefaultUserName, current.Name)
		}
	})
}

func TestHistoryStore(t *testing.T) {
	t.Run("save prepends and persists", func(t *testing.T) {
		kv := NewMemoryKV()
		history, err := NewHistoryStore(kv)
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		first, err := history.Save("u1", 30.6, 0.5, "")
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}
		second, err := history.Save("u1", 35.0, 0.535, "better")
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}

		all := history.All()
		if len(all) != 2 {
			t.Fatalf("expected 2 records, got %d", len(all))
		}
		if all[0].ID != second.ID || all[1].ID != first.ID {
			t.Error("expected most-recent-first ordering")
		}

		reloaded, err := NewHistoryStore(kv)
		if err != nil {
			t.Fatalf("failed to reload store: %v", err)
		}
		if reloaded.Len() != 2 {
			t.Errorf("records not persisted: got %d", reloaded.Len())
		}
	})

	t.Run("delete removes by id", func(t *testing.T) {
		history, err := NewHistoryStore(NewMemoryKV())
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		record, _ := history.Save("u1", 30.6, 0.5, "")

		if err := history.Delete(record.ID); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if history.Len() != 0 {
			t.Errorf("expected empty history, got %d", history.Len())
		}
		if err := history.Delete(record.ID); err == nil {
			t.Error("expected error deleting unknown id")
		}
	})

	t.Run("rejects invalid measurements", func(t *testing.T) {
		history, err := NewHistoryStore(NewMemoryKV())
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		if _, err := history.Save("u1", -5, 0.5, ""); err == nil {
			t.Error("expected error for negative height")
		}
		if history.Len() != 0 {
			t.Errorf("invalid record was stored")
		}
	})
}

func TestHistoryForUser(t *testing.T) {
	history, err := NewHistoryStore(NewMemoryKV())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	history.Save("u1", 30.0, 0.49, "")
	history.Save("u2", 40.0, 0.57, "")
	history.Save("u1", 32.0, 0.51, "")

	records := history.ForUser("u1")
	if len(records) != 2 {
		t.Fatalf("expected 2 records for u1, got %d", len(records))
	}
	for _, record := range records {
		if record.UserID != "u1" {
			t.Errorf("record for wrong user: %s", record.UserID)
		}
	}
	for i := 1; i < len(records); i++ {
		if records[i].Date.After(records[i-1].Date) {
			t.Error("records not sorted by date descending")
		}
	}

	// Orphaned records survive: nothing filters on the user list.
	if got := history.ForUser("deleted-user"); got != nil {
		t.Errorf("expected no records for unknown user, got %d", len(got))
	}
}

func TestSaveJumpGate(t *testing.T) {
	t.Run("zero flight time never creates a record", func(t *testing.T) {
		users, _ := NewUserStore(NewMemoryKV())
		history, _ := NewHistoryStore(NewMemoryKV())
		before := history.Len()

		_, saved, err := SaveJump(users, history, 0, 0, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved {
			t.Error("expected save to be a no-op")
		}
		if history.Len() != before {
			t.Errorf("history length changed: %d → %d", before, history.Len())
		}
	})

	t.Run("positive flight time saves against current user", func(t *testing.T) {
		users, _ := NewUserStore(NewMemoryKV())
		history, _ := NewHistoryStore(NewMemoryKV())
		current, _ := users.Current()

		record, saved, err := SaveJump(users, history, 0.5, 30.65, "")
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if !saved {
			t.Fatal("expected record to be saved")
		}
		if record.UserID != current.ID {
			t.Errorf("record saved for wrong user: %s", record.UserID)
		}
		if time.Since(record.Date) > time.Minute {
			t.Errorf("suspicious record date: %v", record.Date)
		}
	})
}
