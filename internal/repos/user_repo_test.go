package repos_test

import (
	"testing"

	"opticaluz/internal/repos"
)

func TestDeleteClienteCascadeDropsSessionsAndSnapshots(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	users := repos.NewUserRepo(db)
	kv := repos.NewKVRepo(db)

	if err := users.BindSession("sid-a", "u-maria"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := kv.Put("sid-a", "carrito", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	if err := users.DeleteClienteCascade("u-maria"); err != nil {
		t.Fatalf("cascade: %v", err)
	}

	if _, err := users.ByID("u-maria"); err == nil {
		t.Fatal("cliente should be gone")
	}
	if _, ok, err := kv.Get("sid-a", "carrito"); err != nil || ok {
		t.Fatalf("snapshot should be gone (ok=%v err=%v)", ok, err)
	}
	if u, _ := users.SessionUser("sid-a"); u != nil {
		t.Fatal("session should be gone")
	}
}

// Admin accounts never go through the cascade path.
func TestDeleteClienteCascadeIgnoresAdmin(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	users := repos.NewUserRepo(db)

	if err := users.DeleteClienteCascade("u-admin"); err != nil {
		t.Fatalf("cascade: %v", err)
	}
	if _, err := users.ByID("u-admin"); err != nil {
		t.Fatalf("admin must survive: %v", err)
	}
}
