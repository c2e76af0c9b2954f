package database

import (
	"io/fs"
	"net/url"
	"testing"

	"vet-clinic/config"
)

func TestMigrationURL(t *testing.T) {
	raw := MigrationURL(config.DBConfig{
		Host:     "db",
		Port:     "5432",
		User:     "clinic",
		Password: "p@ss word",
		Name:     "vet",
		SSLMode:  "disable",
	})

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q) error = %v", raw, err)
	}
	if u.Scheme != "pgx5" || u.Host != "db:5432" || u.Path != "/vet" {
		t.Fatalf("MigrationURL() = %q", raw)
	}
	if pw, _ := u.User.Password(); pw != "p@ss word" {
		t.Fatalf("password = %q, want %q", pw, "p@ss word")
	}
	if u.Query().Get("sslmode") != "disable" {
		t.Fatalf("sslmode = %q, want disable", u.Query().Get("sslmode"))
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	for _, name := range []string{"migrations/000001_init.up.sql", "migrations/000001_init.down.sql"} {
		b, err := fs.ReadFile(migrationsFS, name)
		if err != nil {
			t.Fatalf("ReadFile(%q) error = %v", name, err)
		}
		if len(b) == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
}
