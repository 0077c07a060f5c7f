package store

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRoleValues(t *testing.T) {
	if RoleUser != "viuser" {
		t.Errorf("expected viuser, got %s", RoleUser)
	}
	if RoleVendor != "vivendor" {
		t.Errorf("expected vivendor, got %s", RoleVendor)
	}
}

func TestStatisticsFilterDefaults(t *testing.T) {
	f := StatisticsFilter{}
	if f.Gender != "" {
		t.Error("expected empty gender filter")
	}
	if f.MinAge != nil || f.MaxAge != nil {
		t.Error("expected unbounded age filter")
	}
}

func TestUserPasswordHashNotSerialized(t *testing.T) {
	u := User{Email: "a@b.c", PasswordHash: "bcrypt-hash"}
	data, err := json.Marshal(u)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "bcrypt-hash") {
		t.Error("password hash leaked into JSON")
	}
}
