package models

import "testing"

func TestTableNames(t *testing.T) {
	cases := map[string]interface{ TableName() string }{
		"users":         User{},
		"professionals": Professional{},
		"services":      Service{},
		"bookings":      Booking{},
		"messages":      Message{},
		"requirements":  Requirement{},
	}
	for want, m := range cases {
		if got := m.TableName(); got != want {
			t.Fatalf("unexpected table name: got %s want %s", got, want)
		}
	}
}

func TestAll_CoversEveryTable(t *testing.T) {
	if got := len(All()); got != 6 {
		t.Fatalf("expected 6 models, got %d", got)
	}
}
