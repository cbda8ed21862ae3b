package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestListingPatch_Apply_OnlyProvidedFields(t *testing.T) {
	l := Listing{ID: 1, Owner: 2, Title: "Cabin", Address: "Lake road", Perks: []string{"wifi"}, MaxGuests: 4, Price: 100}
	title := "Lake cabin"
	price := 120.0
	patch := ListingPatch{Title: &title, Price: &price}

	patch.Apply(&l)
	first := l
	patch.Apply(&l)

	if l.Title != "Lake cabin" || l.Price != 120 {
		t.Errorf("patched fields not applied: %+v", l)
	}
	if l.Address != "Lake road" || l.MaxGuests != 4 || len(l.Perks) != 1 {
		t.Errorf("unpatched fields changed: %+v", l)
	}
	if l.Title != first.Title || l.Price != first.Price || l.Address != first.Address {
		t.Errorf("applying twice changed state: %+v vs %+v", first, l)
	}
}

func TestUniquePerks(t *testing.T) {
	got := UniquePerks([]string{"wifi", "parking", "wifi", "", "pets"})
	want := []string{"wifi", "parking", "pets"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDate_JSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-07-01T15:04:05Z"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.July || d.Day() != 1 {
		t.Errorf("unexpected date: %v", d)
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-07-01"` {
		t.Errorf("marshal: got %s", b)
	}
	if err := json.Unmarshal([]byte(`"not a date"`), &d); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestUser_HidesPasswordHash(t *testing.T) {
	b, _ := json.Marshal(User{ID: 1, Name: "Ann", Email: "ann@example.com", PasswordHash: "$2a$10$secret"})
	var out map[string]any
	_ = json.Unmarshal(b, &out)
	if _, ok := out["PasswordHash"]; ok {
		t.Errorf("password hash leaked: %s", b)
	}
	if len(out) != 3 {
		t.Errorf("unexpected fields: %s", b)
	}
}
