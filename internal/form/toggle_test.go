package form

import (
	"reflect"
	"testing"
)

func TestToggleAddsAbsentID(t *testing.T) {
	got := Toggle([]string{"a", "b"}, "c")
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("unexpected set: %v", got)
	}
}

func TestToggleRemovesPresentID(t *testing.T) {
	got := Toggle([]string{"a", "b", "c"}, "b")
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("unexpected set: %v", got)
	}
}

func TestToggleTwiceIsIdentity(t *testing.T) {
	set := []string{"a", "b"}
	got := Toggle(Toggle(set, "x"), "x")
	if !reflect.DeepEqual(got, set) {
		t.Errorf("double toggle should restore the set, got %v", got)
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	set := []string{"a", "b"}
	_ = Toggle(set, "c")
	if !reflect.DeepEqual(set, []string{"a", "b"}) {
		t.Errorf("input mutated: %v", set)
	}
}

func TestToggleExclusiveSameValueClears(t *testing.T) {
	if got := ToggleExclusive("10:30", "10:30"); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestToggleExclusiveOtherValueWins(t *testing.T) {
	if got := ToggleExclusive("10:30", "11:00"); got != "11:00" {
		t.Errorf("expected 11:00, got %q", got)
	}
	if got := ToggleExclusive("", "09:00"); got != "09:00" {
		t.Errorf("expected 09:00, got %q", got)
	}
}

func TestTimeSlotsGrid(t *testing.T) {
	slots := TimeSlots()
	if len(slots) != 27 {
		t.Fatalf("expected 27 slots, got %d", len(slots))
	}
	if slots[0] != "09:00" {
		t.Errorf("expected first slot 09:00, got %q", slots[0])
	}
	if slots[1] != "09:30" {
		t.Errorf("expected second slot 09:30, got %q", slots[1])
	}
	if slots[26] != "22:00" {
		t.Errorf("expected last slot 22:00, got %q", slots[26])
	}
}
