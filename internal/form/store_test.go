package form

import (
	"reflect"
	"testing"
)

func TestStoreSettersNotifySynchronously(t *testing.T) {
	st := NewStore(Defaults("2024-01-01"))
	var seen []string
	st.OnChange(func(s Snapshot) { seen = append(seen, s.Time) })

	st.SetTime("10:00")
	st.SetTime("")

	if !reflect.DeepEqual(seen, []string{"10:00", ""}) {
		t.Errorf("expected one notification per mutation, got %v", seen)
	}
}

func TestStoreGetReturnsCopy(t *testing.T) {
	st := NewStore(Snapshot{Payments: []PaymentAllocation{{TypeID: "p1", Amount: "100"}}})
	snap := st.Get()
	snap.Payments[0].Amount = "999"

	if got := st.Get().Payments[0].Amount; got != "100" {
		t.Errorf("snapshot copy leaked back into the store: %q", got)
	}
}

func TestStoreResetReplacesWholeSnapshot(t *testing.T) {
	st := NewStore(Defaults("2024-01-01"))
	st.SetDescription("старый текст")
	st.SetTime("12:00")

	st.Reset(Defaults("2024-02-02"))

	snap := st.Get()
	if snap.Description != "" || snap.Time != "" {
		t.Errorf("reset left old fields behind: %+v", snap)
	}
	if snap.Date != "2024-02-02" {
		t.Errorf("expected new default date, got %q", snap.Date)
	}
}

func TestStoreResetNotVisiblePartially(t *testing.T) {
	st := NewStore(Defaults("2024-01-01"))
	var got Snapshot
	st.OnChange(func(s Snapshot) { got = s })

	next := Defaults("2024-03-03")
	next.Gender = GenderFemale
	st.Reset(next)

	// подписчик видит уже целиком новый снапшот
	if got.Date != "2024-03-03" || got.Gender != GenderFemale {
		t.Errorf("observer saw partial reset: %+v", got)
	}
}
