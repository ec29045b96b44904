package form

import "fmt"

// Toggle переключает членство id в множестве: есть — убрать,
// нет — добавить в конец. Исходный срез не трогается.
func Toggle(set []string, id string) []string {
	out := make([]string, 0, len(set)+1)
	found := false
	for _, v := range set {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return out
}

// ToggleExclusive — одиночный выбор с отменой повторным кликом:
// клик по активному значению сбрасывает его в "".
func ToggleExclusive(current, candidate string) string {
	if current == candidate {
		return ""
	}
	return candidate
}

// TimeSlots — фиксированная сетка из 27 получасовых слотов 09:00–22:00.
func TimeSlots() []string {
	slots := make([]string, 0, 27)
	for i := 0; i < 27; i++ {
		hour := i/2 + 9
		minute := "00"
		if i%2 == 1 {
			minute = "30"
		}
		slots = append(slots, fmt.Sprintf("%02d:%s", hour, minute))
	}
	return slots
}
