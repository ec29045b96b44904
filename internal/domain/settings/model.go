package settings

// Setting — пара имя/значение. Сейчас используется одно имя:
// "goal" — целевая месячная выручка.
type Setting struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

const NameGoal = "goal"
