package menuservice

import (
	"encoding/json"
	"sort"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
)

// Snapshot ответ GET /menu/daily: дата (YYYY-MM-DD) -> меню дня
type Snapshot map[string]DayPayload

// DayPayload меню одного дня
type DayPayload struct {
	Day   string               `json:"day"`
	Meals map[string]MealValue `json:"meals"`
}

// MealValue значение из meals: описание блюда или остаток порций.
// Принимает и строку, и число.
type MealValue string

// UnmarshalJSON декодирует строку или число
func (v *MealValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = MealValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = MealValue(n.String())
	return nil
}

// DayMenu возвращает меню на дату; отсутствующая дата - пустое меню
func (s Snapshot) DayMenu(date string) *domain.DayMenu {
	menu := &domain.DayMenu{
		Date:  date,
		Meals: make(map[string]string),
	}

	payload, ok := s[date]
	if !ok {
		return menu
	}

	menu.Day = payload.Day
	for label, value := range payload.Meals {
		menu.Meals[label] = string(value)
	}
	return menu
}

// Dates возвращает отсортированный список дат снапшота
func (s Snapshot) Dates() []string {
	dates := make([]string, 0, len(s))
	for date := range s {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}
