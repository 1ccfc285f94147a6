package domain

// Timetable maps a weekday index (0=Monday .. 5=Saturday) to the ordered
// subject keys scheduled that day. Sundays carry no index. An absent key
// or empty slice means no classes that day.
type Timetable map[int][]string

func (t Timetable) CodesFor(dayIndex int) []string {
	if dayIndex < 0 {
		return nil
	}
	return t[dayIndex]
}

func (t Timetable) IsEmpty() bool {
	for _, codes := range t {
		if len(codes) > 0 {
			return false
		}
	}
	return true
}
