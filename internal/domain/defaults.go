package domain

// DefaultShiftEntries is the built-in roster used when no schedule file exists.
func DefaultShiftEntries() []ShiftEntry {
	shift := func(key string, start, end TimeOfDay, team string) ShiftEntry {
		return ShiftEntry{Shift: ShiftDefinition{Key: key, Start: start, End: end, Team: team}}
	}
	hm := func(h, m int) TimeOfDay { return TimeOfDay(h*60 + m) }

	return []ShiftEntry{
		shift("mauricio t1", hm(5, 0), hm(13, 0), "T1"),
		shift("antonio t1", hm(13, 0), hm(21, 0), "T1"),
		shift("hosman t1", hm(21, 0), hm(5, 0), "T1"),

		shift("gleidys t2", hm(6, 30), hm(13, 30), "T2"),
		shift("yerika t2", hm(14, 30), hm(22, 30), "T2"),
		shift("luis t2", hm(22, 30), hm(6, 30), "T2"),

		shift("mariangela t3", hm(5, 0), hm(13, 0), "T3"),
		shift("stephen t3", hm(13, 0), hm(21, 0), "T3"),
		shift("kyle t3", hm(21, 0), hm(5, 0), "T3"),
	}
}
