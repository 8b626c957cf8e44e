package muscle

// NewStats returns stats with every canonical muscle present and empty
func NewStats() Stats {
	stats := make(Stats, len(All))
	for _, id := range All {
		stats[id] = Stat{Exercises: []string{}}
	}
	return stats
}

// Aggregate tallies, per muscle, the names of the exercises that reference it and the sum
// of their frequencies. Records and muscles are visited in order, so exercise names keep
// insertion order. Unrecognised muscles are skipped.
func Aggregate(exercises []Exercise) Stats {
	stats := NewStats()
	for _, ex := range exercises {
		weight := ex.Weight()
		for _, ref := range ex.Muscles {
			id, ok := Normalize(ref)
			if !ok {
				continue
			}
			stat := stats[id]
			stat.Exercises = append(stat.Exercises, ex.Name)
			stat.Frequency += weight
			stats[id] = stat
		}
	}
	return stats
}

// Unrecognised returns the muscle references of exercises that Normalize cannot resolve,
// in input order.
func Unrecognised(exercises []Exercise) []Ref {
	var refs []Ref
	for _, ex := range exercises {
		for _, ref := range ex.Muscles {
			if _, ok := Normalize(ref); !ok {
				refs = append(refs, ref)
			}
		}
	}
	return refs
}

// Get returns the stat for id, or an empty stat when absent
func (s Stats) Get(id ID) Stat {
	if stat, ok := s[id]; ok {
		return stat
	}
	return Stat{Exercises: []string{}}
}

// Worked returns the muscles with a non-zero frequency in canonical order
func (s Stats) Worked() []ID {
	var ids []ID
	for _, id := range All {
		if s[id].Frequency > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
