package engine

// improve runs a bounded first-improvement local search: scan student pairs
// within a sliding window and apply any seat swap between students of
// different exams that keeps the whole assignment valid. Same-exam pairs
// never swap, following the grouping already in place. A rejected swap is
// rolled back before the scan continues, so the assignment is valid after
// every step.
func improve(a Assignment, roster []Student, rooms []RoomSpec, restrictions Restrictions, p Policy) {
	examOf := examIndex(roster)
	ids := assignedIDs(a)
	var lastA, lastB string

	for iter := 0; iter < p.MaxImproveIters; iter++ {
		swapped := false
	scan:
		for i := 0; i < len(ids); i++ {
			limit := i + p.PairWindow
			if limit > len(ids)-1 {
				limit = len(ids) - 1
			}
			for j := i + 1; j <= limit; j++ {
				s1, s2 := ids[i], ids[j]
				if examOf[s1] == examOf[s2] {
					continue
				}
				// Skip the pair swapped last round so the scan
				// does not immediately undo its own work.
				if s1 == lastA && s2 == lastB {
					continue
				}
				a[s1], a[s2] = a[s2], a[s1]
				if Check(a, roster, rooms, restrictions) == nil {
					lastA, lastB = s1, s2
					swapped = true
					break scan
				}
				a[s1], a[s2] = a[s2], a[s1]
			}
		}
		if !swapped {
			return
		}
	}
}
