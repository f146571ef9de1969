package engine

// place runs the greedy phase: for every group in descending size order,
// seat each student on the first valid seat of the best-ranked room. Rooms
// are re-ranked per student because the score depends on live occupancy and
// on how many of the group are still waiting.
func place(groups []ExamGroup, states map[string]*roomState, eligible map[string][]string, policy Policy) (Assignment, []string, error) {
	assignment := make(Assignment)
	var unassigned []string

	for _, g := range groups {
		roomIDs := eligible[g.Exam]
		for i, sid := range g.Students {
			remaining := len(g.Students) - i
			placed := false
			for _, st := range rankRooms(states, roomIDs, g.Exam, remaining, policy) {
				c, ok := st.firstFreeSeat(g.Exam)
				if !ok {
					continue
				}
				st.place(sid, g.Exam, c)
				assignment[sid] = Seat{Room: st.spec.ID, Row: c.row, Col: c.col}
				placed = true
				break
			}
			if placed {
				continue
			}
			if policy.OnUnassigned == FailFast {
				return nil, nil, &PlacementError{Student: sid, Exam: g.Exam}
			}
			unassigned = append(unassigned, sid)
		}
	}
	return assignment, unassigned, nil
}
