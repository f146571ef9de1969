package engine

import "sort"

// rankRooms orders the eligible rooms for the next student of an exam.
// Lower score wins. The score prefers rooms with more free seats, penalizes
// opening an empty room while another eligible room still has slack or while
// the remaining group tail is small, and rewards rooms already holding other
// exams. Ties break by room id so reruns are reproducible.
func rankRooms(states map[string]*roomState, roomIDs []string, exam string, remaining int, p Policy) []*roomState {
	slackElsewhere := false
	for _, id := range roomIDs {
		st := states[id]
		if st.used() > 0 && st.fillRatio() < p.FillThreshold {
			slackElsewhere = true
			break
		}
	}

	type scored struct {
		st    *roomState
		score int
	}
	list := make([]scored, 0, len(roomIDs))
	for _, id := range roomIDs {
		st := states[id]
		if st.available() == 0 {
			continue
		}
		score := -st.available() * p.CapacityWeight
		if st.used() == 0 {
			if slackElsewhere {
				score += p.FragmentationPenalty
			}
			if remaining < p.TailThreshold {
				score += p.TailPenalty
			}
		}
		if st.holdsOtherExam(exam) {
			score -= p.DiversityBonus
		}
		list = append(list, scored{st: st, score: score})
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score < list[j].score
		}
		return list[i].st.spec.ID < list[j].st.spec.ID
	})

	out := make([]*roomState, len(list))
	for i, s := range list {
		out[i] = s.st
	}
	return out
}
