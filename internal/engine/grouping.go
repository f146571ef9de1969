package engine

import "sort"

// ExamGroup pairs an exam with the students sitting it, in roster order.
type ExamGroup struct {
	Exam     string
	Students []string
}

// GroupByExam partitions the roster into per-exam groups ordered largest
// first, ties broken by exam id. Large exams are hardest to spread without
// adjacency conflicts, so they get first pick of the rooms.
func GroupByExam(roster []Student) []ExamGroup {
	byExam := make(map[string][]string)
	for _, s := range roster {
		byExam[s.Exam] = append(byExam[s.Exam], s.ID)
	}
	groups := make([]ExamGroup, 0, len(byExam))
	for exam, ids := range byExam {
		groups = append(groups, ExamGroup{Exam: exam, Students: ids})
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].Students) != len(groups[j].Students) {
			return len(groups[i].Students) > len(groups[j].Students)
		}
		return groups[i].Exam < groups[j].Exam
	})
	return groups
}
