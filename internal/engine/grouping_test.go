package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByExam(t *testing.T) {
	roster := []Student{
		{ID: "s1", Exam: "MATH"},
		{ID: "s2", Exam: "PHYS"},
		{ID: "s3", Exam: "MATH"},
		{ID: "s4", Exam: "CHEM"},
		{ID: "s5", Exam: "MATH"},
		{ID: "s6", Exam: "PHYS"},
	}

	groups := GroupByExam(roster)
	require.Len(t, groups, 3)

	t.Run("largest first", func(t *testing.T) {
		assert.Equal(t, "MATH", groups[0].Exam)
		assert.Len(t, groups[0].Students, 3)
	})

	t.Run("ties break by exam id", func(t *testing.T) {
		two := []Student{
			{ID: "a", Exam: "B"}, {ID: "b", Exam: "A"},
			{ID: "c", Exam: "B"}, {ID: "d", Exam: "A"},
		}
		got := GroupByExam(two)
		require.Len(t, got, 2)
		assert.Equal(t, "A", got[0].Exam)
		assert.Equal(t, "B", got[1].Exam)
	})

	t.Run("roster order kept within a group", func(t *testing.T) {
		assert.Equal(t, []string{"s1", "s3", "s5"}, groups[0].Students)
	})

	t.Run("empty roster", func(t *testing.T) {
		assert.Empty(t, GroupByExam(nil))
	})
}
