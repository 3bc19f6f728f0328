package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"Study":    CategoryStudy,
		"  gym ":   CategoryFitness,
		"WORK":     CategoryBusiness,
		"personal": CategoryPersonal,
		"Fitness":  CategoryFitness,
		"biz":      CategoryBusiness,
		"learn":    CategoryStudy,
		"home":     CategoryPersonal,
	}
	for in, want := range cases {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCategory("gardening")
	assert.Error(t, err)
	assert.False(t, Category("gardening").IsValid())
}

func TestUserStatsCloneIsDeep(t *testing.T) {
	last := "2026-10-19"
	s := DefaultUserStats()
	s.LastCompletedDate = &last
	s.Badges = append(s.Badges, Badge{ID: "streak-7"})

	c := s.Clone()
	*c.LastCompletedDate = "2000-01-01"
	c.CategoryStats[CategoryStudy] = 9
	c.Badges[0].ID = "changed"

	assert.Equal(t, "2026-10-19", last)
	assert.Equal(t, 0, s.CategoryStats[CategoryStudy])
	assert.Equal(t, "streak-7", s.Badges[0].ID)
	assert.True(t, s.HasBadge("streak-7"))
	assert.False(t, s.HasBadge("tasks-50"))
}

func TestCloneFillsMissingCategories(t *testing.T) {
	s := UserStats{Level: 1, CategoryStats: map[Category]int{CategoryFitness: 2}}
	c := s.Clone()
	assert.Len(t, c.CategoryStats, len(Categories))
	assert.Equal(t, 2, c.CategoryStats[CategoryFitness])
	assert.NotNil(t, c.Badges)
}
