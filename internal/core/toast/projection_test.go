package toast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleToasts() []Toast {
	return []Toast{
		{ID: "1", Position: TopRight},
		{ID: "2", Position: BottomLeft},
		{ID: "3", Position: TopRight},
		{ID: "4", Position: TopCenter},
		{ID: "5", Position: BottomLeft},
		{ID: "6", Position: TopRight},
	}
}

func ids(list []Toast) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.ID
	}
	return out
}

func TestProject_preserves_order(t *testing.T) {
	list := sampleToasts()

	assert.Equal(t, []string{"1", "3", "6"}, ids(Project(list, TopRight)))
	assert.Equal(t, []string{"2", "5"}, ids(Project(list, BottomLeft)))
}

func TestProject_empty_anchor_is_empty_not_nil(t *testing.T) {
	got := Project(sampleToasts(), BottomCenter)

	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.NotNil(t, Project(nil, TopLeft))
}

func TestProject_does_not_mutate_input(t *testing.T) {
	list := sampleToasts()
	before := ids(list)

	_ = Project(list, TopRight)
	_ = Group(list)

	assert.Equal(t, before, ids(list))
}

func TestGroup_partitions_exactly_once(t *testing.T) {
	list := sampleToasts()
	groups := Group(list)

	require.Len(t, groups, 6)

	seen := map[string]int{}
	for _, p := range Positions() {
		group, ok := groups[p]
		require.True(t, ok, "anchor %s missing", p)
		for _, tt := range group {
			seen[tt.ID]++
			assert.Equal(t, p, tt.Position)
		}
		assert.Equal(t, ids(Project(list, p)), ids(group))
	}

	require.Len(t, seen, len(list))
	for id, n := range seen {
		assert.Equal(t, 1, n, "toast %s appears %d times", id, n)
	}
}

func TestMatchPositions(t *testing.T) {
	tests := []struct {
		pattern string
		want    []Position
	}{
		{"", Positions()},
		{"*", Positions()},
		{"top-*", []Position{TopRight, TopLeft, TopCenter}},
		{"*-center", []Position{TopCenter, BottomCenter}},
		{"bottom-{left,right}", []Position{BottomRight, BottomLeft}},
		{"middle", nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := MatchPositions(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchPositions_invalid_pattern(t *testing.T) {
	_, err := MatchPositions("top-[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid anchor pattern")
}

func TestProjectMatching(t *testing.T) {
	got, err := ProjectMatching(sampleToasts(), "top-*")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "4", "6"}, ids(got))

	_, err = ProjectMatching(sampleToasts(), "[")
	assert.Error(t, err)
}
