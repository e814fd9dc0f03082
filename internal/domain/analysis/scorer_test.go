package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreFromDepthFormula(t *testing.T) {
	// score = max(0, 100 - 20*depth), clamped
	cases := []struct {
		depth int
		want  int
	}{
		{0, 100},
		{1, 80},
		{2, 60},
		{3, 40},
		{4, 20},
		{5, 0},
		{6, 0},
		{9, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ScoreFromDepth(tc.depth, 20), "depth %d", tc.depth)
	}
}

func TestScoreFromDepthCustomPenalty(t *testing.T) {
	assert.Equal(t, 90, ScoreFromDepth(1, 10))
	assert.Equal(t, 50, ScoreFromDepth(5, 10))
	assert.Equal(t, 0, ScoreFromDepth(12, 10))
}

func TestScoreFromDepthDefaultPenalty(t *testing.T) {
	// penalty <= 0 falls back to the default of 20
	assert.Equal(t, 60, ScoreFromDepth(2, 0))
	assert.Equal(t, 60, ScoreFromDepth(2, -5))
}

func TestScoreTreeEmpty(t *testing.T) {
	tree := &SyntaxTree{Language: LangPython, Root: &Node{Kind: KindRoot}}
	finding := ScoreTree(tree)

	assert.Equal(t, 0, finding.MaxDepth)
	require.Len(t, finding.Scopes, 1)
	assert.Equal(t, "(module)", finding.Scopes[0].Name)
	assert.Equal(t, 0, finding.Scopes[0].Depth)
}

func TestScoreTreeDepthPerScope(t *testing.T) {
	// module-level if, plus a function with for>while
	tree := &SyntaxTree{
		Language: LangPython,
		Root: &Node{
			Kind: KindRoot,
			Children: []*Node{
				{Kind: KindScope, Name: "outer", Children: []*Node{
					{Kind: KindTracked, Children: []*Node{
						{Kind: KindTracked},
					}},
				}},
				{Kind: KindTracked},
			},
		},
	}
	finding := ScoreTree(tree)

	assert.Equal(t, 2, finding.MaxDepth)
	require.Len(t, finding.Scopes, 2)
	assert.Equal(t, ScopeDepth{Name: "(module)", Depth: 1}, finding.Scopes[0])
	assert.Equal(t, ScopeDepth{Name: "outer", Depth: 2}, finding.Scopes[1])
}

func TestScoreTreeDepthAccumulatesThroughScopes(t *testing.T) {
	// a function defined inside a loop keeps the surrounding depth
	tree := &SyntaxTree{
		Language: LangPython,
		Root: &Node{
			Kind: KindRoot,
			Children: []*Node{
				{Kind: KindTracked, Children: []*Node{
					{Kind: KindScope, Name: "inner", Children: []*Node{
						{Kind: KindTracked},
					}},
				}},
			},
		},
	}
	finding := ScoreTree(tree)

	assert.Equal(t, 2, finding.MaxDepth)
	require.Len(t, finding.Scopes, 2)
	assert.Equal(t, 1, finding.Scopes[0].Depth) // module
	assert.Equal(t, 2, finding.Scopes[1].Depth) // inner
}

func TestScoreTreeUntrackedBlocksAddNoDepth(t *testing.T) {
	tree := &SyntaxTree{
		Language: LangJava,
		Root: &Node{
			Kind: KindRoot,
			Children: []*Node{
				{Kind: KindBlock, Children: []*Node{
					{Kind: KindBlock, Children: []*Node{
						{Kind: KindTracked},
					}},
				}},
			},
		},
	}
	assert.Equal(t, 1, ScoreTree(tree).MaxDepth)
}
