package analysis

// DefaultPenaltyPerLevel dipakai kalau config tidak mengisi penalty.
const DefaultPenaltyPerLevel = 20

// ScoreTree walks the tree once. Depth counts only tracked blocks; scope
// nodes partition attribution but the running depth accumulates through
// them, so a loop inside a function defined inside a loop still deepens.
// Index 0 is always the module-level scope: top-level script logic is
// included on purpose.
func ScoreTree(tree *SyntaxTree) NestingFinding {
	finding := NestingFinding{}
	scopes := []ScopeDepth{{Name: "(module)"}}

	var walk func(n *Node, depth, scopeIdx int)
	walk = func(n *Node, depth, scopeIdx int) {
		for _, child := range n.Children {
			switch child.Kind {
			case KindScope:
				scopes = append(scopes, ScopeDepth{Name: child.Name})
				walk(child, depth, len(scopes)-1)
			case KindTracked:
				d := depth + 1
				if d > scopes[scopeIdx].Depth {
					scopes[scopeIdx].Depth = d
				}
				if d > finding.MaxDepth {
					finding.MaxDepth = d
				}
				walk(child, d, scopeIdx)
			default:
				walk(child, depth, scopeIdx)
			}
		}
	}
	walk(tree.Root, 0, 0)

	finding.Scopes = scopes
	return finding
}

// ScoreFromDepth is the load-bearing numeric rule:
// score = max(0, 100 - penalty*depth), clamped to [0,100].
// Depth 0 atau 1 => 100 atau 80; depth >= 5 => 0 dengan penalty default.
func ScoreFromDepth(depth, penaltyPerLevel int) int {
	if penaltyPerLevel <= 0 {
		penaltyPerLevel = DefaultPenaltyPerLevel
	}
	score := 100 - penaltyPerLevel*depth
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
