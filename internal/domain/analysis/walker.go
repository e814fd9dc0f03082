package analysis

import (
	"go/ast"
	"go/parser"
	"go/token"
)

// NodeKind enum untuk node pohon sintaks
type NodeKind int

const (
	// KindRoot is the file itself; module-level code hangs directly off it.
	KindRoot NodeKind = iota
	// KindScope is a named function/method/class body.
	KindScope
	// KindTracked is a loop/conditional/exception block that counts toward depth.
	KindTracked
	// KindBlock is any other block; it groups children but adds no depth.
	KindBlock
)

// Node is one block in the parsed tree.
type Node struct {
	Kind     NodeKind
	Name     string
	Children []*Node
}

// SyntaxTree is the parse result handed to the scorer. Owned by one analysis
// call, never mutated after Parse returns.
type SyntaxTree struct {
	Language Language
	Root     *Node
}

// Parse turns source text into a SyntaxTree, or a *ParseError when the text
// is broken in a way that prevents any depth computation. Pure function;
// never panics on malformed input.
func Parse(source string, lang Language) (*SyntaxTree, error) {
	switch lang {
	case LangGo:
		return parseGo(source)
	case LangPython:
		return parsePython(source)
	default:
		// java/js/cpp/ts/rust/unknown share the brace tokenizer
		return parseBraces(source, lang)
	}
}

// parseGo builds the tree from a real AST. This is the one language where we
// have a full grammar in the standard library, so use it.
func parseGo(source string) (*SyntaxTree, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "source.go", source, 0)
	if err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	root := &Node{Kind: KindRoot}
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}
		scope := &Node{Kind: KindScope, Name: fn.Name.Name}
		root.Children = append(root.Children, scope)
		buildGoBlocks(fn.Body, scope)
	}
	return &SyntaxTree{Language: LangGo, Root: root}, nil
}

// buildGoBlocks walks one function body, appending a KindTracked node for
// every loop/conditional construct. ast.Inspect reports leave events as a
// nil callback in LIFO order, which is what makes the parent stack work.
func buildGoBlocks(body *ast.BlockStmt, scope *Node) {
	parents := []*Node{scope}
	var pushed []bool

	ast.Inspect(body, func(n ast.Node) bool {
		if n == nil {
			if pushed[len(pushed)-1] {
				parents = parents[:len(parents)-1]
			}
			pushed = pushed[:len(pushed)-1]
			return false
		}

		tracked := false
		switch n.(type) {
		case *ast.ForStmt, *ast.RangeStmt, *ast.IfStmt,
			*ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
			tracked = true
		}
		if tracked {
			child := &Node{Kind: KindTracked}
			cur := parents[len(parents)-1]
			cur.Children = append(cur.Children, child)
			parents = append(parents, child)
		}
		pushed = append(pushed, tracked)
		return true
	})
}
