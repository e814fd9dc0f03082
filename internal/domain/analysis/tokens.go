package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

// Token-based fallback parsers. Tanpa grammar lengkap, yang penting depth
// tracking monotonic dan deteksi blok yang tidak seimbang.

// ---------------------------------------------------------------------------
// Python: indentation + colon blocks
// ---------------------------------------------------------------------------

type pyStringState int

const (
	pyCode pyStringState = iota
	pyTripleSingle
	pyTripleDouble
)

var (
	pyDefRe   = regexp.MustCompile(`^(?:async\s+)?def\s+([A-Za-z_]\w*)`)
	pyClassRe = regexp.MustCompile(`^class\s+([A-Za-z_]\w*)`)
)

// trackedAlways are block keywords that count toward depth even when the
// body is inline ("if x: pass").
var pyTracked = map[string]bool{
	"for": true, "while": true, "if": true, "elif": true, "else": true,
	"try": true, "except": true, "finally": true,
}

// pyTrackedColon only count when they actually open a block, because the
// same words are legal identifiers ("match = 5").
var pyTrackedColon = map[string]bool{
	"match": true, "case": true,
}

func parsePython(source string) (*SyntaxTree, error) {
	root := &Node{Kind: KindRoot}

	type frame struct {
		indent int
		node   *Node
	}
	stack := []frame{{indent: -1, node: root}}

	state := pyCode
	bracketDepth := 0
	pending := ""
	pendingIndent := 0
	havePending := false

	for _, raw := range strings.Split(source, "\n") {
		clean, next := cleanPythonLine(raw, state)
		state = next

		trimmed := strings.TrimSpace(clean)
		if !havePending {
			if trimmed == "" {
				continue // blank or comment-only line
			}
			pendingIndent = indentWidth(raw)
			havePending = true
			pending = trimmed
		} else if trimmed != "" {
			pending += " " + trimmed
		}

		for _, r := range trimmed {
			switch r {
			case '(', '[', '{':
				bracketDepth++
			case ')', ']', '}':
				bracketDepth--
			}
		}
		if bracketDepth < 0 {
			return nil, &ParseError{Reason: "unbalanced closing bracket"}
		}

		// logical line continues over open brackets, backslash joins and
		// unterminated triple-quoted strings
		if strings.HasSuffix(pending, "\\") {
			pending = strings.TrimSuffix(pending, "\\")
			continue
		}
		if bracketDepth > 0 || state != pyCode {
			continue
		}

		line := pending
		havePending = false
		pending = ""

		for len(stack) > 1 && stack[len(stack)-1].indent >= pendingIndent {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node

		node := classifyPythonLine(line)
		if node == nil {
			continue
		}
		parent.Children = append(parent.Children, node)
		stack = append(stack, frame{indent: pendingIndent, node: node})
	}

	if havePending && bracketDepth > 0 {
		return nil, &ParseError{Reason: "unclosed bracket at end of file"}
	}
	if state != pyCode {
		return nil, &ParseError{Reason: "unterminated triple-quoted string"}
	}
	return &SyntaxTree{Language: LangPython, Root: root}, nil
}

// classifyPythonLine decides whether a logical line opens a block worth a
// tree node. Returns nil for plain statements.
func classifyPythonLine(line string) *Node {
	if m := pyDefRe.FindStringSubmatch(line); m != nil {
		return &Node{Kind: KindScope, Name: m[1]}
	}
	if m := pyClassRe.FindStringSubmatch(line); m != nil {
		return &Node{Kind: KindScope, Name: m[1]}
	}
	word := leadingWord(line)
	if pyTracked[word] {
		return &Node{Kind: KindTracked}
	}
	if pyTrackedColon[word] && strings.HasSuffix(line, ":") {
		return &Node{Kind: KindTracked}
	}
	if strings.HasSuffix(line, ":") && word == "with" {
		return &Node{Kind: KindBlock}
	}
	return nil
}

// cleanPythonLine drops comments and string contents so brackets inside
// literals never reach the depth counter. Carries triple-quote state across
// lines.
func cleanPythonLine(line string, state pyStringState) (string, pyStringState) {
	var out strings.Builder
	i := 0
	for i < len(line) {
		if state == pyTripleSingle || state == pyTripleDouble {
			closer := `'''`
			if state == pyTripleDouble {
				closer = `"""`
			}
			idx := strings.Index(line[i:], closer)
			if idx < 0 {
				return out.String(), state
			}
			i += idx + 3
			state = pyCode
			continue
		}

		c := line[i]
		switch {
		case c == '#':
			return out.String(), state
		case strings.HasPrefix(line[i:], `'''`):
			state = pyTripleSingle
			i += 3
		case strings.HasPrefix(line[i:], `"""`):
			state = pyTripleDouble
			i += 3
		case c == '\'' || c == '"':
			i = skipSimpleString(line, i)
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String(), state
}

// skipSimpleString advances past a single-line quoted string starting at i.
// Unterminated strings swallow the rest of the line; best effort.
func skipSimpleString(line string, i int) int {
	quote := line[i]
	i++
	for i < len(line) {
		if line[i] == '\\' {
			i += 2
			continue
		}
		if line[i] == quote {
			return i + 1
		}
		i++
	}
	return i
}

func indentWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w += 8
		default:
			return w
		}
	}
	return w
}

func leadingWord(line string) string {
	end := 0
	for end < len(line) {
		c := line[end]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' {
			end++
			continue
		}
		break
	}
	return line[:end]
}

// ---------------------------------------------------------------------------
// Brace languages: java, js, ts, cpp, rust, unknown
// ---------------------------------------------------------------------------

var braceTracked = map[string]bool{
	"for": true, "while": true, "if": true, "else": true, "do": true,
	"switch": true, "try": true, "catch": true, "finally": true,
	"match": true, "loop": true,
}

var (
	braceFnRe    = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	braceTypeRe  = regexp.MustCompile(`(?:class|interface|struct|enum|trait|impl)\s+([A-Za-z_][A-Za-z0-9_]*)`)
	braceNonName = map[string]bool{"return": true, "new": true, "throw": true, "await": true, "yield": true}
)

func parseBraces(source string, lang Language) (*SyntaxTree, error) {
	root := &Node{Kind: KindRoot}
	stack := []*Node{root}

	var header strings.Builder
	parenDepth := 0
	i := 0
	n := len(source)

	for i < n {
		c := source[i]
		switch {
		case c == '/' && i+1 < n && source[i+1] == '/':
			i = skipToNewline(source, i)
		case c == '/' && i+1 < n && source[i+1] == '*':
			end := strings.Index(source[i+2:], "*/")
			if end < 0 {
				i = n // unterminated block comment swallows the rest
			} else {
				i += end + 4
			}
		case c == '#':
			// preprocessor / attribute / shell-ish line
			i = skipToNewline(source, i)
		case c == '"' || c == '\'' || c == '`':
			i = skipBraceString(source, i)
		case c == '{':
			node := classifyBraceHeader(header.String())
			header.Reset()
			cur := stack[len(stack)-1]
			cur.Children = append(cur.Children, node)
			stack = append(stack, node)
			i++
		case c == '}':
			if len(stack) == 1 {
				return nil, &ParseError{Reason: "unexpected '}'"}
			}
			stack = stack[:len(stack)-1]
			header.Reset()
			i++
		case c == ';' && parenDepth == 0:
			header.Reset()
			i++
		default:
			if c == '(' {
				parenDepth++
			} else if c == ')' && parenDepth > 0 {
				parenDepth--
			}
			if c == '\n' {
				header.WriteByte(' ')
			} else {
				header.WriteByte(c)
			}
			i++
		}
	}

	if len(stack) != 1 {
		return nil, &ParseError{Reason: fmt.Sprintf("unbalanced braces: %d block(s) left open", len(stack)-1)}
	}
	return &SyntaxTree{Language: lang, Root: root}, nil
}

// classifyBraceHeader looks at the text between the previous statement
// boundary and a '{' and decides what kind of block it opens.
func classifyBraceHeader(header string) *Node {
	for _, w := range splitWords(header) {
		if braceTracked[w] {
			return &Node{Kind: KindTracked}
		}
	}
	if m := braceTypeRe.FindStringSubmatch(header); m != nil {
		return &Node{Kind: KindScope, Name: m[1]}
	}
	if ms := braceFnRe.FindAllStringSubmatch(header, -1); len(ms) > 0 {
		name := ms[len(ms)-1][1]
		if !braceNonName[name] {
			return &Node{Kind: KindScope, Name: name}
		}
	}
	if strings.Contains(header, "=>") || strings.Contains(header, "->") {
		return &Node{Kind: KindScope, Name: "(anonymous)"}
	}
	return &Node{Kind: KindBlock}
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	})
}

func skipToNewline(s string, i int) int {
	for i < len(s) && s[i] != '\n' {
		i++
	}
	return i
}

// skipBraceString handles ', " and ` literals. Backticks may span lines
// (JS template literals, Go raw strings); the others stop at end of line.
func skipBraceString(s string, i int) int {
	quote := s[i]
	i++
	for i < len(s) {
		if s[i] == '\\' && quote != '`' {
			i += 2
			continue
		}
		if s[i] == quote {
			return i + 1
		}
		if s[i] == '\n' && quote != '`' {
			return i + 1
		}
		i++
	}
	return i
}
