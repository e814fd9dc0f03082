package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDepth(t *testing.T, source string, lang Language) NestingFinding {
	t.Helper()
	tree, err := Parse(source, lang)
	require.NoError(t, err)
	return ScoreTree(tree)
}

func TestPythonNestedLoops(t *testing.T) {
	src := "for x in range(10):\n" +
		"  for y in range(10):\n" +
		"    pass\n"
	finding := mustDepth(t, src, LangPython)

	assert.Equal(t, 2, finding.MaxDepth)
	assert.Equal(t, 60, ScoreFromDepth(finding.MaxDepth, DefaultPenaltyPerLevel))
}

func TestPythonFlatScript(t *testing.T) {
	finding := mustDepth(t, "print('hi')\n", LangPython)

	assert.Equal(t, 0, finding.MaxDepth)
	assert.Equal(t, 100, ScoreFromDepth(finding.MaxDepth, DefaultPenaltyPerLevel))
}

func TestPythonSyntaxErrorUnclosedParen(t *testing.T) {
	_, err := Parse("def f(:\n  pass\n", LangPython)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.NotEmpty(t, perr.Reason)
}

func TestPythonStrayClosingBracket(t *testing.T) {
	_, err := Parse("x = 1)\n", LangPython)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
}

func TestPythonUnterminatedTripleQuote(t *testing.T) {
	_, err := Parse("s = '''hello\nworld\n", LangPython)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestPythonScopeAttribution(t *testing.T) {
	src := "def outer():\n" +
		"    for i in range(3):\n" +
		"        while i:\n" +
		"            i -= 1\n" +
		"\n" +
		"x = 1\n" +
		"if x:\n" +
		"    print(x)\n"
	finding := mustDepth(t, src, LangPython)

	assert.Equal(t, 2, finding.MaxDepth)
	require.Len(t, finding.Scopes, 2)
	assert.Equal(t, ScopeDepth{Name: "(module)", Depth: 1}, finding.Scopes[0])
	assert.Equal(t, ScopeDepth{Name: "outer", Depth: 2}, finding.Scopes[1])
}

func TestPythonBracketsInsideStringsIgnored(t *testing.T) {
	src := "s = '((('\n" +
		"d = \"}}}\"\n" +
		"if s:\n" +
		"    pass\n"
	finding := mustDepth(t, src, LangPython)
	assert.Equal(t, 1, finding.MaxDepth)
}

func TestPythonImplicitLineJoin(t *testing.T) {
	// the condition spans three physical lines inside one bracket pair
	src := "if any(\n" +
		"    x > 0\n" +
		"    for x in xs\n" +
		"):\n" +
		"    pass\n"
	finding := mustDepth(t, src, LangPython)
	assert.Equal(t, 1, finding.MaxDepth, "continuation lines must not double-count the for")
}

func TestPythonMatchKeywordVsIdentifier(t *testing.T) {
	blockSrc := "match command:\n" +
		"    case 'go':\n" +
		"        pass\n"
	assert.Equal(t, 2, mustDepth(t, blockSrc, LangPython).MaxDepth)

	identSrc := "match = find(pattern)\n"
	assert.Equal(t, 0, mustDepth(t, identSrc, LangPython).MaxDepth)
}

func TestPythonWithBlockAddsNoDepth(t *testing.T) {
	src := "with open(path) as f:\n" +
		"    for line in f:\n" +
		"        pass\n"
	assert.Equal(t, 1, mustDepth(t, src, LangPython).MaxDepth)
}

func TestGoNestedControlFlow(t *testing.T) {
	src := `package main

func main() {
	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			println(i)
		}
	}
}
`
	finding := mustDepth(t, src, LangGo)

	assert.Equal(t, 2, finding.MaxDepth)
	require.Len(t, finding.Scopes, 2)
	assert.Equal(t, ScopeDepth{Name: "main", Depth: 2}, finding.Scopes[1])
}

func TestGoRangeAndSwitchTracked(t *testing.T) {
	src := `package main

func handle(items []int) {
	for _, it := range items {
		switch it {
		case 0:
			println("zero")
		}
	}
}
`
	assert.Equal(t, 2, mustDepth(t, src, LangGo).MaxDepth)
}

func TestGoSyntaxError(t *testing.T) {
	_, err := Parse("package main\n\nfunc broken( {\n", LangGo)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestJavaScriptNested(t *testing.T) {
	src := `function hello(name) {
  for (let i = 0; i < 3; i++) {
    if (i > 1) {
      console.log(name);
    }
  }
}
`
	finding := mustDepth(t, src, LangJS)

	assert.Equal(t, 2, finding.MaxDepth)
	require.Len(t, finding.Scopes, 2)
	assert.Equal(t, "hello", finding.Scopes[1].Name)
}

func TestJavaClassMethodTryCatch(t *testing.T) {
	src := `public class Foo {
    public void bar() {
        while (true) {
            try {
                baz();
            } catch (Exception e) {
            }
        }
    }
}
`
	finding := mustDepth(t, src, LangJava)

	assert.Equal(t, 2, finding.MaxDepth)
	require.Len(t, finding.Scopes, 3)
	assert.Equal(t, "Foo", finding.Scopes[1].Name)
	assert.Equal(t, "bar", finding.Scopes[2].Name)
	assert.Equal(t, 2, finding.Scopes[2].Depth)
}

func TestBracesStringContentIgnored(t *testing.T) {
	src := "const s = \"{{{\";\n" +
		"if (x) { y(); }\n"
	assert.Equal(t, 1, mustDepth(t, src, LangJS).MaxDepth)
}

func TestBracesTemplateLiteralSpansLines(t *testing.T) {
	src := "const q = `{\n  not real: {\n}`;\n" +
		"if (q) { run(); }\n"
	assert.Equal(t, 1, mustDepth(t, src, LangTS).MaxDepth)
}

func TestBracesArrowFunctionIsScope(t *testing.T) {
	src := "const f = (a) => {\n" +
		"  if (a) { return 1; }\n" +
		"};\n"
	finding := mustDepth(t, src, LangJS)
	require.GreaterOrEqual(t, len(finding.Scopes), 2)
	assert.Equal(t, 1, finding.MaxDepth)
}

func TestBracesUnbalanced(t *testing.T) {
	_, err := Parse("function f() {\n", LangJS)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)

	_, err = Parse("}\n", LangJava)
	require.ErrorAs(t, err, &perr)
}

func TestRustLoopTracked(t *testing.T) {
	src := `fn main() {
    loop {
        if done() {
            break;
        }
    }
}
`
	assert.Equal(t, 2, mustDepth(t, src, LangRust).MaxDepth)
}

func TestCppCommentsIgnored(t *testing.T) {
	src := `// if (fake) {
/* while (also_fake) { */
int main() {
    for (int i = 0; i < 2; i++) {
        sum += i;
    }
    return 0;
}
`
	assert.Equal(t, 1, mustDepth(t, src, LangCPP).MaxDepth)
}

func TestUnknownLanguageFallsBackToBraces(t *testing.T) {
	src := "if (x) { y(); }\n"
	finding := mustDepth(t, src, LangUnknown)
	assert.Equal(t, 1, finding.MaxDepth)
}
