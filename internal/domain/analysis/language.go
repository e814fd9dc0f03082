package analysis

import (
	"path/filepath"
	"strings"
)

// Language enum
type Language string

const (
	LangPython  Language = "py"
	LangJava    Language = "java"
	LangJS      Language = "js"
	LangCPP     Language = "cpp"
	LangTS      Language = "ts"
	LangGo      Language = "go"
	LangRust    Language = "rust"
	LangUnknown Language = "unknown"
)

// LanguageForPath menentukan bahasa dari ekstensi file.
// Ekstensi yang tidak dikenal jatuh ke LangUnknown (brace tokenizer).
func LanguageForPath(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return LangPython
	case ".java":
		return LangJava
	case ".js", ".jsx", ".mjs":
		return LangJS
	case ".cpp", ".cc", ".cxx", ".hpp", ".h":
		return LangCPP
	case ".ts", ".tsx":
		return LangTS
	case ".go":
		return LangGo
	case ".rs":
		return LangRust
	default:
		return LangUnknown
	}
}
