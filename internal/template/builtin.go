package template

// Built-in starter layouts for common languages, in the same
// structure-text format as saved templates.
var builtins = map[string]string{
	"python": `src/__init__.py
src/main.py
.gitignore
requirements.txt
README.md
`,
	"rust": `src/main.rs
Cargo.toml
.gitignore
README.md
`,
	"web": `src/index.js
src/style.css
public/index.html
.gitignore
package.json
README.md
`,
}

// aliases maps alternate language spellings onto builtins keys.
var aliases = map[string]string{
	"py": "python",
	"rs": "rust",
	"js": "web",
	"ts": "web",
}

// Builtin returns the built-in structure text for a language preset.
func Builtin(lang string) (string, bool) {
	if canonical, ok := aliases[lang]; ok {
		lang = canonical
	}
	text, ok := builtins[lang]
	return text, ok
}

// Builtins lists the canonical preset names, for help and error text.
func Builtins() []string {
	return []string{"python", "rust", "web"}
}
