package ignore

// DefaultPatterns are the built-in global excludes applied unless
// explicitly overridden, per spec.md §4.C ("built-in global exclude lists:
// version-control dirs, node_modules, common lockfiles and binaries").
// Generalised from a single gitignore-library compile into the project's own rule
// compiler.
var DefaultPatterns = []string{
	".git/",
	"node_modules/",
	"dist/",
	"build/",
	"coverage/",
	"__pycache__/",
	".next/",
	"target/",
	"vendor/",
	".copytree/",

	".env",
	".env.*",

	"*.pem",
	"*.key",
	"*.p12",
	"*.pfx",

	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"Gemfile.lock",
	"Cargo.lock",
	"go.sum",
	"poetry.lock",

	"*.pyc",
	"*.pyo",
	"*.class",
	"*.o",
	"*.obj",
	"*.exe",
	"*.dll",
	"*.so",
	"*.dylib",

	".DS_Store",
	"Thumbs.db",
	".idea/",
	".vscode/",
	"*.swp",
	"*.swo",
}

// DefaultRuleSet compiles DefaultPatterns into a root-level RuleSet. Because
// these are compile-time-constant, valid patterns, this never errors.
func DefaultRuleSet(caseSensitive bool) *RuleSet {
	return ParseLines(DefaultPatterns, "", KindGitignore, caseSensitive)
}
