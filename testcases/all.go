package testcases

// All contains all test cases, grouped by category.
// The category name is used as a prefix in fixture filenames.
var All = map[string][]TestCase{
	"tap":      tapCases,
	"line":     lineCases,
	"scribble": scribbleCases,
	"multi":    multiCases,
	"edge":     edgeCases,
	"large":    largeCases,
}
