// Package golden loads and runs the YAML script suites under testdata/.
//
// Each suite file holds a list of cases. A case runs a script and states the
// exact printed output and, optionally, the diagnostic it must fail with:
//
//	- id: shadowing
//	  source: |
//	    var x = 1; { var x = 2; print x; } print x;
//	  output: |
//	    2
//	    1
//	- id: undefined
//	  source: x = 1;
//	  error:
//	    code: R0101
//	    message: Undefined variable `x`
//	    line: 1
//	    column: 1
package golden

// TestCase represents a single scripted case.
type TestCase struct {
	ID     string     `yaml:"id"`
	Source string     `yaml:"source"`
	Output string     `yaml:"output"`
	Error  *ErrorInfo `yaml:"error"`
	Skip   string     `yaml:"skip"` // reason, when the case is disabled
}

// ErrorInfo represents an expected diagnostic. Zero fields are not checked.
type ErrorInfo struct {
	Code    string `yaml:"code"`
	Message string `yaml:"message"`
	Line    int    `yaml:"line"`
	Column  int    `yaml:"column"`
	// Count is the number of syntax errors reported together.
	Count int `yaml:"count"`
}

// TestGroup represents all cases of one suite file.
type TestGroup struct {
	Name  string
	Path  string
	Cases []*TestCase
}

// TestResult represents the result of executing a case.
type TestResult struct {
	Passed     bool
	Output     string
	Error      error
	ErrorCode  string
	Message    string
	DurationMs float64
}
