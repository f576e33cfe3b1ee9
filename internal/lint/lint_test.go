package lint

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"
)

// TestAnalyzer runs the analyzer over the GOPATH-style packages in
// testdata/src. "// want" comments in the fixtures hold the expected reports
// and facts; orders only sees the facts shop exports.
func TestAnalyzer(t *testing.T) {
	t.Parallel()

	analysistest.Run(t, analysistest.TestData(), Analyzer, "shop", "orders")
}
