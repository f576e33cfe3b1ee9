// Command intellenum-lint reports reflection that constructs or modifies
// generated value types. It runs standalone or as a vet tool:
//
//	go vet -vettool=$(which intellenum-lint) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"intellenum-generator/internal/lint"
)

func main() {
	singlechecker.Main(lint.Analyzer)
}
