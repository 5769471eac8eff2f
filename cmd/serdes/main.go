// Command serdes checks documents against record declarations, exports
// declarations as JSON Schema and watches directories for changed documents.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `serdes CLI

Usage:
  serdes check  -schema decl.yaml [-record Name] [-format json|yaml] [-o json|yaml] [-v] doc...
  serdes schema -schema decl.yaml [-record Name]
  serdes watch  -schema decl.yaml [-record Name] dir

Environment:
  SERDES_LOG_LEVEL   zerolog level (default info)
  SERDES_LOG_FORMAT  console or json (default console)
  SERDES_LANG        message language, en or ja (default en)`)
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "serdes: %v\n", err)
		return 2
	}
	logger := newLogger(cfg, stderr)

	switch args[0] {
	case "check":
		return checkCmd(args[1:], stdout, logger)
	case "schema":
		return schemaCmd(args[1:], stdout, logger)
	case "watch":
		return watchCmd(args[1:], logger)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return 0
	}
	usage(stderr)
	return 2
}
