package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/riseshia/serdes/jsonschema"
)

func schemaCmd(args []string, stdout io.Writer, logger zerolog.Logger) int {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var schemaPath, record string
	fs.StringVar(&schemaPath, "schema", "", "record declaration file")
	fs.StringVar(&record, "record", "", "record to export (default: the declared root)")
	if err := fs.Parse(args); err != nil {
		logger.Error().Err(err).Msg("schema: bad arguments")
		return 2
	}
	_, s, err := loadSchema(schemaPath, record)
	if err != nil {
		logger.Error().Err(err).Msg("schema: load schema")
		return 2
	}
	b, err := jsonschema.Marshal(s, "  ")
	if err != nil {
		logger.Error().Err(err).Msg("schema: export")
		return 1
	}
	fmt.Fprintf(stdout, "%s\n", b)
	return 0
}
