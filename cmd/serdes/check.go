package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"

	serdes "github.com/riseshia/serdes"
	"github.com/riseshia/serdes/codec"
	"github.com/riseshia/serdes/schemafile"
	"github.com/riseshia/serdes/source"
)

func loadSchema(path, record string) (*schemafile.Catalog, *serdes.Schema, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("-schema is required")
	}
	cat, err := schemafile.Load(path, schemafile.WithKind(codec.RFC3339))
	if err != nil {
		return nil, nil, err
	}
	if record == "" {
		return cat, cat.Root(), nil
	}
	s, err := cat.Lookup(record)
	if err != nil {
		return nil, nil, err
	}
	return cat, s, nil
}

// checkFile decodes the document at path into an instance of s. An empty
// format picks one from the file extension.
func checkFile(ctx context.Context, s *serdes.Schema, path, format string) (*serdes.Instance, error) {
	f := source.FormatOf(path)
	if format != "" {
		var err error
		if f, err = source.ParseFormat(format); err != nil {
			return nil, err
		}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return codec.For(f, s, codec.RejectDuplicateKeys()).Decode(ctx, b)
}

func logFailure(logger zerolog.Logger, path string, err error) {
	ev := logger.Error().Str("file", path)
	if e, ok := serdes.AsError(err); ok {
		ev = ev.Str("code", e.Code)
		if e.Record != "" {
			ev = ev.Str("record", e.Record)
		}
		if e.Field != "" {
			ev = ev.Str("field", e.Field)
		}
		if e.Path != "" {
			ev = ev.Str("path", e.Path)
		}
	}
	ev.Msg(err.Error())
}

// dump logs the projected instance. Projection failures are logged and
// returned.
func dump(logger zerolog.Logger, path string, in *serdes.Instance) error {
	m, err := in.Project()
	if err != nil {
		logFailure(logger, path, err)
		return err
	}
	logger.Info().Str("file", path).Msg(spew.Sdump(m.Plain()))
	return nil
}

func checkCmd(args []string, stdout io.Writer, logger zerolog.Logger) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var schemaPath, record, format, out string
	var verbose bool
	fs.StringVar(&schemaPath, "schema", "", "record declaration file")
	fs.StringVar(&record, "record", "", "record to check against (default: the declared root)")
	fs.StringVar(&format, "format", "", "input format json|yaml (default: by extension)")
	fs.StringVar(&out, "o", "", "print each valid document re-encoded as json|yaml")
	fs.BoolVar(&verbose, "v", false, "dump decoded values")
	if err := fs.Parse(args); err != nil {
		logger.Error().Err(err).Msg("check: bad arguments")
		return 2
	}
	if fs.NArg() == 0 {
		logger.Error().Msg("check: no documents given")
		return 2
	}
	var outFormat source.Format
	if out != "" {
		f, err := source.ParseFormat(out)
		if err != nil {
			logger.Error().Err(err).Msg("check: bad -o")
			return 2
		}
		outFormat = f
	}
	_, s, err := loadSchema(schemaPath, record)
	if err != nil {
		logger.Error().Err(err).Msg("check: load schema")
		return 2
	}

	ctx := context.Background()
	status := 0
	for _, path := range fs.Args() {
		in, err := checkFile(ctx, s, path, format)
		if err != nil {
			logFailure(logger, path, err)
			status = 1
			continue
		}
		logger.Info().Str("file", path).Str("record", s.Name()).Msg("ok")
		if verbose {
			if err := dump(logger, path, in); err != nil {
				status = 1
				continue
			}
		}
		if out == "" {
			continue
		}
		b, err := codec.For(outFormat, s, codec.WithIndent("  ")).Encode(ctx, in)
		if err != nil {
			logFailure(logger, path, err)
			status = 1
			continue
		}
		if outFormat == source.JSON {
			b = append(b, '\n')
		}
		if _, err := stdout.Write(b); err != nil {
			logger.Error().Err(err).Msg("check: write output")
			return 1
		}
	}
	return status
}
