package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/jsonsql/internal/ir"
)

// Format names a dataset encoding.
type Format string

const (
	FormatAuto   Format = ""
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatCUE    Format = "cue"
	FormatSQLite Format = "sqlite"
)

// ErrUnknownFormat is returned when no format is given and the file
// extension does not name one.
var ErrUnknownFormat = errors.New("unknown dataset format")

// ParseFormat validates a format name. The empty string selects detection
// by extension.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatAuto, FormatJSON, FormatYAML, FormatCUE, FormatSQLite:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (must be json, yaml, cue or sqlite)", ErrUnknownFormat, s)
	}
}

// Options controls how a dataset file is read.
type Options struct {
	// Format overrides detection by extension.
	Format Format

	// Table names the table to read from a SQLite database.
	Table string

	// Logger receives debug output. Nil discards.
	Logger *slog.Logger
}

// Load reads the dataset at path.
func Load(ctx context.Context, path string, opts Options) (*ir.Dataset, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	comp, base := detectCompression(path)
	format := opts.Format
	if format == FormatAuto {
		format = detectFormat(base)
		if format == FormatAuto {
			return nil, fmt.Errorf("%w: cannot infer from %q (use --source-format)", ErrUnknownFormat, filepath.Base(path))
		}
	}

	logger.Debug("loading dataset",
		"path", path,
		"format", string(format),
		"compression", string(comp),
	)

	var (
		records []ir.Record
		err     error
	)
	if format == FormatSQLite {
		if comp != compressionNone {
			return nil, fmt.Errorf("sqlite databases cannot be read compressed: %s", path)
		}
		records, err = loadSQLite(ctx, path, opts.Table)
	} else {
		var data []byte
		data, err = readFile(path, comp)
		if err != nil {
			return nil, err
		}
		records, err = decode(format, path, data)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s dataset %s: %w", format, path, err)
	}

	logger.Debug("dataset loaded", "path", path, "records", len(records))
	return ir.NewDataset(records), nil
}

func decode(format Format, path string, data []byte) ([]ir.Record, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	case FormatCUE:
		return DecodeCUE(filepath.Base(path), data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func detectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".cue":
		return FormatCUE
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatAuto
	}
}

// fieldError reports a value that cannot be stored in a record.
func fieldError(index int, field, problem string) error {
	return fmt.Errorf("record %d field %q: %s", index, field, problem)
}
