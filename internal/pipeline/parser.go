package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dvloznov/finance-logs/internal/domain"
)

// imageMIMETypes maps supported image extensions to the MIME type sent with
// the inline payload.
var imageMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
}

// StatementParser turns one statement file into an ordered sequence of
// validated transactions via a single extraction call.
type StatementParser struct {
	extractor Extractor
}

// NewStatementParser creates a parser backed by the given extractor.
func NewStatementParser(extractor Extractor) *StatementParser {
	return &StatementParser{extractor: extractor}
}

// ParseFile extracts transactions from the file at path. Text statements
// (.txt) are submitted as a UTF-8 blob; image statements as inline image
// data. Unrecognized extensions return ErrUnsupportedFileType with zero
// records. Extraction and decoding failures return a *ExtractionError scoped
// to this file.
func (p *StatementParser) ParseFile(ctx context.Context, path string) ([]domain.Transaction, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		triples [][]string
		err     error
	)
	switch {
	case ext == ".txt":
		var content []byte
		content, err = os.ReadFile(path)
		if err == nil {
			triples, err = p.extractor.ExtractText(ctx, string(content))
		}
	case imageMIMETypes[ext] != "":
		var content []byte
		content, err = os.ReadFile(path)
		if err == nil {
			triples, err = p.extractor.ExtractImage(ctx, content, imageMIMETypes[ext])
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
	}
	if err != nil {
		return nil, &ExtractionError{File: filepath.Base(path), Err: err}
	}

	records, err := materializeTriples(triples)
	if err != nil {
		return nil, &ExtractionError{File: filepath.Base(path), Err: err}
	}

	return records, nil
}

// materializeTriples builds Transactions from raw [date, description, amount]
// triples. The field order is load-bearing: records are constructed
// positionally. A triple with the wrong field count fails the whole file.
func materializeTriples(triples [][]string) ([]domain.Transaction, error) {
	records := make([]domain.Transaction, 0, len(triples))

	for i, triple := range triples {
		if len(triple) != 3 {
			return nil, fmt.Errorf("transaction %d has %d fields: %w", i, len(triple), ErrFieldCount)
		}

		record, err := domain.NewTransaction(triple[0], triple[1], triple[2])
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		records = append(records, record)
	}

	return records, nil
}
