package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dvloznov/finance-logs/internal/domain"
	"github.com/dvloznov/finance-logs/internal/logger"
)

// ExpenseUploader is the boundary to the external ledger service. One call
// per normalized record.
type ExpenseUploader interface {
	AddExpenseLog(ctx context.Context, log domain.ExpenseLog) error
}

// ArchiveBackup optionally mirrors archived statement files to remote
// storage.
type ArchiveBackup interface {
	BackupFile(ctx context.Context, path string) error
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	InputDir   string
	ArchiveDir string

	// Extensions is the supported extension set used for discovery, with
	// leading dots (".txt", ".png", ...).
	Extensions []string

	// RequireFullSuccess makes Run return an error when any file failed,
	// after the whole batch has been attempted.
	RequireFullSuccess bool

	// DryRun parses and normalizes but skips upload and archiving.
	DryRun bool

	// Backup, when set, mirrors each archived file to remote storage.
	// Backup failures are logged, not fatal.
	Backup ArchiveBackup
}

// Runner drives the end-to-end batch: discovery, per-file extraction,
// normalization, upload, and archiving. Files are processed strictly
// sequentially, in discovery order.
type Runner struct {
	parser     *StatementParser
	normalizer *Normalizer
	uploader   ExpenseUploader
	opts       RunnerOptions
}

// NewRunner wires a Runner from its collaborators.
func NewRunner(parser *StatementParser, normalizer *Normalizer, uploader ExpenseUploader, opts RunnerOptions) *Runner {
	return &Runner{
		parser:     parser,
		normalizer: normalizer,
		uploader:   uploader,
		opts:       opts,
	}
}

// Summary is the aggregate accounting for one run.
type Summary struct {
	RunID          string
	FilesProcessed int
	FilesSkipped   int
	FilesFailed    int
	Uploaded       int // total records forwarded to the ledger
	Outcomes       []domain.Outcome
}

// Run executes the batch. It fails immediately with ErrNoInputFiles when
// discovery finds nothing; otherwise every discovered file is attempted, each
// failure is confined to its own file, and an aggregate error is returned at
// the end if any file failed and RequireFullSuccess is set.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	log := logger.FromContext(ctx)

	summary := Summary{RunID: uuid.NewString()}
	log = log.With().Str("run_id", summary.RunID).Logger()
	ctx = logger.WithContext(ctx, log)

	files, err := r.discoverFiles()
	if err != nil {
		return summary, err
	}
	if len(files) == 0 {
		return summary, fmt.Errorf("%w: %s", ErrNoInputFiles, r.opts.InputDir)
	}

	log.Info().Int("files", len(files)).Str("input_dir", r.opts.InputDir).Msg("Starting statement batch")

	for _, file := range files {
		outcome := r.processFile(ctx, file)
		summary.Outcomes = append(summary.Outcomes, outcome)
		summary.Uploaded += outcome.Uploaded

		switch outcome.Status {
		case domain.StatusProcessed:
			summary.FilesProcessed++
			log.Info().
				Str("file", outcome.Filename).
				Int("transactions", len(outcome.Transactions)).
				Msg("File processed and archived")
		case domain.StatusSkipped:
			summary.FilesSkipped++
			log.Warn().Str("file", outcome.Filename).Msg("Unsupported file type, skipping")
		case domain.StatusFailed:
			summary.FilesFailed++
			log.Error().Err(outcome.Err).Str("file", outcome.Filename).Msg("File processing failed")
		}
	}

	log.Info().
		Int("processed", summary.FilesProcessed).
		Int("skipped", summary.FilesSkipped).
		Int("failed", summary.FilesFailed).
		Int("uploaded", summary.Uploaded).
		Msg("Statement batch finished")

	if summary.FilesFailed > 0 && r.opts.RequireFullSuccess {
		return summary, fmt.Errorf("%d of %d files failed", summary.FilesFailed, len(files))
	}

	return summary, nil
}

// discoverFiles lists candidate files in the input directory matching the
// supported extension set. Order follows the extension list, then the
// directory listing within each extension.
func (r *Runner) discoverFiles() ([]string, error) {
	var files []string
	for _, ext := range r.opts.Extensions {
		matches, err := filepath.Glob(filepath.Join(r.opts.InputDir, "*"+ext))
		if err != nil {
			return nil, fmt.Errorf("listing %s files: %w", ext, err)
		}
		files = append(files, matches...)
	}
	return files, nil
}

// processFile runs one file through extract → normalize → upload → archive
// and reports the outcome. Every failure is captured in the outcome rather
// than propagated, so a single bad file cannot take down the batch.
func (r *Runner) processFile(ctx context.Context, path string) domain.Outcome {
	log := logger.FromContext(ctx)
	filename := filepath.Base(path)

	log.Info().Str("file", filename).Msg("Processing file")

	records, err := r.parser.ParseFile(ctx, path)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFileType) {
			return domain.Outcome{Filename: filename, Status: domain.StatusSkipped}
		}
		return domain.Outcome{Filename: filename, Status: domain.StatusFailed, Err: err}
	}

	if len(records) == 0 {
		log.Warn().Str("file", filename).Msg("No transactions found in file")
	}

	records = r.normalizer.Normalize(records)

	outcome := domain.Outcome{Filename: filename, Transactions: records}

	if r.opts.DryRun {
		outcome.Status = domain.StatusProcessed
		return outcome
	}

	for _, record := range records {
		if err := r.uploader.AddExpenseLog(ctx, record.ToExpenseLog()); err != nil {
			outcome.Status = domain.StatusFailed
			outcome.Err = &UploadError{File: filename, Description: record.Description, Err: err}
			return outcome
		}
		outcome.Uploaded++
	}

	// Archive only after every record for this file has been forwarded.
	archived, err := r.archiveFile(ctx, path)
	if err != nil {
		outcome.Status = domain.StatusFailed
		outcome.Err = err
		return outcome
	}

	if r.opts.Backup != nil {
		if err := r.opts.Backup.BackupFile(ctx, archived); err != nil {
			log.Warn().Err(err).Str("file", filename).Msg("Archive backup failed")
		}
	}

	outcome.Status = domain.StatusProcessed
	return outcome
}

// archiveFile moves a fully processed file into the archive directory,
// preserving its name. A name collision overwrites the archived copy.
func (r *Runner) archiveFile(ctx context.Context, path string) (string, error) {
	log := logger.FromContext(ctx)

	destination := filepath.Join(r.opts.ArchiveDir, filepath.Base(path))
	log.Info().Str("from", path).Str("to", destination).Msg("Archiving file")

	if err := os.MkdirAll(r.opts.ArchiveDir, 0o755); err != nil {
		return "", fmt.Errorf("creating archive dir: %w", err)
	}

	if err := moveFile(path, destination); err != nil {
		return "", fmt.Errorf("archiving %s: %w", filepath.Base(path), err)
	}

	return destination, nil
}

// moveFile renames src to dst, falling back to copy+remove when the rename
// crosses filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}
