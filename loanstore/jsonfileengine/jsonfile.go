package jsonfileengine

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore/memoryengine"
)

const (
	tempFilePattern        = ".loans-*.tmp"
	filePermissions        = 0o600
	logMsgFileLoaded       = "loan file loaded"
	logMsgFileWritten      = "loan file written"
	logMsgFileWriteFailed  = "writing loan file failed, reloading last good state"
	logMsgRemoveTempFailed = "failed to remove temporary loan file"
	logAttrPath            = "path"
	logAttrLoanCount       = "loan_count"
	logAttrError           = "error"
)

// Logger interface for file operations and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// FileEngine is a Loan Store persisted to a JSON file.
type FileEngine struct {
	mu     sync.Mutex
	path   string
	mem    *memoryengine.MemoryEngine
	logger Logger
}

// Option defines a functional option for configuring FileEngine.
type Option func(*FileEngine) error

// WithLogger sets the logger for the FileEngine.
func WithLogger(logger Logger) Option {
	return func(fe *FileEngine) error {
		fe.logger = logger
		return nil
	}
}

// NewFileEngine opens the loan file at path, creating an empty store if the file does not exist yet.
func NewFileEngine(path string, options ...Option) (*FileEngine, error) {
	if path == "" {
		return nil, loanstore.ErrEmptyFilePathSupplied
	}

	fe := &FileEngine{path: path}

	for _, option := range options {
		if err := option(fe); err != nil {
			return nil, err
		}
	}

	mem, loadErr := fe.load()
	if loadErr != nil {
		return nil, loadErr
	}

	fe.mem = mem

	return fe, nil
}

// Insert stores a new loan and writes the file.
func (fe *FileEngine) Insert(ctx context.Context, loan core.Loan) (core.Loan, error) {
	fe.mu.Lock()
	defer fe.mu.Unlock()

	stored, err := fe.mem.Insert(ctx, loan)
	if err != nil {
		return core.Loan{}, err
	}

	if persistErr := fe.persist(ctx); persistErr != nil {
		return core.Loan{}, persistErr
	}

	return stored, nil
}

// Update replaces a stored loan with optimistic version checking and writes the file.
func (fe *FileEngine) Update(ctx context.Context, loan core.Loan) (core.Loan, error) {
	fe.mu.Lock()
	defer fe.mu.Unlock()

	stored, err := fe.mem.Update(ctx, loan)
	if err != nil {
		return core.Loan{}, err
	}

	if persistErr := fe.persist(ctx); persistErr != nil {
		return core.Loan{}, persistErr
	}

	return stored, nil
}

// Get returns the loan with the given id.
func (fe *FileEngine) Get(ctx context.Context, id uuid.UUID) (core.Loan, error) {
	return fe.current().Get(ctx, id)
}

// All returns every stored loan in insertion order.
func (fe *FileEngine) All(ctx context.Context) (core.Loans, error) {
	return fe.current().All(ctx)
}

// Find returns the loans matching the filter in insertion order.
func (fe *FileEngine) Find(ctx context.Context, filter loanstore.Filter) (core.Loans, error) {
	return fe.current().Find(ctx, filter)
}

// Discard removes a loan and writes the file. Only rollbacks of a failed creation use it.
func (fe *FileEngine) Discard(ctx context.Context, id uuid.UUID) error {
	fe.mu.Lock()
	defer fe.mu.Unlock()

	if err := fe.mem.Discard(ctx, id); err != nil {
		return err
	}

	return fe.persist(ctx)
}

func (fe *FileEngine) current() *memoryengine.MemoryEngine {
	fe.mu.Lock()
	defer fe.mu.Unlock()

	return fe.mem
}

func (fe *FileEngine) load() (*memoryengine.MemoryEngine, error) {
	memOptions := make([]memoryengine.Option, 0, 2)
	if fe.logger != nil {
		memOptions = append(memOptions, memoryengine.WithLogger(fe.logger))
	}

	data, readErr := os.ReadFile(fe.path)
	if errors.Is(readErr, fs.ErrNotExist) {
		return memoryengine.NewMemoryEngine(memOptions...)
	}

	if readErr != nil {
		return nil, errors.Join(loanstore.ErrReadingFileFailed, readErr)
	}

	var doc fileDocument
	if len(data) > 0 {
		if err := jsoniter.ConfigFastest.Unmarshal(data, &doc); err != nil {
			return nil, errors.Join(loanstore.ErrDecodingLoanFailed, err)
		}
	}

	loans := make(core.Loans, 0, len(doc.Loans))
	for _, record := range doc.Loans {
		loan, err := record.toLoan()
		if err != nil {
			return nil, errors.Join(loanstore.ErrDecodingLoanFailed, err)
		}

		loans = append(loans, loan)
	}

	memOptions = append(memOptions, memoryengine.WithLoans(loans...))

	mem, err := memoryengine.NewMemoryEngine(memOptions...)
	if err != nil {
		return nil, err
	}

	if fe.logger != nil {
		fe.logger.Info(logMsgFileLoaded, logAttrPath, fe.path, logAttrLoanCount, len(loans))
	}

	return mem, nil
}

// persist must be called with fe.mu held.
func (fe *FileEngine) persist(ctx context.Context) error {
	loans, err := fe.mem.All(ctx)
	if err != nil {
		return err
	}

	writeErr := fe.writeFile(loans)
	if writeErr == nil {
		if fe.logger != nil {
			fe.logger.Debug(logMsgFileWritten, logAttrPath, fe.path, logAttrLoanCount, len(loans))
		}

		return nil
	}

	if fe.logger != nil {
		fe.logger.Error(logMsgFileWriteFailed, logAttrPath, fe.path, logAttrError, writeErr.Error())
	}

	if mem, reloadErr := fe.load(); reloadErr == nil {
		fe.mem = mem
	} else {
		writeErr = errors.Join(writeErr, reloadErr)
	}

	return writeErr
}

func (fe *FileEngine) writeFile(loans core.Loans) error {
	doc := fileDocument{
		FormatVersion: fileFormatVersion,
		Loans:         make([]loanRecord, 0, len(loans)),
	}

	for _, loan := range loans {
		doc.Loans = append(doc.Loans, recordFromLoan(loan))
	}

	data, marshalErr := jsoniter.ConfigFastest.MarshalIndent(doc, "", "  ")
	if marshalErr != nil {
		return errors.Join(loanstore.ErrWritingFileFailed, marshalErr)
	}

	tmp, createErr := os.CreateTemp(filepath.Dir(fe.path), tempFilePattern)
	if createErr != nil {
		return errors.Join(loanstore.ErrWritingFileFailed, createErr)
	}

	tmpName := tmp.Name()
	cleanup := func() {
		if removeErr := os.Remove(tmpName); removeErr != nil && fe.logger != nil {
			fe.logger.Warn(logMsgRemoveTempFailed, logAttrPath, tmpName, logAttrError, removeErr.Error())
		}
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Join(loanstore.ErrWritingFileFailed, err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Join(loanstore.ErrWritingFileFailed, err)
	}

	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Join(loanstore.ErrWritingFileFailed, err)
	}

	if err := os.Chmod(tmpName, filePermissions); err != nil {
		cleanup()
		return errors.Join(loanstore.ErrWritingFileFailed, err)
	}

	if err := os.Rename(tmpName, fe.path); err != nil {
		cleanup()
		return errors.Join(loanstore.ErrWritingFileFailed, err)
	}

	return nil
}
