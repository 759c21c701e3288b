package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/phrazzld/algodeck/internal/platform/logger"
	"github.com/phrazzld/algodeck/internal/store"
)

// Validation errors for backup payloads. The missing-array messages are
// part of the user-visible contract: a rejected import names exactly what
// the payload lacked.
var (
	ErrMissingItems     = errors.New("invalid backup: missing items array")
	ErrMissingSolutions = errors.New("invalid backup: missing solutions array")
	ErrMissingRevisions = errors.New("invalid backup: missing revision_logs array")
	ErrBadVersion       = errors.New("invalid backup: unsupported version")
)

// ImportStats summarizes a successful import.
type ImportStats struct {
	Items     int
	Solutions int
	Revisions int
	Notebooks int
}

// String renders the stats the way the import result message shows them.
func (s ImportStats) String() string {
	return fmt.Sprintf("imported %d items, %d solutions, %d revision logs",
		s.Items, s.Solutions, s.Revisions)
}

// Service exports the deck to a JSON bundle and restores bundles through
// a transactional replace-all import.
type Service struct {
	items     store.ItemStore
	solutions store.SolutionStore
	notebooks store.NotebookStore
	logs      store.RevisionLogStore
	restorer  store.Restorer
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewService creates a backup service over the given stores.
func NewService(
	items store.ItemStore,
	solutions store.SolutionStore,
	notebooks store.NotebookStore,
	logs store.RevisionLogStore,
	restorer store.Restorer,
	log *slog.Logger,
) *Service {
	if items == nil {
		panic("items cannot be nil")
	}
	if solutions == nil {
		panic("solutions cannot be nil")
	}
	if notebooks == nil {
		panic("notebooks cannot be nil")
	}
	if logs == nil {
		panic("logs cannot be nil")
	}
	if restorer == nil {
		panic("restorer cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		items:     items,
		solutions: solutions,
		notebooks: notebooks,
		logs:      logs,
		restorer:  restorer,
		validate:  validator.New(),
		logger:    log.With(slog.String("component", "backup_service")),
	}
}

// ExportBundle gathers the full deck into a bundle.
func (s *Service) ExportBundle(ctx context.Context) (*Bundle, error) {
	items, err := s.items.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect items: %w", err)
	}
	solutions, err := s.solutions.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect solutions: %w", err)
	}
	revisions, err := s.logs.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect revision logs: %w", err)
	}
	notebooks, err := s.notebooks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect notebooks: %w", err)
	}

	itemRecs := make([]ItemRecord, 0, len(items))
	for _, it := range items {
		itemRecs = append(itemRecs, itemRecord(it))
	}
	solRecs := make([]SolutionRecord, 0, len(solutions))
	for _, sol := range solutions {
		solRecs = append(solRecs, solutionRecord(sol))
	}
	revRecs := make([]RevisionRecord, 0, len(revisions))
	for _, rev := range revisions {
		revRecs = append(revRecs, revisionRecord(rev))
	}
	nbRecs := make([]NotebookRecord, 0, len(notebooks))
	for _, nb := range notebooks {
		nbRecs = append(nbRecs, notebookRecord(nb))
	}

	return &Bundle{
		Version:    BundleVersion,
		ID:         uuid.NewString(),
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Items:      &itemRecs,
		Solutions:  &solRecs,
		Revisions:  &revRecs,
		Notebooks:  nbRecs,
	}, nil
}

// ExportFile writes the bundle as indented JSON into dir and returns the
// file path. The filename carries a timestamp so repeated exports never
// clobber each other.
func (s *Service) ExportFile(ctx context.Context, dir string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	bundle, err := s.ExportBundle(ctx)
	if err != nil {
		return "", err
	}
	raw, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal bundle: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	name := fmt.Sprintf("algodeck_backup_%s.json", time.Now().UTC().Format("2006-01-02_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write bundle: %w", err)
	}

	log.Info("backup exported",
		slog.String("path", path),
		slog.Int("items", len(*bundle.Items)))
	return path, nil
}

// ImportFile reads a bundle from path and replaces the deck with it.
func (s *Service) ImportFile(ctx context.Context, path string) (ImportStats, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ImportStats{}, fmt.Errorf("read bundle: %w", err)
	}
	return s.Import(ctx, raw)
}

// Import validates the whole payload shape before the destructive
// replace-all write begins; a malformed bundle never partially loads.
func (s *Service) Import(ctx context.Context, raw []byte) (ImportStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var bundle Bundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return ImportStats{}, fmt.Errorf("invalid backup: %w", err)
	}
	if err := s.validateBundle(&bundle); err != nil {
		return ImportStats{}, err
	}

	snap := store.Snapshot{}
	for _, rec := range bundle.Notebooks {
		snap.Notebooks = append(snap.Notebooks, rec.toDomain())
	}
	for _, rec := range *bundle.Items {
		snap.Items = append(snap.Items, rec.toDomain())
	}
	for _, rec := range *bundle.Solutions {
		snap.Solutions = append(snap.Solutions, rec.toDomain())
	}
	for _, rec := range *bundle.Revisions {
		snap.Revisions = append(snap.Revisions, rec.toDomain())
	}

	if err := s.restorer.ReplaceAll(ctx, snap); err != nil {
		return ImportStats{}, fmt.Errorf("import failed: %w", err)
	}

	stats := ImportStats{
		Items:     len(snap.Items),
		Solutions: len(snap.Solutions),
		Revisions: len(snap.Revisions),
		Notebooks: len(snap.Notebooks),
	}
	log.Info("backup imported",
		slog.Int("items", stats.Items),
		slog.Int("solutions", stats.Solutions),
		slog.Int("revisions", stats.Revisions))
	return stats, nil
}

func (s *Service) validateBundle(bundle *Bundle) error {
	if bundle.Version > BundleVersion {
		return fmt.Errorf("%w: %d", ErrBadVersion, bundle.Version)
	}
	if bundle.Items == nil {
		return ErrMissingItems
	}
	if bundle.Solutions == nil {
		return ErrMissingSolutions
	}
	if bundle.Revisions == nil {
		return ErrMissingRevisions
	}

	for i, rec := range *bundle.Items {
		if err := s.validate.Struct(rec); err != nil {
			return fmt.Errorf("invalid backup: item %d: %w", i, err)
		}
	}
	for i, rec := range *bundle.Solutions {
		if err := s.validate.Struct(rec); err != nil {
			return fmt.Errorf("invalid backup: solution %d: %w", i, err)
		}
	}
	for i, rec := range *bundle.Revisions {
		if err := s.validate.Struct(rec); err != nil {
			return fmt.Errorf("invalid backup: revision log %d: %w", i, err)
		}
	}
	for i, rec := range bundle.Notebooks {
		if err := s.validate.Struct(rec); err != nil {
			return fmt.Errorf("invalid backup: notebook %d: %w", i, err)
		}
	}
	return nil
}
