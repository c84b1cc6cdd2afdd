package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"mathmountain/internal/models"
)

// BackupVersion is written to every export
const BackupVersion = "1.0"

// BackupData is the export document for a history slot
type BackupData struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Slot       string          `json:"slot"`
	Sessions   json.RawMessage `json:"sessions"`
}

// BackupService handles history export and restore operations
type BackupService struct {
	history *HistoryService
	codec   *HistoryCodec
	log     zerolog.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(history *HistoryService, log zerolog.Logger) *BackupService {
	return &BackupService{
		history: history,
		codec:   NewHistoryCodec(),
		log:     log.With().Str("component", "backup").Logger(),
	}
}

// Export writes the stored history to a file
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	n, err := s.ExportToWriter(ctx, file)
	if err != nil {
		return err
	}

	s.log.Info().Str("path", outputPath).Int("sessions", n).Msg("History exported")
	return nil
}

// ExportToWriter encodes the stored history as an indented backup document
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) (int, error) {
	sessions, err := s.history.Load(ctx)
	if err != nil {
		return 0, err
	}

	raw, err := json.Marshal(sessions)
	if err != nil {
		return 0, fmt.Errorf("failed to encode sessions: %w", err)
	}

	backup := &BackupData{
		Version:    BackupVersion,
		ExportedAt: time.Now(),
		Slot:       s.history.Slot(),
		Sessions:   raw,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return 0, fmt.Errorf("failed to encode backup: %w", err)
	}
	return len(sessions), nil
}

// Import restores history from a backup file. With replace the stored history is
// overwritten; otherwise the backup is merged into it.
func (s *BackupService) Import(ctx context.Context, inputPath string, replace bool) (int, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	n, err := s.ImportFromReader(ctx, file, replace)
	if err != nil {
		return 0, err
	}

	s.log.Info().Str("path", inputPath).Int("sessions", n).Bool("replace", replace).Msg("History imported")
	return n, nil
}

// ImportFromReader restores history from a backup document. Unlike Load, a malformed
// document is an error and nothing is written.
func (s *BackupService) ImportFromReader(ctx context.Context, r io.Reader, replace bool) (int, error) {
	backup, incoming, err := s.decode(r)
	if err != nil {
		return 0, err
	}

	s.log.Debug().
		Str("version", backup.Version).
		Time("exported_at", backup.ExportedAt).
		Int("sessions", len(incoming)).
		Msg("Backup decoded")

	if !replace {
		current, err := s.history.Load(ctx)
		if err != nil {
			return 0, err
		}
		incoming = mergeSessions(current, incoming)
	}

	if err := s.history.Replace(ctx, incoming); err != nil {
		return 0, fmt.Errorf("failed to import sessions: %w", err)
	}
	return len(s.history.List()), nil
}

func (s *BackupService) decode(r io.Reader) (*BackupData, []models.Session, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return nil, nil, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return nil, nil, fmt.Errorf("unsupported backup version %q", backup.Version)
	}
	if len(backup.Sessions) == 0 {
		return nil, nil, errors.New("backup has no sessions field")
	}

	sessions, err := s.codec.Decode(backup.Sessions)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid backup: %w", err)
	}
	return &backup, sessions, nil
}

// mergeSessions combines two histories newest first, keeping the first copy of each ID
func mergeSessions(current, incoming []models.Session) []models.Session {
	seen := make(map[int64]bool, len(current)+len(incoming))
	merged := make([]models.Session, 0, len(current)+len(incoming))
	for _, list := range [][]models.Session{current, incoming} {
		for _, session := range list {
			if seen[session.ID] {
				continue
			}
			seen[session.ID] = true
			merged = append(merged, session)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ID > merged[j].ID
	})
	return merged
}
