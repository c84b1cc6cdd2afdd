package service

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newBackupFixture(t *testing.T, ids ...int) (*BackupService, *HistoryService) {
	t.Helper()
	history := NewHistoryService(newMemorySlots(), testSlot, 50, zerolog.Nop())
	for _, id := range ids {
		if err := history.Append(context.Background(), testSession(t, id)); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	return NewBackupService(history, zerolog.Nop()), history
}

func TestBackupExportImportFile(t *testing.T) {
	ctx := context.Background()
	src, _ := newBackupFixture(t, 1, 2, 3)

	path := filepath.Join(t.TempDir(), "history.json")
	if err := src.Export(ctx, path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	dst, history := newBackupFixture(t)
	n, err := dst.Import(ctx, path, true)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Import() = %d sessions, want 3", n)
	}
	list := history.List()
	if list[0].ID != testEpoch.UnixMilli()+3 {
		t.Errorf("newest session = %d", list[0].ID)
	}
}

func TestBackupImportMerge(t *testing.T) {
	ctx := context.Background()
	src, _ := newBackupFixture(t, 1, 3)

	var buf bytes.Buffer
	if _, err := src.ExportToWriter(ctx, &buf); err != nil {
		t.Fatalf("ExportToWriter() error = %v", err)
	}

	dst, history := newBackupFixture(t, 2, 3)
	n, err := dst.ImportFromReader(ctx, &buf, false)
	if err != nil {
		t.Fatalf("ImportFromReader() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("merged %d sessions, want 3", n)
	}

	base := testEpoch.UnixMilli()
	want := []int64{base + 3, base + 2, base + 1}
	for i, s := range history.List() {
		if s.ID != want[i] {
			t.Errorf("session %d ID = %d, want %d", i, s.ID, want[i])
		}
	}
}

func TestBackupImportRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: "nope"},
		{name: "wrong version", doc: `{"version":"9","slot":"x","sessions":[]}`},
		{name: "missing sessions", doc: `{"version":"1.0","slot":"x"}`},
		{name: "bad record", doc: `{"version":"1.0","slot":"x","sessions":[{"id":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, history := newBackupFixture(t, 1)
			if _, err := dst.ImportFromReader(context.Background(), strings.NewReader(tt.doc), true); err == nil {
				t.Error("ImportFromReader() error = nil, want failure")
			}
			if len(history.List()) != 1 {
				t.Errorf("history changed to %d sessions", len(history.List()))
			}
		})
	}
}

func TestMergeSessionsCaps(t *testing.T) {
	ctx := context.Background()
	var ids []int
	for i := 0; i < 40; i++ {
		ids = append(ids, i)
	}
	src, _ := newBackupFixture(t, ids...)

	var buf bytes.Buffer
	src.ExportToWriter(ctx, &buf)

	var more []int
	for i := 100; i < 140; i++ {
		more = append(more, i)
	}
	dst, history := newBackupFixture(t, more...)
	if _, err := dst.ImportFromReader(ctx, &buf, false); err != nil {
		t.Fatalf("ImportFromReader() error = %v", err)
	}

	list := history.List()
	if len(list) != 50 {
		t.Fatalf("merged history has %d sessions, want 50", len(list))
	}
	if list[0].ID != testEpoch.UnixMilli()+139 {
		t.Errorf("newest = %d", list[0].ID)
	}
}
