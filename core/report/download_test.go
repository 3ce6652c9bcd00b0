package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	testutil "github.com/kampushq/kampus/tests"
)

func TestFilenameFromDisposition(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty header", header: "", want: ""},
		{name: "no filename param", header: "attachment", want: ""},
		{name: "plain filename", header: `attachment; filename="boletin.pdf"`, want: "boletin.pdf"},
		{name: "unquoted filename", header: "attachment; filename=listado.pdf", want: "listado.pdf"},
		{name: "percent encoded", header: `attachment; filename="bolet%C3%ADn%202026.pdf"`, want: "boletín 2026.pdf"},
		{name: "rfc 5987 ext param", header: "attachment; filename*=UTF-8''bolet%C3%ADn.pdf", want: "boletín.pdf"},
		{name: "path stripped", header: `attachment; filename="../../etc/passwd"`, want: "passwd"},
		{name: "garbage header", header: ";;;", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilenameFromDisposition(tt.header); got != tt.want {
				t.Errorf("FilenameFromDisposition() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestResolveFilename(t *testing.T) {
	tests := []struct {
		name       string
		headerName string
		jobName    string
		fallback   string
		want       string
	}{
		{name: "header wins", headerName: "servidor.pdf", jobName: "boletin.pdf", fallback: "fb.pdf", want: "servidor.pdf"},
		{name: "job name when no header", jobName: "boletin.pdf", fallback: "fb.pdf", want: "boletin.pdf"},
		{name: "fallback last", fallback: "enrollment-list-g5-p2-y2026.pdf", want: "enrollment-list-g5-p2-y2026.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveFilename(tt.headerName, tt.jobName, tt.fallback); got != tt.want {
				t.Errorf("ResolveFilename() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestService_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("requires succeeded job", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, testutil.NewLogger())
		_, err := svc.Download(ctx, Job{ID: 1, Status: StatusRunning}, "fb.pdf")
		if !errors.Is(err, ErrNotReady) {
			t.Errorf("Download() error = %v, want %v", err, ErrNotReady)
		}
	})

	t.Run("download error distinct from job failure", func(t *testing.T) {
		boom := errors.New("503 from artifact store")
		svc := NewService(&fakeRepo{downloadErr: boom}, testutil.NewLogger())
		_, err := svc.Download(ctx, Job{ID: 1, Status: StatusSucceeded}, "fb.pdf")
		if !errors.Is(err, boom) {
			t.Errorf("Download() error = %v, want wrapped %v", err, boom)
		}
		var jfe *JobFailedError
		if errors.As(err, &jfe) {
			t.Error("Download() error must not be a JobFailedError")
		}
	})

	t.Run("header name wins over job suggestion", func(t *testing.T) {
		repo := &fakeRepo{artifact: Artifact{Data: []byte("x"), Filename: "desde-servidor.pdf"}}
		svc := NewService(repo, testutil.NewLogger())
		art, err := svc.Download(ctx, Job{ID: 1, Status: StatusSucceeded, OutputFilename: "boletin.pdf"}, "fb.pdf")
		if err != nil {
			t.Fatalf("Download() error = %v, want nil", err)
		}
		if art.Filename != "desde-servidor.pdf" {
			t.Errorf("filename = %q; want %q", art.Filename, "desde-servidor.pdf")
		}
	})

	t.Run("job suggestion when header absent", func(t *testing.T) {
		repo := &fakeRepo{artifact: Artifact{Data: []byte("x")}}
		svc := NewService(repo, testutil.NewLogger())
		art, err := svc.Download(ctx, Job{ID: 1, Status: StatusSucceeded, OutputFilename: "boletin.pdf"}, "fb.pdf")
		if err != nil {
			t.Fatalf("Download() error = %v, want nil", err)
		}
		if art.Filename != "boletin.pdf" {
			t.Errorf("filename = %q; want %q", art.Filename, "boletin.pdf")
		}
	})
}

func TestArtifact_Save(t *testing.T) {
	dir := t.TempDir()

	art := Artifact{Data: []byte("%PDF-1.4 fake"), Filename: "boletin.pdf"}
	path, err := art.Save(dir)
	if err != nil {
		t.Fatalf("Save() error = %v, want nil", err)
	}
	if path != filepath.Join(dir, "boletin.pdf") {
		t.Errorf("path = %q; want %q", path, filepath.Join(dir, "boletin.pdf"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved artifact: %v", err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Errorf("saved data = %q; want %q", data, "%PDF-1.4 fake")
	}

	// no temp leftovers
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dir entries = %d; want 1", len(entries))
	}

	// creates nested download dirs on demand
	nested := filepath.Join(dir, "sub", "dir")
	if _, err := art.Save(nested); err != nil {
		t.Errorf("Save(nested) error = %v, want nil", err)
	}
}
