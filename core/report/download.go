package report

import (
	"context"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Artifact is a generated report blob.
type Artifact struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Download fetches the artifact of a SUCCEEDED job and resolves its final
// filename. A failure here is a download error, distinct from job failure:
// the job itself already succeeded.
func (svc *Service) Download(ctx context.Context, job Job, fallback string) (Artifact, error) {
	if job.Status != StatusSucceeded {
		return Artifact{}, errors.Wrapf(ErrNotReady, "job %d is %s", job.ID, job.Status)
	}
	art, err := svc.repo.DownloadArtifact(ctx, job.ID)
	if err != nil {
		return Artifact{}, errors.Wrapf(err, "downloading artifact for job %d", job.ID)
	}
	art.Filename = ResolveFilename(art.Filename, job.OutputFilename, fallback)
	return art, nil
}

// ResolveFilename picks the artifact filename: the name the server sent via
// Content-Disposition wins, then the job's suggested output filename, then
// the caller's deterministic fallback.
func ResolveFilename(headerName, jobName, fallback string) string {
	if headerName != "" {
		return headerName
	}
	if jobName != "" {
		return jobName
	}
	return fallback
}

// FilenameFromDisposition extracts a usable filename from a
// Content-Disposition header value, percent-decoded if needed.
// Returns "" when the header carries no name.
func FilenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	name := params["filename"]
	if name == "" {
		return ""
	}
	if strings.Contains(name, "%") {
		if decoded, err := url.PathUnescape(name); err == nil {
			name = decoded
		}
	}
	// never trust path components coming off the wire
	return filepath.Base(name)
}

// Save writes the artifact under dir using its resolved filename and returns
// the full path. The write goes through a temp file and a rename; the temp
// file is removed when anything fails.
func (a Artifact) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating download dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".kampus-dl-*")
	if err != nil {
		return "", errors.Wrap(err, "creating temp file")
	}
	if _, err = tmp.Write(a.Data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", errors.Wrap(err, "writing artifact")
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", errors.Wrap(err, "closing temp file")
	}

	path := filepath.Join(dir, a.Filename)
	if err = os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", errors.Wrapf(err, "saving artifact to %s", path)
	}
	return path, nil
}
