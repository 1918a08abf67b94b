// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch obtains attachment content through an ordered set of
// fallback retrieval strategies and records what it could not obtain.
package fetch

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/mlaneve/trellodown/pkg/types"
)

// Fetcher downloads attachments one at a time. It is owned by the exporter
// for the duration of one run and is not safe for concurrent use; the
// pipeline is strictly sequential to respect Trello's rate limits.
type Fetcher struct {
	client    *http.Client
	fs        afero.Fs
	creds     *types.Credentials
	userAgent string

	// seen holds destination paths already produced this run. Checked
	// before any network attempt so an attachment referenced twice is
	// fetched at most once.
	seen map[string]struct{}

	info *infoRecord
	log  *slog.Logger
	out  io.Writer
}

// New builds a Fetcher writing through fs. creds may be nil for
// unauthenticated runs; progress lines go to out.
func New(client *http.Client, fs afero.Fs, creds *types.Credentials, userAgent string, log *slog.Logger, out io.Writer) *Fetcher {
	return &Fetcher{
		client:    client,
		fs:        fs,
		creds:     creds,
		userAgent: userAgent,
		seen:      make(map[string]struct{}),
		info:      newInfoRecord(fs),
		log:       log,
		out:       out,
	}
}

// Authenticated reports whether the fetcher carries credentials.
func (f *Fetcher) Authenticated() bool { return f.creds != nil }

// Fetch obtains one attachment into destPath and reports the outcome.
// External links (no URL or not an upload) are skipped silently. On total
// strategy exhaustion the failure is appended to the destination
// directory's attachment_info.md and no partial file is left behind.
func (f *Fetcher) Fetch(card *types.Card, att *types.Attachment, destPath string) types.Outcome {
	if _, ok := f.seen[destPath]; ok {
		fmt.Fprintf(f.out, "  skipped: %s (already downloaded)\n", filepath.Base(destPath))
		return types.Outcome{AttachmentID: att.ID, LocalPath: destPath, Succeeded: true}
	}

	if att.URL == "" || !att.IsUpload {
		f.log.Debug("attachment not fetchable", "attachment", att.Name, "upload", att.IsUpload)
		return types.Outcome{AttachmentID: att.ID}
	}

	for _, s := range strategies {
		if !s.applicable(f.creds) {
			continue
		}
		body, err := s.attempt(f.client, f.userAgent, card, att, f.creds)
		if err != nil {
			f.log.Debug("strategy failed", "strategy", s.name(), "attachment", att.Name, "err", err)
			continue
		}
		if err := f.write(destPath, body); err != nil {
			body.Close()
			f.log.Debug("write failed", "attachment", att.Name, "err", err)
			break
		}
		body.Close()

		f.seen[destPath] = struct{}{}
		fmt.Fprintf(f.out, "  downloaded: %s (%s)\n", filepath.Base(destPath), s.name())
		return types.Outcome{AttachmentID: att.ID, LocalPath: destPath, Succeeded: true}
	}

	if err := f.info.append(filepath.Dir(destPath), card, att); err != nil {
		f.log.Warn("could not record failed attachment", "attachment", att.Name, "err", err)
	}
	fmt.Fprintf(f.out, "  failed: %s (recorded in %s)\n", att.Name, infoFileName)
	return types.Outcome{AttachmentID: att.ID}
}

// write streams body to destPath through a temp file in the same directory,
// renaming on success so a failed transfer leaves no partial file.
func (f *Fetcher) write(destPath string, body io.Reader) error {
	dir := filepath.Dir(destPath)
	if err := f.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(f.fs, dir, ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, copyErr := io.Copy(tmp, body)
	closeErr := tmp.Close()
	if copyErr != nil {
		f.fs.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		f.fs.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := f.fs.Rename(tmpPath, destPath); err != nil {
		f.fs.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
