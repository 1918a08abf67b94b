// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/mlaneve/trellodown/internal/util"
	"github.com/mlaneve/trellodown/pkg/types"
)

const infoFileName = "attachment_info.md"

const infoHeader = `# Attachments not downloaded

The attachments listed below could not be downloaded automatically.
They can be retrieved manually from the URLs given for each entry.
`

// infoRecord accumulates failed-download entries in an attachment_info.md
// per attachments directory. Entries are appended and flushed one at a time
// so a crash mid-run loses at most the entry in flight; the file is never
// truncated within a run.
type infoRecord struct {
	fs afero.Fs
}

func newInfoRecord(fs afero.Fs) *infoRecord {
	return &infoRecord{fs: fs}
}

// append records one failed attachment in dir's attachment_info.md, writing
// the fixed preamble first when the file does not exist yet.
func (r *infoRecord) append(dir string, card *types.Card, att *types.Attachment) error {
	if err := r.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, infoFileName)
	exists, err := afero.Exists(r.fs, path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	file, err := r.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	var b strings.Builder
	if !exists {
		b.WriteString(infoHeader)
	}
	fmt.Fprintf(&b, "\n### %s\n\n", att.Name)
	fmt.Fprintf(&b, "- Card: %s\n", card.Name)
	fmt.Fprintf(&b, "- Size: %s\n", util.FormatSize(att.Bytes))
	fmt.Fprintf(&b, "- URL: %s\n", att.URL)
	fmt.Fprintf(&b, "- Type: %s\n", orUnknown(att.MimeType))
	fmt.Fprintf(&b, "- Uploaded: %s\n", orUnknown(att.Date))

	if _, err := file.WriteString(b.String()); err != nil {
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
