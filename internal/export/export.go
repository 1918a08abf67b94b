// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export walks a parsed board export and writes the markdown tree:
// board overview, one document per card, downloaded attachments, and the
// per-directory records of attachments that could not be downloaded.
package export

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/mlaneve/trellodown/internal/board"
	"github.com/mlaneve/trellodown/internal/fetch"
	"github.com/mlaneve/trellodown/internal/manifest"
	"github.com/mlaneve/trellodown/internal/render"
	"github.com/mlaneve/trellodown/internal/util"
	"github.com/mlaneve/trellodown/pkg/types"
)

const (
	listsDir       = "lists"
	attachmentsDir = "attachments"
	boardFile      = "board.md"
	boardMetaFile  = "board.yaml"
)

// Summary holds the counters of one export run.
type Summary struct {
	// Cards is the number of card documents written.
	Cards int

	// Downloaded counts attachments obtained (dedup hits included).
	Downloaded int

	// Failed counts upload attachments no strategy could obtain.
	Failed int

	// Skipped counts attachments never attempted (external links, no URL).
	Skipped int
}

// Attachments returns the total number of attachments processed.
func (s Summary) Attachments() int {
	return s.Downloaded + s.Failed + s.Skipped
}

// HasFailures reports whether any attachment download failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// boardMeta is the shape of the board.yaml record written next to board.md.
type boardMeta struct {
	ID         string    `yaml:"id"`
	Name       string    `yaml:"name"`
	ExportedAt time.Time `yaml:"exported_at"`
	RunID      string    `yaml:"run_id,omitempty"`
	Lists      int       `yaml:"lists"`
	Cards      int       `yaml:"cards"`
}

// Exporter writes one board export to disk. Processing is strictly
// sequential (lists, then cards, then attachments) to respect Trello's
// rate limits.
type Exporter struct {
	fs      afero.Fs
	fetcher *fetch.Fetcher

	// store receives run/outcome rows; nil disables manifest recording.
	store *manifest.Store

	log *slog.Logger
	out io.Writer
}

// New builds an Exporter. store may be nil when the manifest could not be
// opened; the export itself must not depend on it.
func New(fs afero.Fs, fetcher *fetch.Fetcher, store *manifest.Store, log *slog.Logger, out io.Writer) *Exporter {
	return &Exporter{fs: fs, fetcher: fetcher, store: store, log: log, out: out}
}

// Run exports the whole board under cfg.OutputDir and returns the summary.
// Individual attachment failures never abort the run; only filesystem-level
// problems writing the tree do.
func (e *Exporter) Run(b *types.Board, cfg types.ExportConfig) (Summary, error) {
	outDir := cfg.OutputDir
	if err := e.fs.MkdirAll(outDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	var runID string
	if e.store != nil {
		id, err := e.store.BeginRun(b, e.fetcher.Authenticated())
		if err != nil {
			e.log.Warn("manifest disabled for this run", "err", err)
		} else {
			runID = id
		}
	}

	if err := afero.WriteFile(e.fs, filepath.Join(outDir, boardFile), []byte(render.Board(b)), 0o644); err != nil {
		return Summary{}, fmt.Errorf("writing %s: %w", boardFile, err)
	}

	var summary Summary
	grouped := board.CardsByList(b)
	attempted := 0

	for i := range b.Lists {
		list := &b.Lists[i]
		listDir := filepath.Join(outDir, listsDir, util.SanitizeFilename(list.Name))
		if err := e.fs.MkdirAll(listDir, 0o755); err != nil {
			return summary, fmt.Errorf("creating list directory %s: %w", listDir, err)
		}

		for _, card := range grouped[list.ID] {
			fmt.Fprintf(e.out, "exporting: %s (%s)\n", card.Name, list.Name)
			if err := e.exportCard(b, list, card, listDir, runID, cfg, &summary, &attempted); err != nil {
				return summary, err
			}
			summary.Cards++
		}
	}

	meta := boardMeta{
		ID:         b.ID,
		Name:       b.Name,
		ExportedAt: time.Now().UTC(),
		RunID:      runID,
		Lists:      len(b.Lists),
		Cards:      summary.Cards,
	}
	metaData, err := yaml.Marshal(meta)
	if err != nil {
		return summary, fmt.Errorf("marshaling board metadata: %w", err)
	}
	if err := afero.WriteFile(e.fs, filepath.Join(outDir, boardMetaFile), metaData, 0o644); err != nil {
		return summary, fmt.Errorf("writing %s: %w", boardMetaFile, err)
	}

	if e.store != nil && runID != "" {
		if err := e.store.FinishRun(runID, summary.Cards, summary.Downloaded, summary.Failed, summary.Skipped); err != nil {
			e.log.Warn("could not finalize manifest run", "err", err)
		}
	}

	auth := "unauthenticated"
	if e.fetcher.Authenticated() {
		auth = "authenticated"
	}
	fmt.Fprintf(e.out, "\nExport complete (%s): %d cards, %d attachments downloaded, %d failed, %d skipped\n",
		auth, summary.Cards, summary.Downloaded, summary.Failed, summary.Skipped)

	return summary, nil
}

// exportCard downloads the card's attachments and writes its markdown file.
func (e *Exporter) exportCard(b *types.Board, list *types.List, card types.Card, listDir, runID string, cfg types.ExportConfig, summary *Summary, attempted *int) error {
	cardName := util.SanitizeFilename(card.Name)
	outcomes := make(map[string]types.Outcome, len(card.Attachments))

	for i := range card.Attachments {
		att := &card.Attachments[i]

		// External links and URL-less references are never fetched; the
		// renderer keeps links for them and the fetcher is never invoked.
		if !att.IsUpload || att.URL == "" {
			outcomes[att.ID] = types.Outcome{AttachmentID: att.ID}
			summary.Skipped++
			continue
		}

		if *attempted > 0 && cfg.Delay > 0 {
			time.Sleep(cfg.Delay)
		}
		*attempted++

		dest := filepath.Join(listDir, attachmentsDir,
			cardName+"_"+util.SanitizeFilename(att.Name))
		outcome := e.fetcher.Fetch(&card, att, dest)
		outcomes[att.ID] = outcome

		if outcome.Succeeded {
			summary.Downloaded++
		} else {
			summary.Failed++
		}

		if e.store != nil && runID != "" {
			if err := e.store.RecordAttachment(runID, card.Name, att, outcome); err != nil {
				e.log.Warn("could not record attachment outcome", "attachment", att.Name, "err", err)
			}
		}
	}

	doc := render.Card(render.CardContext{
		Card:       &card,
		List:       list,
		Comments:   board.Comments(b, card.ID),
		Checklists: board.Checklists(b, card.ID),
		Members:    board.MemberNames(b, card.MemberIDs),
		Outcomes:   outcomes,
	})

	cardPath := filepath.Join(listDir, cardName+".md")
	if err := afero.WriteFile(e.fs, cardPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing card %s: %w", cardPath, err)
	}
	return nil
}
