// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package board reads a Trello board export file into memory and provides
// the groupings the exporter walks: cards per list, comments and checklists
// per card.
package board

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/afero"

	"github.com/mlaneve/trellodown/pkg/types"
)

// Load reads and decodes a board export. An unreadable file or invalid JSON
// aborts the whole run; there is nothing useful to export without it.
func Load(fs afero.Fs, path string) (*types.Board, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading board export %s: %w", path, err)
	}

	var b types.Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing board export %s: %w", path, err)
	}
	return &b, nil
}

// CardsByList groups the board's cards by list ID, preserving export order.
// Archived cards are included; the renderer marks them.
func CardsByList(b *types.Board) map[string][]types.Card {
	grouped := make(map[string][]types.Card)
	for _, c := range b.Cards {
		grouped[c.ListID] = append(grouped[c.ListID], c)
	}
	return grouped
}

// Comments returns the board's card comments for one card, oldest first.
// Trello stores comments newest-first in the actions stream; RFC 3339
// timestamps sort lexicographically.
func Comments(b *types.Board, cardID string) []types.Action {
	var comments []types.Action
	for _, a := range b.Actions {
		if a.Type == types.CommentType && a.Data.Card.ID == cardID {
			comments = append(comments, a)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Date < comments[j].Date
	})
	return comments
}

// Checklists returns the checklists attached to one card, in export order.
func Checklists(b *types.Board, cardID string) []types.Checklist {
	var lists []types.Checklist
	for _, cl := range b.Checklists {
		if cl.CardID == cardID {
			lists = append(lists, cl)
		}
	}
	return lists
}

// MemberNames resolves card member IDs to display names, skipping unknown
// IDs (exports can reference members who left the board).
func MemberNames(b *types.Board, memberIDs []string) []string {
	byID := make(map[string]string, len(b.Members))
	for _, m := range b.Members {
		name := m.FullName
		if name == "" {
			name = m.Username
		}
		byID[m.ID] = name
	}

	var names []string
	for _, id := range memberIDs {
		if name, ok := byID[id]; ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}
