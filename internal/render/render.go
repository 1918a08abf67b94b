// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns parsed board data and per-attachment fetch outcomes
// into markdown documents.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mlaneve/trellodown/internal/util"
	"github.com/mlaneve/trellodown/pkg/types"
)

// imageExtensions are the declared-name extensions rendered as embedded
// images instead of links.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".svg": true, ".webp": true,
}

// CardContext carries everything one card document needs.
type CardContext struct {
	Card       *types.Card
	List       *types.List
	Comments   []types.Action
	Checklists []types.Checklist
	Members    []string

	// Outcomes maps attachment ID to its fetch outcome for this card.
	Outcomes map[string]types.Outcome
}

// Card renders one card as a standalone markdown document. Sections with no
// content are omitted entirely, heading included.
func Card(ctx CardContext) string {
	var b strings.Builder
	card := ctx.Card

	fmt.Fprintf(&b, "# %s\n", card.Name)
	if card.Closed {
		b.WriteString("\n*This card is archived.*\n")
	}

	var meta []string
	if ctx.List != nil {
		name := ctx.List.Name
		if ctx.List.Closed {
			name += " (archived)"
		}
		meta = append(meta, "**List:** "+name)
	}
	if len(card.Labels) > 0 {
		names := make([]string, 0, len(card.Labels))
		for _, l := range card.Labels {
			if l.Name != "" {
				names = append(names, l.Name)
			} else if l.Color != "" {
				names = append(names, l.Color)
			}
		}
		if len(names) > 0 {
			meta = append(meta, "**Labels:** "+strings.Join(names, ", "))
		}
	}
	if card.Due != "" {
		due := "**Due:** " + card.Due
		if card.DueComplete {
			due += " (done)"
		}
		meta = append(meta, due)
	}
	if len(ctx.Members) > 0 {
		meta = append(meta, "**Members:** "+strings.Join(ctx.Members, ", "))
	}
	if len(meta) > 0 {
		b.WriteString("\n" + strings.Join(meta, "\n") + "\n")
	}

	if card.Desc != "" {
		b.WriteString("\n## Description\n\n")
		b.WriteString(card.Desc)
		b.WriteString("\n")
	}

	if len(ctx.Checklists) > 0 {
		b.WriteString("\n## Checklists\n")
		for _, cl := range ctx.Checklists {
			fmt.Fprintf(&b, "\n### %s\n\n", cl.Name)
			for _, item := range cl.Items {
				mark := " "
				if item.State == "complete" {
					mark = "x"
				}
				fmt.Fprintf(&b, "- [%s] %s\n", mark, item.Name)
			}
		}
	}

	if section := attachmentSection(card, ctx.Outcomes); section != "" {
		b.WriteString("\n## Attachments\n\n")
		b.WriteString(section)
	}

	if len(ctx.Comments) > 0 {
		b.WriteString("\n## Comments\n")
		for _, c := range ctx.Comments {
			author := c.MemberCreator.FullName
			if author == "" {
				author = c.MemberCreator.Username
			}
			fmt.Fprintf(&b, "\n**%s** (%s):\n\n%s\n", author, c.Date, c.Data.Text)
		}
	}

	return b.String()
}

// attachmentSection renders the attachment lines in export order. Returns
// the empty string when nothing renders so the caller can drop the heading.
func attachmentSection(card *types.Card, outcomes map[string]types.Outcome) string {
	var b strings.Builder
	for _, att := range card.Attachments {
		outcome, ok := outcomes[att.ID]
		switch {
		case ok && outcome.Succeeded:
			// Only the file name component of the stored path is kept, so
			// the rendered tree stays valid when moved.
			rel := "attachments/" + filepath.Base(outcome.LocalPath)
			if isImage(att.Name) {
				fmt.Fprintf(&b, "![%s](%s)\n", att.Name, rel)
			} else {
				fmt.Fprintf(&b, "- [%s](%s)\n", att.Name, rel)
			}
		case att.IsUpload && att.URL != "":
			fmt.Fprintf(&b, "- [%s](%s) *(remote - download failed)*\n", att.Name, att.URL)
		default:
			// External links and URL-less references are never fetched and
			// never listed.
		}
	}
	return b.String()
}

func isImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Board renders the board overview page with links into the per-list tree.
func Board(b *types.Board) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n", b.Name)
	if b.Desc != "" {
		sb.WriteString("\n" + b.Desc + "\n")
	}

	if len(b.Lists) > 0 {
		sb.WriteString("\n## Lists\n\n")
		for _, l := range b.Lists {
			name := l.Name
			if l.Closed {
				name += " (archived)"
			}
			fmt.Fprintf(&sb, "- [%s](lists/%s/)\n", name, util.SanitizeFilename(l.Name))
		}
	}

	return sb.String()
}
