// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Board is the top-level structure of a Trello board export.
type Board struct {
	// ID is the board identifier from the export.
	ID string `json:"id" yaml:"id"`

	// Name is the board title.
	Name string `json:"name" yaml:"name"`

	// Desc is the board description, markdown as entered in Trello.
	Desc string `json:"desc" yaml:"desc"`

	// Closed reports whether the board is archived.
	Closed bool `json:"closed" yaml:"closed"`

	// Lists holds the board columns in display order, including archived ones.
	Lists []List `json:"lists" yaml:"lists"`

	// Cards holds every card on the board; each references its list via ListID.
	Cards []Card `json:"cards" yaml:"cards"`

	// Checklists holds all checklists; each references its card via CardID.
	Checklists []Checklist `json:"checklists" yaml:"checklists"`

	// Members lists the board members referenced by card MemberIDs.
	Members []Member `json:"members" yaml:"members"`

	// Actions holds the board activity stream; comments are actions of
	// type "commentCard".
	Actions []Action `json:"actions" yaml:"actions"`
}

// List is one board column.
type List struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Closed bool   `json:"closed" yaml:"closed"`
}

// Card is one card from the export.
type Card struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Desc   string `json:"desc" yaml:"desc"`
	Closed bool   `json:"closed" yaml:"closed"`

	// ListID is the identifier of the list the card belongs to.
	ListID string `json:"idList" yaml:"idList"`

	// Due is the due date as an RFC 3339 string, empty when unset.
	Due string `json:"due" yaml:"due"`

	// DueComplete reports whether the due date has been marked done.
	DueComplete bool `json:"dueComplete" yaml:"dueComplete"`

	// MemberIDs references Board.Members.
	MemberIDs []string `json:"idMembers" yaml:"idMembers"`

	Labels      []Label      `json:"labels" yaml:"labels"`
	Attachments []Attachment `json:"attachments" yaml:"attachments"`
}

// Attachment is the export's record of an uploaded or linked file on a card.
// It is never mutated after parsing.
type Attachment struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// URL is the remote location of the attachment content.
	URL string `json:"url" yaml:"url"`

	// IsUpload distinguishes files hosted by Trello from external links.
	// Only uploads are downloaded; links are preserved as links.
	IsUpload bool `json:"isUpload" yaml:"isUpload"`

	// Bytes is the declared size. Nil when the export omits it, in which
	// case the size renders as "unknown".
	Bytes *int64 `json:"bytes" yaml:"bytes"`

	// MimeType is the declared content type, possibly empty.
	MimeType string `json:"mimeType" yaml:"mimeType"`

	// Date is the upload timestamp as an RFC 3339 string, possibly empty.
	Date string `json:"date" yaml:"date"`
}

// Label is a colored card label.
type Label struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Member is a board member.
type Member struct {
	ID       string `json:"id" yaml:"id"`
	FullName string `json:"fullName" yaml:"fullName"`
	Username string `json:"username" yaml:"username"`
}

// Checklist groups check items under a card.
type Checklist struct {
	ID     string      `json:"id" yaml:"id"`
	Name   string      `json:"name" yaml:"name"`
	CardID string      `json:"idCard" yaml:"idCard"`
	Items  []CheckItem `json:"checkItems" yaml:"checkItems"`
}

// CheckItem is one entry in a checklist. State is "complete" or "incomplete".
type CheckItem struct {
	Name  string `json:"name" yaml:"name"`
	State string `json:"state" yaml:"state"`
}

// Action is one entry in the board activity stream.
type Action struct {
	ID   string `json:"id" yaml:"id"`
	Type string `json:"type" yaml:"type"`

	// Date is the action timestamp as an RFC 3339 string.
	Date string `json:"date" yaml:"date"`

	Data          ActionData `json:"data" yaml:"data"`
	MemberCreator Member     `json:"memberCreator" yaml:"memberCreator"`
}

// ActionData carries the action payload. For comments, Text is the comment
// body and Card identifies the card commented on.
type ActionData struct {
	Text string     `json:"text" yaml:"text"`
	Card ActionCard `json:"card" yaml:"card"`
}

// ActionCard is the minimal card reference embedded in an action.
type ActionCard struct {
	ID string `json:"id" yaml:"id"`
}

// CommentType is the action type Trello assigns to card comments.
const CommentType = "commentCard"
