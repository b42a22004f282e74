package render

// TextSpan is a run of text with an emphasis flag.
type TextSpan struct {
	Text       string `json:"text"`
	Emphasized bool   `json:"emphasized"`
}

type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockList      BlockKind = "list"
)

// ContentBlock is one unit of formatted recommendation content.
// Paragraph blocks carry Spans; list blocks carry Items.
type ContentBlock struct {
	Kind  BlockKind    `json:"kind"`
	Spans []TextSpan   `json:"spans,omitempty"`
	Items [][]TextSpan `json:"items,omitempty"`
}
