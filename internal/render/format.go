package render

import "strings"

const emphasisMarker = "**"

// Format converts raw recommendation text into an ordered block sequence.
// Lines starting with "-" become list items; runs of list items collapse
// into a single list block even across blank lines. Everything else is
// grouped into paragraphs on blank-line boundaries. Empty input yields nil.
func Format(text string) []ContentBlock {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var (
		blocks []ContentBlock
		para   []string
		list   [][]TextSpan
	)

	flushPara := func() {
		if len(para) == 0 {
			return
		}
		joined := strings.TrimSpace(strings.Join(para, "\n"))
		para = nil
		if joined == "" {
			return
		}
		blocks = append(blocks, ContentBlock{Kind: BlockParagraph, Spans: ParseSpans(joined)})
	}
	flushList := func() {
		if len(list) == 0 {
			return
		}
		blocks = append(blocks, ContentBlock{Kind: BlockList, Items: list})
		list = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			// A blank line ends a paragraph but not a list, so bulleted
			// runs separated by empty lines still merge into one block.
			flushPara()
		case strings.HasPrefix(trimmed, "-"):
			flushPara()
			item := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
			list = append(list, ParseSpans(item))
		default:
			flushList()
			para = append(para, trimmed)
		}
	}
	flushPara()
	flushList()

	return blocks
}

// ParseSpans splits a line into plain and emphasized spans. Emphasis is
// non-greedy: the first closing marker ends the span. A marker with no
// closing partner stays in the text as literal characters.
func ParseSpans(s string) []TextSpan {
	var spans []TextSpan
	for {
		open := strings.Index(s, emphasisMarker)
		if open < 0 {
			break
		}
		rest := s[open+len(emphasisMarker):]
		end := strings.Index(rest, emphasisMarker)
		if end < 0 {
			break
		}
		if open > 0 {
			spans = append(spans, TextSpan{Text: s[:open]})
		}
		if inner := rest[:end]; inner != "" {
			spans = append(spans, TextSpan{Text: inner, Emphasized: true})
		}
		s = rest[end+len(emphasisMarker):]
	}
	if s != "" {
		spans = append(spans, TextSpan{Text: s})
	}
	return spans
}
