package render

import "testing"

func TestFormatPlainTextIsSingleParagraph(t *testing.T) {
	blocks := Format("  Water the plant regularly.  ")
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	b := blocks[0]
	if b.Kind != BlockParagraph {
		t.Fatalf("expected paragraph, got %s", b.Kind)
	}
	if len(b.Spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(b.Spans))
	}
	if b.Spans[0].Text != "Water the plant regularly." || b.Spans[0].Emphasized {
		t.Errorf("unexpected span: %+v", b.Spans[0])
	}
}

func TestFormatEmphasisAndList(t *testing.T) {
	blocks := Format("**Apply fungicide**\n- Water less\n- Remove leaves")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}

	para := blocks[0]
	if para.Kind != BlockParagraph {
		t.Fatalf("expected paragraph first, got %s", para.Kind)
	}
	if len(para.Spans) != 1 || para.Spans[0].Text != "Apply fungicide" || !para.Spans[0].Emphasized {
		t.Errorf("unexpected paragraph spans: %+v", para.Spans)
	}

	list := blocks[1]
	if list.Kind != BlockList {
		t.Fatalf("expected list second, got %s", list.Kind)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Items))
	}
	if list.Items[0][0].Text != "Water less" || list.Items[1][0].Text != "Remove leaves" {
		t.Errorf("unexpected items: %+v", list.Items)
	}
}

func TestFormatMergesListsAcrossBlankLines(t *testing.T) {
	blocks := Format("- one\n\n- two\n- three")
	if len(blocks) != 1 {
		t.Fatalf("expected a single merged list, got %d blocks", len(blocks))
	}
	if blocks[0].Kind != BlockList {
		t.Fatalf("expected list, got %s", blocks[0].Kind)
	}
	if len(blocks[0].Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(blocks[0].Items))
	}
}

func TestFormatParagraphsSplitOnBlankLines(t *testing.T) {
	blocks := Format("First advice.\n\nSecond advice.")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(blocks))
	}
	for i, b := range blocks {
		if b.Kind != BlockParagraph {
			t.Errorf("block %d: expected paragraph, got %s", i, b.Kind)
		}
	}
	if blocks[0].Spans[0].Text != "First advice." || blocks[1].Spans[0].Text != "Second advice." {
		t.Errorf("unexpected paragraphs: %+v", blocks)
	}
}

func TestFormatTextAfterListStartsNewParagraph(t *testing.T) {
	blocks := Format("- spray weekly\nWear gloves while spraying.")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Kind != BlockList || blocks[1].Kind != BlockParagraph {
		t.Errorf("unexpected block order: %s, %s", blocks[0].Kind, blocks[1].Kind)
	}
}

func TestFormatEmptyInput(t *testing.T) {
	if blocks := Format(""); blocks != nil {
		t.Errorf("expected nil for empty input, got %+v", blocks)
	}
	if blocks := Format("   \n \n"); blocks != nil {
		t.Errorf("expected nil for whitespace input, got %+v", blocks)
	}
}

func TestParseSpansStrayMarkerStaysLiteral(t *testing.T) {
	spans := ParseSpans("use **copper spray")
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Text != "use **copper spray" || spans[0].Emphasized {
		t.Errorf("unexpected span: %+v", spans[0])
	}
}

func TestParseSpansNonGreedy(t *testing.T) {
	spans := ParseSpans("**a** and **b**")
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].Text != "a" || !spans[0].Emphasized {
		t.Errorf("unexpected first span: %+v", spans[0])
	}
	if spans[1].Text != " and " || spans[1].Emphasized {
		t.Errorf("unexpected middle span: %+v", spans[1])
	}
	if spans[2].Text != "b" || !spans[2].Emphasized {
		t.Errorf("unexpected last span: %+v", spans[2])
	}
}

func TestParseSpansMixedEmphasis(t *testing.T) {
	spans := ParseSpans("Apply **Mancozeb** today")
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}
	if spans[0].Text != "Apply " || spans[0].Emphasized {
		t.Errorf("unexpected leading span: %+v", spans[0])
	}
	if spans[1].Text != "Mancozeb" || !spans[1].Emphasized {
		t.Errorf("unexpected emphasized span: %+v", spans[1])
	}
	if spans[2].Text != " today" || spans[2].Emphasized {
		t.Errorf("unexpected trailing span: %+v", spans[2])
	}
}
