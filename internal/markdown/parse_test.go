package markdown

import (
	"reflect"
	"testing"
)

func TestParseNumberedItems(t *testing.T) {
	doc := `1.  **Great News**
* **Source:** [TechCrunch](https://tc.example/a)
* **Summary:** Something happened today.
It continues here.

2. Another item`

	blocks := Parse(doc)

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %#v", len(blocks), blocks)
	}

	first := blocks[0]
	if first.Kind != KindNumberedItem {
		t.Fatalf("expected numbered item, got kind %d", first.Kind)
	}

	if first.Number != 1 || first.Title != "Great News" {
		t.Errorf("unexpected number/title: %d %q", first.Number, first.Title)
	}

	if first.Source == nil || first.Source.Text != "TechCrunch" || first.Source.URL != "https://tc.example/a" {
		t.Errorf("unexpected source: %#v", first.Source)
	}

	wantSummary := []string{"Something happened today. It continues here."}
	if !reflect.DeepEqual(first.Summary, wantSummary) {
		t.Errorf("summary = %#v, want %#v", first.Summary, wantSummary)
	}

	second := blocks[1]
	if second.Kind != KindNumberedItem || second.Title != "Another item" {
		t.Errorf("unexpected second item: %#v", second)
	}

	if second.Source != nil || len(second.Summary) != 0 {
		t.Errorf("expected bare second item, got %#v", second)
	}
}

func TestParseTitleFormats(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantTitle string
	}{
		{
			name:      "number and title emphasized",
			line:      "**3. Big Launch**",
			wantTitle: "Big Launch",
		},
		{
			name:      "title emphasized",
			line:      "3. **Big Launch**",
			wantTitle: "Big Launch",
		},
		{
			name:      "plain",
			line:      "3. Big Launch",
			wantTitle: "Big Launch",
		},
		{
			name:      "nested emphasis stripped",
			line:      "3. Big **Launch**",
			wantTitle: "Big Launch",
		},
		{
			name:      "no pattern match opens empty title",
			line:      "**3. Broken",
			wantTitle: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Parse(tt.line)

			if len(blocks) != 1 || blocks[0].Kind != KindNumberedItem {
				t.Fatalf("expected a single numbered item, got %#v", blocks)
			}

			if blocks[0].Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", blocks[0].Title, tt.wantTitle)
			}

			if blocks[0].Number != 3 {
				t.Errorf("number = %d, want 3", blocks[0].Number)
			}
		})
	}
}

func TestParseFirstSourceLinkWins(t *testing.T) {
	doc := `1. Item
* **Source:** [First](https://a.example) and [Second](https://b.example)`

	blocks := Parse(doc)

	if len(blocks) != 1 || blocks[0].Source == nil {
		t.Fatalf("expected one item with source, got %#v", blocks)
	}

	if blocks[0].Source.Text != "First" || blocks[0].Source.URL != "https://a.example" {
		t.Errorf("expected first link to win, got %#v", blocks[0].Source)
	}
}

func TestParseHeaderClosesItem(t *testing.T) {
	doc := `1. Item
* **Summary:** Text.
## Next Section`

	blocks := Parse(doc)

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %#v", blocks)
	}

	if blocks[0].Kind != KindNumberedItem || blocks[1].Kind != KindHeader {
		t.Errorf("unexpected kinds: %#v", blocks)
	}

	if blocks[1].Level != 2 || blocks[1].Text != "Next Section" {
		t.Errorf("unexpected header: %#v", blocks[1])
	}
}

func TestParseBlankInsideItemIsAbsorbed(t *testing.T) {
	doc := `1. Item
* **Summary:** First part.

continues after the gap.`

	blocks := Parse(doc)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %#v", blocks)
	}

	want := []string{"First part. continues after the gap."}
	if !reflect.DeepEqual(blocks[0].Summary, want) {
		t.Errorf("summary = %#v, want %#v", blocks[0].Summary, want)
	}
}

func TestParseBlankRunsBetweenItems(t *testing.T) {
	doc := "1. First\n* **Summary:** One.\n\n\n\n2. Second\n* **Summary:** Two.\n\n\n"

	blocks := Parse(doc)

	// The first blank closes the open item (the next non-blank line past the
	// run starts a new item); the remaining blanks surface as Blank blocks.
	// Trailing blanks are absorbed by the still-open second item.
	wantKinds := []BlockKind{KindNumberedItem, KindBlank, KindBlank, KindNumberedItem}
	if len(blocks) != len(wantKinds) {
		t.Fatalf("expected %d blocks, got %#v", len(wantKinds), blocks)
	}

	for i, kind := range wantKinds {
		if blocks[i].Kind != kind {
			t.Errorf("blocks[%d].Kind = %v, want %v", i, blocks[i].Kind, kind)
		}
	}

	if blocks[0].Title != "First" || blocks[3].Title != "Second" {
		t.Errorf("titles = %q, %q, want First, Second", blocks[0].Title, blocks[3].Title)
	}
}

func TestParseBulletList(t *testing.T) {
	doc := `- one
- two

after`

	blocks := Parse(doc)

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %#v", blocks)
	}

	list := blocks[0]
	if list.Kind != KindBulletList || list.Ordered {
		t.Fatalf("expected unordered list, got %#v", list)
	}

	if !reflect.DeepEqual(list.Entries, []string{"one", "two"}) {
		t.Errorf("entries = %#v", list.Entries)
	}

	if blocks[1].Kind != KindParagraph || blocks[1].Text != "after" {
		t.Errorf("unexpected trailing block: %#v", blocks[1])
	}
}

func TestParseListFlushedAtEOF(t *testing.T) {
	blocks := Parse("* alpha\n* beta")

	if len(blocks) != 1 || blocks[0].Kind != KindBulletList {
		t.Fatalf("expected a single list, got %#v", blocks)
	}

	if !reflect.DeepEqual(blocks[0].Entries, []string{"alpha", "beta"}) {
		t.Errorf("entries = %#v", blocks[0].Entries)
	}
}

func TestParseHeadersAndParagraphs(t *testing.T) {
	doc := `# Top

Intro paragraph.

### Sub`

	blocks := Parse(doc)

	wantKinds := []BlockKind{KindHeader, KindBlank, KindParagraph, KindBlank, KindHeader}

	if len(blocks) != len(wantKinds) {
		t.Fatalf("expected %d blocks, got %#v", len(wantKinds), blocks)
	}

	for i, k := range wantKinds {
		if blocks[i].Kind != k {
			t.Errorf("block %d kind = %d, want %d", i, blocks[i].Kind, k)
		}
	}

	if blocks[0].Level != 1 || blocks[4].Level != 3 {
		t.Errorf("unexpected header levels: %#v", blocks)
	}
}

func TestParseEmpty(t *testing.T) {
	if blocks := Parse(""); blocks != nil {
		t.Errorf("expected nil blocks for empty input, got %#v", blocks)
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"", lineBlank},
		{"   ", lineBlank},
		{"# Header", lineHeader},
		{"### Header", lineHeader},
		{"#### Too deep", lineText},
		{"#hashtag", lineText},
		{"1. Item", lineItemStart},
		{"**2. Item**", lineItemStart},
		{"- bullet", lineBullet},
		{"  * indented bullet", lineBullet},
		{"plain text", lineText},
	}

	for _, tt := range tests {
		if got := classifyLine(tt.line); got != tt.want {
			t.Errorf("classifyLine(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}
