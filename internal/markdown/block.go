package markdown

// BlockKind identifies the structural type of a parsed block.
type BlockKind int

const (
	KindHeader BlockKind = iota
	KindNumberedItem
	KindBulletList
	KindParagraph
	KindBlank
)

// SourceLink is the attribution link extracted from a "**Source:**" bullet
// inside a numbered digest item.
type SourceLink struct {
	Text string
	URL  string
}

// Block is one structurally classified unit of a parsed digest document.
// Only the fields relevant to Kind carry meaning; the rest are zero.
type Block struct {
	Kind BlockKind

	// KindHeader
	Level int // 1..3
	// KindHeader, KindParagraph
	Text string

	// KindNumberedItem
	Number  int
	Title   string
	Source  *SourceLink
	Summary []string

	// KindBulletList
	Ordered bool
	Entries []string
}
