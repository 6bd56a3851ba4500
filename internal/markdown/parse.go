// Package markdown renders the semi-structured markdown produced by the
// digest summarization model into email-safe HTML and plain text.
//
// The input is parsed line by line into typed blocks (headers, numbered
// digest items, bullet lists, paragraphs) by a small state machine; two
// formatters then turn the block sequence into a styled HTML fragment or a
// plain-text fragment. Parsing never fails: unrecognized constructs degrade
// to literal, escaped paragraphs.
//
// All functions are pure and safe for concurrent use.
package markdown

import (
	"regexp"
	"strings"
)

var headerLineRe = regexp.MustCompile(`^#{1,3}\s`)

type parseState int

const (
	stateDefault parseState = iota
	stateInList
	stateInItem
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineHeader
	lineItemStart
	lineBullet
	lineText
)

// classifyLine determines the structural role of a single input line.
// Item starts are matched against the raw line (no leading indentation);
// bullets tolerate indentation.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		return lineBlank
	case headerLineRe.MatchString(trimmed):
		return lineHeader
	case itemStartRe.MatchString(line):
		return lineItemStart
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		return lineBullet
	default:
		return lineText
	}
}

// headerLevel returns the heading level (1..3) and text for a header line.
func headerLevel(line string) (int, string) {
	trimmed := strings.TrimSpace(line)

	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}

	return level, strings.TrimSpace(trimmed[level:])
}

type parser struct {
	state  parseState
	blocks []Block

	list *Block
	item *itemAccumulator
}

// Parse splits a digest document into its block sequence. Every non-blank
// input line lands in exactly one block; blank lines either delimit blocks
// or surface as KindBlank. Parse never fails on malformed input.
func Parse(doc string) []Block {
	if doc == "" {
		return nil
	}

	lines := strings.Split(doc, "\n")
	p := &parser{}

	lookahead := nextNonBlank(lines)

	for i, raw := range lines {
		p.step(strings.TrimRight(raw, " \t"), lookahead[i+1])
	}

	p.flush()

	return p.blocks
}

// nextNonBlank builds, in one reverse pass, the first non-blank line at or
// after each index (empty string when none remains). Used as lookahead for
// closing numbered items at blank lines; precomputing keeps Parse linear in
// the number of lines.
func nextNonBlank(lines []string) []string {
	lookahead := make([]string, len(lines)+1)

	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			lookahead[i] = lines[i]
		} else {
			lookahead[i] = lookahead[i+1]
		}
	}

	return lookahead
}

// step feeds one line through the state machine, mutating the block
// sequence and the open accumulators.
func (p *parser) step(line, lookahead string) {
	switch classifyLine(line) {
	case lineHeader:
		p.flush()

		level, text := headerLevel(line)
		p.blocks = append(p.blocks, Block{Kind: KindHeader, Level: level, Text: text})
	case lineItemStart:
		p.flush()

		p.item = newItemAccumulator(line)
		p.state = stateInItem
	case lineBullet:
		p.stepBullet(line)
	case lineBlank:
		p.stepBlank(lookahead)
	default:
		p.stepText(line)
	}
}

func (p *parser) stepBullet(line string) {
	trimmed := strings.TrimSpace(line)

	if p.state == stateInItem {
		switch {
		case strings.Contains(trimmed, "**Source:**"):
			p.item.setSource(trimmed)
		case strings.Contains(trimmed, "**Summary:**"):
			p.item.startSummary(trimmed)
		default:
			// Unlabeled bullet inside an item: keep it as summary text.
			p.item.appendText(strings.TrimSpace(trimmed[2:]))
		}

		return
	}

	if p.list == nil {
		p.list = &Block{Kind: KindBulletList}
	}

	p.list.Entries = append(p.list.Entries, strings.TrimSpace(trimmed[2:]))
	p.state = stateInList
}

func (p *parser) stepBlank(lookahead string) {
	switch p.state {
	case stateInList:
		p.flushList()
		p.state = stateDefault
	case stateInItem:
		// A blank line closes an item only when it already has body content
		// and the next non-blank line starts something new. Otherwise the
		// blank is absorbed and the item stays open.
		if p.item.hasBody() {
			switch classifyLine(lookahead) {
			case lineItemStart, lineHeader:
				p.flushItem()
				p.state = stateDefault
			}
		}
	default:
		p.blocks = append(p.blocks, Block{Kind: KindBlank})
	}
}

func (p *parser) stepText(line string) {
	if p.state == stateInItem {
		p.item.appendText(line)
		return
	}

	p.flushList()

	p.blocks = append(p.blocks, Block{Kind: KindParagraph, Text: strings.TrimSpace(line)})
	p.state = stateDefault
}

// flush closes whichever accumulator is open and returns to the default
// state. Called before emitting headers, opening a new item, and at EOF.
func (p *parser) flush() {
	p.flushList()
	p.flushItem()
	p.state = stateDefault
}

func (p *parser) flushList() {
	if p.list == nil {
		return
	}

	p.blocks = append(p.blocks, *p.list)
	p.list = nil
}

func (p *parser) flushItem() {
	if p.item == nil {
		return
	}

	p.blocks = append(p.blocks, p.item.block())
	p.item = nil
}
