package llm

import (
	"fmt"
	"strings"
)

const (
	summarizeSystemPrompt = "You are an expert AI news analyst specializing in summarizing technical articles, research papers, and video content about artificial intelligence."

	digestSystemPrompt = "You are an expert content curator and writer who creates engaging, well-structured daily news digests."

	subjectSystemPrompt = "You are an expert email copywriter for professional AI news digests."
)

func summarizePrompt(contentType, title, content string) string {
	return fmt.Sprintf(`Summarize the following %s in 3-5 sentences. Focus on the key
announcements, technical developments, and why they matter.

Title: %s

Content:
%s`, contentType, title, content)
}

func chunkPrompt(contentType string, idx, total int, chunk string) string {
	return fmt.Sprintf(`You are summarizing a portion of a larger %s. This is chunk %d of %d.
Summarize the key points of this portion in 2-3 sentences.

%s`, contentType, idx, total, chunk)
}

func combineChunksPrompt(contentType string, partials []string) string {
	return fmt.Sprintf(`You are creating a final summary from multiple partial summaries of a %s.
Combine them into one coherent 3-5 sentence summary.

Partial summaries:
%s`, contentType, strings.Join(partials, "\n\n"))
}

// digestPrompt asks for the digest document itself. The formatting
// instructions pin the numbered-item layout the renderer understands:
// "N. **Title**" lines with "**Source:**" and "**Summary:**" bullets.
func digestPrompt(items []SourceItem) string {
	var parts []string

	for i, item := range items {
		parts = append(parts, fmt.Sprintf(`Item %d: %s
Title: %s
URL: %s
Summary: %s`, i+1, item.SourceType, item.Title, item.URL, item.Summary))
	}

	return fmt.Sprintf(`You are creating a daily AI news digest from multiple sources. Below are summaries of individual items from YouTube videos, OpenAI blog articles, and Anthropic blog articles.

Your task is to create a cohesive, well-organized daily digest that:
1. Groups related content together
2. Highlights the most important developments
3. Provides clear, engaging summaries
4. Maintains a professional but accessible tone

Individual item summaries:
%s

Please create a comprehensive daily digest with:
- An engaging introduction
- Organized sections by topic/theme
- A numbered entry for every item, formatted exactly as:
  N. **Title**
  * **Source:** [Site name](url)
  * **Summary:** One short paragraph.
- A brief conclusion

Format the digest in markdown with proper headings, links, and structure.`, strings.Join(parts, "\n\n---\n\n"))
}

func introPrompt(recipientName string, topTitles []string) string {
	greeting := "the reader"
	if recipientName != "" {
		greeting = recipientName
	}

	return fmt.Sprintf(`You are writing a short introductory paragraph for a daily AI news email.

The email is addressed to %s.
Here are some of the top items included:
- %s

Write 2-3 sentences in a friendly, professional tone to introduce today's digest.
Do not include a greeting line; it is added separately.`, greeting, strings.Join(topTitles, "\n- "))
}

func subjectPrompt(date string, topTitles []string) string {
	return fmt.Sprintf(`You are writing a short, engaging email subject line for a daily AI news digest.

The digest date is %s.
Here are some of the top items included:
- %s

Write a concise subject line (max 80 characters) that feels professional but engaging.
Do not include emojis.`, date, strings.Join(topTitles, ", "))
}
