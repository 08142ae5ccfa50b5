package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/kayman-mk/DevSkim/internal/ruleset"
)

type Summary struct {
	Language   string          `json:"language,omitempty"`
	Total      int             `json:"total"`
	Rules      []*ruleset.Rule `json:"rules"`
	BySeverity []CountItem     `json:"by_severity"`
	ByTag      []CountItem     `json:"by_tag"`
	BySource   []CountItem     `json:"by_source"`
}

type CountItem struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

const topN = 5

// Summarize keeps rules in the order given; only the counts are sorted.
func Summarize(language string, rules []*ruleset.Rule) Summary {
	summary := Summary{Language: language, Total: len(rules), Rules: rules}
	if len(rules) == 0 {
		summary.Rules = []*ruleset.Rule{}
		return summary
	}

	severities := map[string]int{}
	tags := map[string]int{}
	sources := map[string]int{}
	for _, r := range rules {
		severities[orUnset(r.Severity)]++
		tags[orUnset(r.Tag)]++
		sources[orUnset(r.Source)]++
	}

	summary.BySeverity = topCounts(severities, topN)
	summary.ByTag = topCounts(tags, topN)
	summary.BySource = topCounts(sources, topN)
	return summary
}

func orUnset(value string) string {
	if value == "" {
		return "unset"
	}
	return value
}

func topCounts(counts map[string]int, n int) []CountItem {
	items := make([]CountItem, 0, len(counts))
	for key, count := range counts {
		items = append(items, CountItem{Key: key, Count: count})
	}
	if len(items) == 0 {
		return nil
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Key < items[j].Key
		}
		return items[i].Count > items[j].Count
	})

	if len(items) > n {
		items = items[:n]
	}
	return items
}

func RenderText(summary Summary) string {
	var b strings.Builder
	if summary.Language != "" {
		fmt.Fprintf(&b, "Language: %s\n", summary.Language)
	}
	fmt.Fprintf(&b, "Rules: %d\n", summary.Total)
	for i, r := range summary.Rules {
		fmt.Fprintf(&b, "%3d. %s", i+1, r.ID)
		if r.Name != "" {
			fmt.Fprintf(&b, " %s", r.Name)
		}
		fmt.Fprintf(&b, " [%s] patterns=%d source=%s\n", orUnset(r.Severity), len(r.Patterns), r.Source)
	}

	writeCounts(&b, "By severity", summary.BySeverity)
	writeCounts(&b, "By tag", summary.ByTag)
	writeCounts(&b, "By source", summary.BySource)

	return b.String()
}

// RenderTable draws the rules as a box table followed by the same counts
// RenderText prints.
func RenderTable(summary Summary) string {
	var b strings.Builder
	if summary.Language != "" {
		fmt.Fprintf(&b, "Language: %s\n", summary.Language)
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "ID", "Name", "Severity", "Patterns", "Source"})
	for i, r := range summary.Rules {
		t.AppendRow(table.Row{i + 1, r.ID, r.Name, orUnset(r.Severity), len(r.Patterns), r.Source})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", summary.Total, ""})
	b.WriteString(t.Render())
	b.WriteString("\n")

	writeCounts(&b, "By severity", summary.BySeverity)
	writeCounts(&b, "By tag", summary.ByTag)
	writeCounts(&b, "By source", summary.BySource)

	return b.String()
}

func RenderMarkdown(summary Summary) string {
	var b strings.Builder
	b.WriteString("# DevSkim Rules\n\n")
	if summary.Language != "" {
		fmt.Fprintf(&b, "- Language: %s\n", summary.Language)
	}
	fmt.Fprintf(&b, "- Rules: %d\n\n", summary.Total)

	if len(summary.Rules) > 0 {
		b.WriteString("| # | ID | Name | Severity | Patterns | Source |\n")
		b.WriteString("|---|----|------|----------|----------|--------|\n")
		for i, r := range summary.Rules {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %d | %s |\n",
				i+1, r.ID, escapeCell(r.Name), orUnset(r.Severity), len(r.Patterns), escapeCell(r.Source))
		}
		b.WriteString("\n")
	}

	writeCountsMarkdown(&b, "By severity", summary.BySeverity)
	writeCountsMarkdown(&b, "By tag", summary.ByTag)
	writeCountsMarkdown(&b, "By source", summary.BySource)

	return b.String()
}

func RenderJSON(summary Summary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}

func escapeCell(value string) string {
	return strings.ReplaceAll(value, "|", `\|`)
}

func writeCounts(b *strings.Builder, title string, items []CountItem) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: none\n", title)
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s: %d\n", item.Key, item.Count)
	}
}

func writeCountsMarkdown(b *strings.Builder, title string, items []CountItem) {
	b.WriteString("## ")
	b.WriteString(title)
	b.WriteString("\n\n")
	if len(items) == 0 {
		b.WriteString("- none\n\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s: %d\n", item.Key, item.Count)
	}
	b.WriteString("\n")
}

// WriteOutput writes content to path, or to w when path is empty. A nil w
// means stdout.
func WriteOutput(w io.Writer, path string, content []byte) error {
	if path == "" {
		if w == nil {
			w = os.Stdout
		}
		_, err := io.Copy(w, bytes.NewReader(content))
		return err
	}
	return os.WriteFile(path, content, 0o600)
}
