package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/s0up4200/kitsu/kitsu"
	"github.com/s0up4200/kitsu/match"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")

	styleHeader = lipgloss.NewStyle().Bold(true)
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleID     = lipgloss.NewStyle().Foreground(colorDim)
	styleDetail = lipgloss.NewStyle().Foreground(colorGray)
)

// renderOptions controls result output
type renderOptions struct {
	Format string
	Color  bool
}

func outputOptions() renderOptions {
	return renderOptions{
		Format: cfg.Output.Format,
		Color:  cfg.Logging.Color && isTerminal(os.Stdout),
	}
}

// render writes items in the requested format
func render(w io.Writer, opts renderOptions, family kitsu.Family, items []match.Item) error {
	if opts.Format == "json" {
		return renderJSON(w, items)
	}

	_, err := io.WriteString(w, newConsoleFormatter(opts.Color).FormatItems(family, items))
	return err
}

// renderJSON writes the decoded resources as a JSON array
func renderJSON(w io.Writer, items []match.Item) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(lo.Map(items, func(item match.Item, _ int) any { return item.Resource }))
}

// consoleFormatter formats items as a tree for terminal display
type consoleFormatter struct {
	header func(string) string
	title  func(string) string
	id     func(string) string
	detail func(string) string
}

func newConsoleFormatter(color bool) *consoleFormatter {
	if !color {
		plain := func(s string) string { return s }
		return &consoleFormatter{header: plain, title: plain, id: plain, detail: plain}
	}
	return &consoleFormatter{
		header: styled(styleHeader),
		title:  styled(styleTitle),
		id:     styled(styleID),
		detail: styled(styleDetail),
	}
}

// styled adapts a style to a single-string render func
func styled(style lipgloss.Style) func(string) string {
	return func(s string) string { return style.Render(s) }
}

// FormatItems formats a list of items under a family header
func (f *consoleFormatter) FormatItems(family kitsu.Family, items []match.Item) string {
	if len(items) == 0 {
		return "No results found\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString("\n")
	sb.WriteString(f.header(fmt.Sprintf("%s (%d):", familyLabel(family), len(items))))
	sb.WriteString("\n\n")

	// Format each item
	for i, item := range items {
		isLast := i == len(items)-1
		f.formatItem(&sb, item, isLast)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func (f *consoleFormatter) formatItem(sb *strings.Builder, item match.Item, isLast bool) {
	prefix := "├"
	indent := "│   "
	if isLast {
		prefix = "╰"
		indent = "    "
	}

	title := item.Title
	if title == "" {
		title = item.Slug
	}
	fmt.Fprintf(sb, "%s── %s %s\n", prefix, f.title(title), f.id("["+item.ID+"]"))

	if details := itemDetails(item); len(details) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, f.detail(strings.Join(details, " | ")))
	}

	if item.Slug != "" && item.Slug != title {
		fmt.Fprintf(sb, "%s%s\n", indent, f.detail("Slug: "+item.Slug))
	}
}

// itemDetails lists the attributes worth showing on the detail line
func itemDetails(item match.Item) []string {
	details := []string{item.Subtype, item.Status}
	if item.Year > 0 {
		details = append(details, strconv.Itoa(item.Year))
	}
	if item.HasRating {
		details = append(details, fmt.Sprintf("Rating: %.2f", item.Rating))
	}
	if item.Episodes > 0 {
		details = append(details, plural(item.Episodes, "episode"))
	}
	if item.Chapters > 0 {
		details = append(details, plural(item.Chapters, "chapter"))
	}
	if item.NSFW {
		details = append(details, "NSFW")
	}
	return lo.Compact(details)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func familyLabel(family kitsu.Family) string {
	switch family {
	case kitsu.FamilyAnime:
		return "Anime"
	case kitsu.FamilyManga:
		return "Manga"
	case kitsu.FamilyUsers:
		return "Users"
	case kitsu.FamilyCharacters:
		return "Characters"
	case kitsu.FamilyProducers:
		return "Producers"
	default:
		return string(family)
	}
}
