package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SavaKodi/DatexReleaseNotes/internal/releasenotes"
	"github.com/fatih/color"
)

// categoryStyle is the color and icon of a category header.
type categoryStyle struct {
	Color *color.Color
	Icon  string
}

var categoryStyles = map[releasenotes.Category]categoryStyle{
	releasenotes.CategoryBug:             {Color: color.New(color.FgYellow), Icon: "⚡"},
	releasenotes.CategoryImplementation:  {Color: color.New(color.FgGreen), Icon: "✓"},
	releasenotes.CategoryCoreDevelopment: {Color: color.New(color.FgBlue), Icon: "~"},
}

var otherStyle = categoryStyle{Color: color.New(color.Faint), Icon: "•"}

func styleOf(c *releasenotes.Category) categoryStyle {
	if c == nil {
		return otherStyle
	}
	if s, ok := categoryStyles[*c]; ok {
		return s
	}
	return otherStyle
}

// Options controls terminal output.
type Options struct {
	Plain bool // no colors or icons
	Width int  // wrap width, 0 = 80
	// Compact omits item descriptions.
	Compact bool
}

func (o Options) width() int {
	if o.Width > 0 {
		return o.Width
	}
	return 80
}

// Terminal writes releases grouped by release and then by category.
func Terminal(w io.Writer, releases []Release, opts Options) error {
	for i, rel := range releases {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeRelease(w, rel, opts); err != nil {
			return fmt.Errorf("formatting release %s: %w", rel.Version, err)
		}
	}
	return nil
}

func writeRelease(w io.Writer, rel Release, opts Options) error {
	header := releaseHeader(rel)
	if !opts.Plain {
		header = color.New(color.Bold).Sprint(header)
	}
	if _, err := fmt.Fprintf(w, "## %s\n", header); err != nil {
		return err
	}

	if len(rel.Items) == 0 {
		_, err := fmt.Fprintln(w, "\n  (no items)")
		return err
	}

	for _, g := range groupByCategory(rel.Items) {
		style := styleOf(g.category)
		if opts.Plain {
			if _, err := fmt.Fprintf(w, "\n### %s\n", g.label()); err != nil {
				return err
			}
		} else {
			colored := style.Color.SprintFunc()
			if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(g.label())); err != nil {
				return err
			}
		}
		for _, it := range g.items {
			if err := writeItem(w, it, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

func releaseHeader(rel Release) string {
	header := rel.Version
	if rel.Date != "" {
		header += " (" + rel.Date + ")"
	}
	if rel.Quarter != "" {
		header += " [" + rel.Quarter + "]"
	}
	return header
}

func writeItem(w io.Writer, it Item, opts Options) error {
	const prefix = "  - "
	const indent = "    "

	line := itemLine(it)
	if !opts.Plain {
		line = wrapText(line, opts.width()-len(prefix), indent)
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", prefix, line); err != nil {
		return err
	}

	if opts.Compact || it.Description == "" {
		return nil
	}
	for _, dl := range strings.Split(it.Description, "\n") {
		dl = strings.TrimSpace(dl)
		if dl == "" {
			continue
		}
		if !opts.Plain {
			dl = color.New(color.Faint).Sprint(wrapText(dl, opts.width()-len(indent), indent))
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", indent, dl); err != nil {
			return err
		}
	}
	return nil
}

// itemLine is "[id] title (component)".
func itemLine(it Item) string {
	var b strings.Builder
	if it.ID != nil {
		b.WriteString("[" + strconv.Itoa(*it.ID) + "] ")
	}
	b.WriteString(it.Title)
	if it.Component != nil {
		b.WriteString(" (" + it.Component.Label() + ")")
	}
	return b.String()
}

// wrapText wraps text to maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text
	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}
		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}
	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}
	return strings.Join(lines, "\n"+indent)
}

// Summary is a one-line description of a release.
func Summary(rel Release) string {
	n := len(rel.Items)
	noun := "items"
	if n == 1 {
		noun = "item"
	}
	return fmt.Sprintf("%s  %d %s", releaseHeader(rel), n, noun)
}
