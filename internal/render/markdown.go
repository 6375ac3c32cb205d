package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Markdown writes releases as Markdown, one "## <version>" section each.
// The output of a single release is suitable as a GitHub release body.
func Markdown(w io.Writer, releases []Release) error {
	for i, rel := range releases {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "## %s\n", releaseHeader(rel)); err != nil {
			return err
		}
		if err := markdownBody(w, rel); err != nil {
			return fmt.Errorf("rendering release %s: %w", rel.Version, err)
		}
	}
	return nil
}

// MarkdownBody renders one release without its heading.
func MarkdownBody(rel Release) string {
	var b strings.Builder
	// strings.Builder never fails
	_ = markdownBody(&b, rel)
	return strings.TrimLeft(b.String(), "\n")
}

func markdownBody(w io.Writer, rel Release) error {
	for _, g := range groupByCategory(rel.Items) {
		if _, err := fmt.Fprintf(w, "\n### %s\n\n", g.label()); err != nil {
			return err
		}
		for _, it := range g.items {
			if err := markdownItem(w, it); err != nil {
				return err
			}
		}
	}
	return nil
}

func markdownItem(w io.Writer, it Item) error {
	var b strings.Builder
	b.WriteString("- ")
	if it.ID != nil {
		b.WriteString("**" + strconv.Itoa(*it.ID) + "** ")
	}
	b.WriteString(escapeMarkdown(it.Title))
	if it.Component != nil {
		b.WriteString(" _(" + it.Component.Label() + ")_")
	}
	b.WriteString("\n")

	for _, dl := range strings.Split(it.Description, "\n") {
		dl = strings.TrimSpace(dl)
		if dl == "" {
			continue
		}
		b.WriteString("  " + dl + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

var markdownEscaper = strings.NewReplacer("*", `\*`, "_", `\_`, "`", "\\`")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
