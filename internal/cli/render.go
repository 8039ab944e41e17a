package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen/quotedash/internal/domain"
)

type styles struct {
	heading lipgloss.Style
	id      lipgloss.Style
	author  lipgloss.Style
	meta    lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
}

// newStyles binds the styles to out, so pipes and tests get plain text.
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)

	return styles{
		heading: r.NewStyle().Bold(true),
		id:      r.NewStyle().Foreground(lipgloss.Color("8")),
		author:  r.NewStyle().Italic(true),
		meta:    r.NewStyle().Faint(true),
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")),
		err:     r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func (a *App) printQuotes(quotes []domain.Quote, empty string) {
	if len(quotes) == 0 {
		a.println(a.styles.meta.Render(empty))
		return
	}

	for i := range quotes {
		a.printQuote(&quotes[i])
	}
}

func (a *App) printQuote(q *domain.Quote) {
	marks := fmt.Sprintf("likes %d", q.LikesCount)
	if q.IsFavorited {
		marks += " *"
	}

	a.printf("%s %q %s %s\n",
		a.styles.id.Render("#"+q.ID),
		q.Content,
		a.styles.author.Render("- "+q.Author),
		a.styles.meta.Render("("+marks+")"),
	)

	var details []string

	if q.Source != "" {
		details = append(details, "source: "+q.Source)
	}

	if q.Category != nil && q.Category.Name != "" {
		details = append(details, "category: "+q.Category.Name)
	} else if ref := q.CategoryRef(); ref != "" {
		details = append(details, "category: #"+ref)
	}

	if len(q.Tags) > 0 {
		names := make([]string, 0, len(q.Tags))
		for _, t := range q.Tags {
			names = append(names, t.Name)
		}

		details = append(details, "tags: "+strings.Join(names, ", "))
	}

	if len(details) > 0 {
		a.println("    " + a.styles.meta.Render(strings.Join(details, "  ")))
	}
}
