package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/quote-consumer/internal/domain"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// quoteView mirrors the upstream wire shape for json and yaml output.
type quoteView struct {
	Type  string         `json:"type"  yaml:"type"`
	Value quoteValueView `json:"value" yaml:"value"`
}

type quoteValueView struct {
	ID    int64  `json:"id"    yaml:"id"`
	Quote string `json:"quote" yaml:"quote"`
}

func toView(q *domain.Quote) quoteView {
	return quoteView{
		Type:  q.Type,
		Value: quoteValueView{ID: q.Value.ID, Quote: q.Value.Quote},
	}
}

type printer struct {
	format string
	w      io.Writer
	color  bool
}

func newPrinter(format string, w io.Writer) (*printer, error) {
	format = strings.ToLower(strings.TrimSpace(format))

	switch format {
	case outputText, outputJSON, outputYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q: use text, json or yaml", format)
	}

	return &printer{format: format, w: w, color: colorEnabled(w)}, nil
}

// colorEnabled reports whether w is a terminal and NO_COLOR is unset.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) && strings.TrimSpace(os.Getenv("NO_COLOR")) == ""
}

func (p *printer) print(quotes []*domain.Quote) error {
	switch p.format {
	case outputJSON:
		return p.printJSON(quotes)
	case outputYAML:
		return p.printYAML(quotes)
	default:
		return p.printText(quotes)
	}
}

func (p *printer) printText(quotes []*domain.Quote) error {
	idStyle := lipgloss.NewStyle().Faint(true)
	quoteStyle := lipgloss.NewStyle().Bold(true)

	for _, q := range quotes {
		line := q.String()
		if p.color {
			line = idStyle.Render("#"+strconv.FormatInt(q.Value.ID, 10)) + " " + quoteStyle.Render(q.Value.Quote)
		}

		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return err
		}
	}

	return nil
}

// printJSON writes a single object for one quote and an array otherwise.
func (p *printer) printJSON(quotes []*domain.Quote) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")

	if len(quotes) == 1 {
		return enc.Encode(toView(quotes[0]))
	}

	views := make([]quoteView, 0, len(quotes))
	for _, q := range quotes {
		views = append(views, toView(q))
	}

	return enc.Encode(views)
}

func (p *printer) printYAML(quotes []*domain.Quote) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)

	var doc any
	if len(quotes) == 1 {
		doc = toView(quotes[0])
	} else {
		views := make([]quoteView, 0, len(quotes))
		for _, q := range quotes {
			views = append(views, toView(q))
		}
		doc = views
	}

	if err := enc.Encode(doc); err != nil {
		return err
	}

	return enc.Close()
}
