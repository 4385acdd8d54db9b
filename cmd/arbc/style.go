package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/gogpu/arbconv"
)

var (
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	caretStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	pathStyle  = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type styler struct {
	color bool
}

func newStyler() styler {
	return styler{color: !viper.GetBool("no_color")}
}

func (s styler) render(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}

// diagnostic renders a translation failure for name. Translator errors get
// the offending source line and a caret; anything else is printed as is.
func (s styler) diagnostic(name string, err error) string {
	var e *arbconv.Error
	if !errors.As(err, &e) {
		return fmt.Sprintf("%s: %s\n", s.render(pathStyle, name), s.render(errStyle, err.Error()))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", s.render(pathStyle, name), s.render(dimStyle, e.Kind.String()+" error"))
	for _, line := range strings.Split(strings.TrimRight(e.FormatWithContext(), "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "error:"):
			line = s.render(errStyle, line)
		case strings.HasSuffix(line, "^"):
			line = s.render(caretStyle, line)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (s styler) ok(name string) string {
	return fmt.Sprintf("%s: %s\n", s.render(pathStyle, name), s.render(okStyle, "ok"))
}
