package argot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huandu/xstrings"

	"github.com/marrec/argot/types"
	"github.com/marrec/argot/util"
)

// Renderer turns argument specifications and command bindings into
// usage text. It never mutates the parser, its registry or its
// Namespace.
type Renderer struct {
	parser *Parser
	width  int
}

// NewRenderer creates a Renderer over parser with the default line width
func NewRenderer(parser *Parser) *Renderer {
	return &Renderer{parser: parser, width: util.DefaultTerminalWidth}
}

// SetWidth sets the column width long description lines are wrapped to
func (r *Renderer) SetWidth(width int) {
	if width > 0 {
		r.width = width
	}
}

// Metavar returns the value placeholder shown for an argument: the
// configured one, or the canonical name upper-cased in snake case.
func (r *Renderer) Metavar(f *Argument) string {
	if f.Metavar != "" {
		return f.Metavar
	}

	return strings.ToUpper(xstrings.ToSnakeCase(f.plainName()))
}

// FlagUsage generates a usage string for a named argument. It includes
// every alias, the value placeholder for value-taking kinds, the
// description, the default (if any) and whether the argument is
// required or optional.
func (r *Renderer) FlagUsage(f *Argument) string {
	usage := strings.Join(f.Names, " or ")
	if f.Kind != types.Standalone && f.Kind != types.Counter {
		usage += " " + r.Metavar(f)
	}

	if f.Description != "" {
		usage += " \"" + f.Description + "\""
	}
	if f.HasDefault {
		usage += fmt.Sprintf(" (defaults to: %s)", f.DefaultValue)
	}

	return usage + " (" + f.describeRequired() + ")"
}

// PositionalUsage generates a usage string for a positional argument,
// decorating the placeholder with its arity.
func (r *Renderer) PositionalUsage(f *Argument) string {
	usage := r.decorate(f)
	if f.Description != "" {
		usage += " \"" + f.Description + "\""
	}
	if f.HasDefault {
		usage += fmt.Sprintf(" (defaults to: %s)", f.DefaultValue)
	}

	return usage + " (" + f.describeRequired() + ")"
}

// CommandUsage generates a usage string for a command, including its
// aliases and short help.
func (r *Renderer) CommandUsage(c *Command) string {
	usage := c.Name
	if len(c.Aliases) > 0 {
		usage += " (" + strings.Join(c.Aliases, ", ") + ")"
	}
	if c.Description != "" {
		usage += " \"" + c.Description + "\""
	}

	return usage
}

func (r *Renderer) decorate(f *Argument) string {
	metavar := r.Metavar(f)
	switch f.Nargs {
	case types.ZeroOrOne:
		return "[" + metavar + "]"
	case types.OneOrMore:
		return metavar + " [" + metavar + " ...]"
	case types.Remaining:
		return "[" + metavar + " ...]"
	}

	return metavar
}

// Synopsis renders the one-line usage summary.
func (r *Renderer) Synopsis() string {
	p := r.parser
	line := "usage: " + r.prog()
	if len(p.registry.Named()) > 0 {
		line += " [flags]"
	}
	if p.router != nil && p.router.Len() > 0 {
		line += " <command>"
	}
	for _, f := range p.registry.Positionals() {
		line += " " + r.decorate(f)
	}

	return line
}

// Lines renders the complete usage output as an ordered sequence of
// display lines: synopsis, description, positional section, flag
// section, command section and epilog.
func (r *Renderer) Lines() []string {
	p := r.parser
	lines := []string{r.Synopsis()}

	if p.description != "" {
		lines = append(lines, "")
		lines = append(lines, wrapText(p.description, r.width)...)
	}

	if positionals := p.registry.Positionals(); len(positionals) > 0 {
		lines = append(lines, "", "positional arguments:")
		for _, f := range positionals {
			lines = append(lines, " "+r.PositionalUsage(f))
		}
	}
	if named := p.registry.Named(); len(named) > 0 {
		lines = append(lines, "", "flags:")
		for _, f := range named {
			lines = append(lines, " "+r.FlagUsage(f))
		}
	}
	if p.router != nil && p.router.Len() > 0 {
		lines = append(lines, "", "commands:")
		for _, c := range p.router.Commands() {
			lines = append(lines, " "+r.CommandUsage(c))
		}
	}

	if p.epilog != "" {
		lines = append(lines, "")
		lines = append(lines, wrapText(p.epilog, r.width)...)
	}

	return lines
}

func (r *Renderer) prog() string {
	if r.parser.prog != "" {
		return r.parser.prog
	}

	return filepath.Base(os.Args[0])
}

// wrapText greedily wraps text into lines no longer than width columns.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}

	return append(lines, line)
}

// PrintUsage pretty prints the accepted arguments and commands to an
// io.Writer, wrapped to the terminal width when writer is a terminal.
func (p *Parser) PrintUsage(writer io.Writer) {
	renderer := NewRenderer(p)
	if file, ok := writer.(*os.File); ok {
		renderer.SetWidth(util.TerminalWidth(file.Fd()))
	}
	for _, line := range renderer.Lines() {
		_, _ = fmt.Fprintln(writer, line)
	}
}

// PrintFlags pretty prints the accepted named arguments to an io.Writer.
func (p *Parser) PrintFlags(writer io.Writer) {
	renderer := NewRenderer(p)
	for _, f := range p.registry.Named() {
		_, _ = fmt.Fprintln(writer, " "+renderer.FlagUsage(f))
	}
}

// PrintPositionals pretty prints the accepted positional arguments to an
// io.Writer.
func (p *Parser) PrintPositionals(writer io.Writer) {
	renderer := NewRenderer(p)
	for _, f := range p.registry.Positionals() {
		_, _ = fmt.Fprintln(writer, " "+renderer.PositionalUsage(f))
	}
}

// PrintCommands writes the list of bound commands to an io.Writer.
func (p *Parser) PrintCommands(writer io.Writer) {
	if p.router == nil {
		return
	}
	renderer := NewRenderer(p)
	for _, c := range p.router.Commands() {
		_, _ = fmt.Fprintln(writer, " "+renderer.CommandUsage(c))
	}
}

// PrintUsageWithCommands prints the full usage followed by each
// command's own flags, indented under the command.
func (p *Parser) PrintUsageWithCommands(writer io.Writer) {
	p.PrintUsage(writer)
	if p.router == nil {
		return
	}
	for _, c := range p.router.Commands() {
		if c.Parser == nil {
			continue
		}
		_, _ = fmt.Fprintf(writer, "\n%s:\n", c.Name)
		renderer := NewRenderer(c.Parser)
		for _, f := range c.Parser.registry.Named() {
			_, _ = fmt.Fprintln(writer, "   "+renderer.FlagUsage(f))
		}
		for _, f := range c.Parser.registry.Positionals() {
			_, _ = fmt.Fprintln(writer, "   "+renderer.PositionalUsage(f))
		}
	}
}
