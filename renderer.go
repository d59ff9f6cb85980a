package gocli

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/napalu/gocli/i18n"
	"github.com/napalu/gocli/internal/util"
	"github.com/napalu/gocli/schema"
	"golang.org/x/text/message"
)

const (
	indent    = "  "
	columnGap = 4
	minWrap   = 20
)

// Renderer formats help text for the commands of an App.
type Renderer struct {
	app     *App
	printer *message.Printer
	width   int
	heading *color.Color
}

func newRenderer(app *App) *Renderer {
	heading := color.New(color.Bold)
	if app.colorEnabled() {
		heading.EnableColor()
	} else {
		heading.DisableColor()
	}

	return &Renderer{
		app:     app,
		printer: app.printer(),
		width:   app.width(),
		heading: heading,
	}
}

type row struct {
	left  string
	right string
}

// Help renders the full help of c, invoked as path.
func (r *Renderer) Help(c *Command, path string) string {
	var sections [][]string
	sections = append(sections, []string{r.CommandUsage(c, path)})

	desc := c.LongDescription
	if desc == "" {
		desc = c.Description
	}
	if desc != "" {
		sections = append(sections, util.Wrap(desc, r.width))
	}
	if rows := r.argRows(c); len(rows) > 0 {
		sections = append(sections, r.section(i18n.KeyArguments, rows))
	}
	if rows := r.commandRows(c); len(rows) > 0 {
		sections = append(sections, r.section(i18n.KeyCommands, rows))
	}

	local, global := r.flagRows(c)
	if len(local) > 0 {
		sections = append(sections, r.section(i18n.KeyFlags, local))
	}
	if len(global) > 0 {
		sections = append(sections, r.section(i18n.KeyGlobalFlags, global))
	}
	if _, ok := c.Lookup("help"); ok && len(r.commandRows(c)) > 0 {
		sections = append(sections, []string{r.printer.Sprintf(i18n.KeyMore, path)})
	}

	blocks := make([]string, len(sections))
	for i, lines := range sections {
		blocks[i] = strings.Join(lines, "\n")
	}

	return strings.Join(blocks, "\n\n")
}

// CommandUsage renders the usage line of c.
func (r *Renderer) CommandUsage(c *Command, path string) string {
	if c.Usage != "" {
		return r.printer.Sprintf(i18n.KeyUsage, c.Usage)
	}

	parts := []string{path}
	if len(r.commandRows(c)) > 0 {
		parts = append(parts, "<command>")
	}
	if c.mergedFlags().Len() > 0 {
		parts = append(parts, "[flags]")
	}
	if c.args != nil {
		for _, arg := range c.args.Items() {
			parts = append(parts, r.argPlaceholder(c.args, arg))
		}
	}

	return r.printer.Sprintf(i18n.KeyUsage, strings.Join(parts, " "))
}

func (r *Renderer) argPlaceholder(args *Arguments, arg Arg) string {
	switch {
	case arg.variadic:
		return "[" + arg.name + "...]"
	case args.optional || args.defaultFn != nil || schema.AcceptsNil(arg.schema):
		return "[" + arg.name + "]"
	}

	return "<" + arg.name + ">"
}

// FlagUsage renders the names a flag is typed with, followed by its value
// placeholder: "-o, --out <string>".
func (r *Renderer) FlagUsage(f *Flag, path string) string {
	var short, long []string
	for _, name := range append([]string{path}, f.aliases...) {
		if utf8.RuneCountInString(name) == 1 {
			short = append(short, "-"+name)
			continue
		}
		if f.negatable {
			long = append(long, "--[no-]"+name)
			continue
		}
		long = append(long, "--"+name)
	}

	usage := strings.Join(append(short, long...), ", ")
	if classify(InnerType(f)) != valueBool {
		usage += " <" + schema.TypeString(InnerType(f)) + ">"
	}

	return usage
}

// FlagDescription renders the description of a flag with its default.
func (r *Renderer) FlagDescription(f *Flag) string {
	desc := f.Description()
	if def, ok := DefaultValue(f); ok {
		desc = strings.TrimSpace(desc + " " + r.printer.Sprintf(i18n.KeyDefault, formatDefault(def)))
	}

	return desc
}

// CommandDescription renders the description of a command with its aliases.
func (r *Renderer) CommandDescription(c *Command) string {
	desc := c.Description
	if len(c.Aliases) > 0 {
		desc = strings.TrimSpace(desc + " (" + r.printer.Sprintf(i18n.KeyAliases, strings.Join(c.Aliases, ", ")) + ")")
	}

	return desc
}

func formatDefault(v any) string {
	switch t := v.(type) {
	case string:
		return fmt.Sprintf("%q", t)
	case []any:
		parts := make([]string, len(t))
		for i, elem := range t {
			parts[i] = formatDefault(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}

	return fmt.Sprint(v)
}

func (r *Renderer) argRows(c *Command) []row {
	var rows []row
	if c.args == nil {
		return rows
	}
	for _, arg := range c.args.Items() {
		left := arg.name
		if arg.variadic {
			left += "..."
		}
		desc := arg.Description()
		if !arg.variadic && (c.args.optional || schema.AcceptsNil(arg.schema)) {
			desc = strings.TrimSpace(desc + " " + r.printer.Sprintf(i18n.KeyOptional))
		}
		rows = append(rows, row{left: left, right: desc})
	}

	return rows
}

func (r *Renderer) commandRows(c *Command) []row {
	visible := make(map[string]*Command)
	var names []string
	for _, child := range c.children {
		if child.Hidden {
			continue
		}
		visible[child.Name] = child
		names = append(names, child.Name)
	}
	i18n.SortStrings(r.app.lang, names)

	rows := make([]row, 0, len(names))
	for _, name := range names {
		rows = append(rows, row{left: name, right: r.CommandDescription(visible[name])})
	}

	return rows
}

// flagRows returns the rows of the visible local flags and of the global
// flags not shadowed by a local one, both sorted by name.
func (r *Renderer) flagRows(c *Command) (local, global []row) {
	collect := func(fs *FlagSet, skip map[string]bool) ([]row, map[string]bool) {
		byPath := make(map[string]*Flag)
		seen := make(map[string]bool)
		var paths []string
		WalkFlags(fs, func(f *Flag, path string) {
			seen[path] = true
			if f.hidden || skip[path] {
				return
			}
			byPath[path] = f
			paths = append(paths, path)
		})
		i18n.SortStrings(r.app.lang, paths)

		rows := make([]row, 0, len(paths))
		for _, path := range paths {
			f := byPath[path]
			rows = append(rows, row{left: r.FlagUsage(f, path), right: r.FlagDescription(f)})
		}
		return rows, seen
	}

	local, shadowed := collect(c.Flags(), nil)
	global, _ = collect(c.app.globals, shadowed)

	return local, global
}

// section renders a heading followed by two aligned columns. Descriptions
// wrap at the terminal width, continuation lines aligned to the column.
func (r *Renderer) section(headingKey string, rows []row) []string {
	lines := []string{r.heading.Sprint(r.printer.Sprintf(headingKey))}

	column := 0
	for _, rw := range rows {
		column = max(column, utf8.RuneCountInString(rw.left))
	}
	column = min(column, r.width/2)

	wrapAt := max(r.width-len(indent)-column-columnGap, minWrap)
	for _, rw := range rows {
		desc := util.Wrap(rw.right, wrapAt)
		leftWidth := utf8.RuneCountInString(rw.left)
		if len(desc) == 0 {
			lines = append(lines, indent+rw.left)
			continue
		}
		pad := strings.Repeat(" ", max(column-leftWidth, 0)+columnGap)
		if leftWidth > column {
			lines = append(lines, indent+rw.left)
			pad = strings.Repeat(" ", column+columnGap)
			lines = append(lines, indent+pad+desc[0])
		} else {
			lines = append(lines, indent+rw.left+pad+desc[0])
		}
		cont := strings.Repeat(" ", len(indent)+column+columnGap)
		for _, line := range desc[1:] {
			lines = append(lines, cont+line)
		}
	}

	return lines
}

// CommandTree lists the visible commands below c, indented by depth.
func (r *Renderer) CommandTree(c *Command) []string {
	compare := i18n.Comparer(r.app.lang)
	var rows []row
	var walk func(cmd *Command, depth int)
	walk = func(cmd *Command, depth int) {
		children := slices.DeleteFunc(cmd.Children(), func(child *Command) bool { return child.Hidden })
		slices.SortStableFunc(children, func(a, b *Command) int { return compare(a.Name, b.Name) })
		for _, child := range children {
			rows = append(rows, row{
				left:  strings.Repeat(indent, depth) + child.Name,
				right: r.CommandDescription(child),
			})
			walk(child, depth+1)
		}
	}
	walk(c, 0)

	return r.section(i18n.KeyCommands, rows)
}
