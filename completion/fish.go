package completion

import (
	"fmt"
	"strings"
)

type FishGenerator struct{}

func (FishGenerator) Generate(program string, root Command) string {
	fn := "__" + funcName(program) + "_path"

	var b strings.Builder
	fmt.Fprintf(&b, "# fish completion for %s\n\n", program)
	fmt.Fprintf(&b, "function %s\n", fn)
	b.WriteString("    set -l tokens (commandline -opc)\n")
	fmt.Fprintf(&b, "    set -l path %s\n", fishQuote(root.Path))
	b.WriteString("    for t in $tokens[2..-1]\n")
	b.WriteString("        switch \"$path $t\"\n")
	for _, t := range transitions(root) {
		fmt.Fprintf(&b, "            case %s\n", fishQuote(t.from+" "+t.word))
		fmt.Fprintf(&b, "                set path %s\n", fishQuote(t.to))
	}
	b.WriteString("        end\n")
	b.WriteString("    end\n")
	b.WriteString("    echo $path\n")
	b.WriteString("end\n\n")

	fmt.Fprintf(&b, "complete -c %s -f\n", program)
	walk(root, func(cmd Command) {
		cond := fishQuote(fmt.Sprintf("test (%s) = %s", fn, fishQuote(cmd.Path)))
		for _, child := range cmd.Children {
			for _, name := range append([]string{child.Name}, child.Aliases...) {
				fmt.Fprintf(&b, "complete -c %s -n %s -a %s", program, cond, fishQuote(name))
				if child.Description != "" {
					fmt.Fprintf(&b, " -d %s", fishQuote(child.Description))
				}
				b.WriteString("\n")
			}
		}
		for _, f := range cmd.Flags {
			fmt.Fprintf(&b, "complete -c %s -n %s", program, cond)
			for _, name := range f.Names {
				if strings.HasPrefix(name, "--") {
					fmt.Fprintf(&b, " -l %s", name[2:])
				} else {
					fmt.Fprintf(&b, " -s %s", name[1:])
				}
			}
			if f.TakesValue {
				b.WriteString(" -r")
			}
			if len(f.Values) > 0 {
				fmt.Fprintf(&b, " -a %s", fishQuote(strings.Join(f.Values, " ")))
			}
			if f.Description != "" {
				fmt.Fprintf(&b, " -d %s", fishQuote(f.Description))
			}
			b.WriteString("\n")
		}
	})

	return b.String()
}

func fishQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
