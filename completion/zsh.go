package completion

import (
	"fmt"
	"strings"
)

type ZshGenerator struct{}

func (ZshGenerator) Generate(program string, root Command) string {
	fn := "_" + funcName(program)

	var b strings.Builder
	fmt.Fprintf(&b, "#compdef %s\n\n", program)
	fmt.Fprintf(&b, "%s() {\n", fn)
	fmt.Fprintf(&b, "    local cmdpath=%s w\n", singleQuote(root.Path))
	b.WriteString("    local -a entries\n\n")

	b.WriteString("    for w in \"${(@)words[2,CURRENT-1]}\"; do\n")
	b.WriteString("        [[ \"$w\" == -* ]] && continue\n")
	b.WriteString("        case \"$cmdpath $w\" in\n")
	for _, t := range transitions(root) {
		fmt.Fprintf(&b, "            %s) cmdpath=%s ;;\n", singleQuote(t.from+" "+t.word), singleQuote(t.to))
	}
	b.WriteString("        esac\n")
	b.WriteString("    done\n\n")

	b.WriteString("    case \"$cmdpath:${words[CURRENT-1]}\" in\n")
	walk(root, func(cmd Command) {
		for _, f := range cmd.Flags {
			if !f.TakesValue {
				continue
			}
			action := "_default"
			if len(f.Values) > 0 {
				quoted := make([]string, len(f.Values))
				for i, v := range f.Values {
					quoted[i] = singleQuote(v)
				}
				action = "compadd -- " + strings.Join(quoted, " ")
			}
			for _, name := range f.Names {
				fmt.Fprintf(&b, "        %s) %s; return ;;\n", singleQuote(cmd.Path+":"+name), action)
			}
		}
	})
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"$cmdpath\" in\n")
	walk(root, func(cmd Command) {
		fmt.Fprintf(&b, "        %s)\n", singleQuote(cmd.Path))
		b.WriteString("            entries=(\n")
		for _, child := range cmd.Children {
			for _, name := range append([]string{child.Name}, child.Aliases...) {
				fmt.Fprintf(&b, "                %s\n", singleQuote(zshEntry(name, child.Description)))
			}
		}
		for _, f := range cmd.Flags {
			for _, name := range f.Names {
				fmt.Fprintf(&b, "                %s\n", singleQuote(zshEntry(name, f.Description)))
			}
		}
		b.WriteString("            )\n")
		b.WriteString("            ;;\n")
	})
	b.WriteString("    esac\n")
	b.WriteString("    _describe -t commands 'command' entries\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "compdef %s %s\n", fn, program)

	return b.String()
}

// zshEntry formats a _describe entry; colons in the name are escaped.
func zshEntry(name, description string) string {
	name = strings.ReplaceAll(name, ":", `\:`)
	if description == "" {
		return name
	}

	return name + ":" + description
}
