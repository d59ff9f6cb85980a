package completion

import (
	"fmt"
	"strings"
)

type BashGenerator struct{}

func (BashGenerator) Generate(program string, root Command) string {
	fn := "_" + funcName(program) + "_completion"

	var b strings.Builder
	fmt.Fprintf(&b, "# bash completion for %s\n\n", program)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    local prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	fmt.Fprintf(&b, "    local path=%s word i\n\n", singleQuote(root.Path))

	b.WriteString("    for ((i=1; i < COMP_CWORD; i++)); do\n")
	b.WriteString("        word=\"${COMP_WORDS[i]}\"\n")
	b.WriteString("        [[ \"$word\" == -* ]] && continue\n")
	b.WriteString("        case \"$path $word\" in\n")
	for _, t := range transitions(root) {
		fmt.Fprintf(&b, "            %s) path=%s ;;\n", singleQuote(t.from+" "+t.word), singleQuote(t.to))
	}
	b.WriteString("        esac\n")
	b.WriteString("    done\n\n")

	b.WriteString("    case \"$path:$prev\" in\n")
	walk(root, func(cmd Command) {
		for _, f := range cmd.Flags {
			if !f.TakesValue {
				continue
			}
			for _, name := range f.Names {
				reply := "COMPREPLY=()"
				if len(f.Values) > 0 {
					reply = fmt.Sprintf("COMPREPLY=( $(compgen -W %s -- \"$cur\") )", singleQuote(strings.Join(f.Values, " ")))
				}
				fmt.Fprintf(&b, "        %s) %s; return ;;\n", singleQuote(cmd.Path+":"+name), reply)
			}
		}
	})
	b.WriteString("    esac\n\n")

	b.WriteString("    local words=\"\"\n")
	b.WriteString("    case \"$path\" in\n")
	walk(root, func(cmd Command) {
		fmt.Fprintf(&b, "        %s) words=%s ;;\n", singleQuote(cmd.Path), singleQuote(strings.Join(words(cmd), " ")))
	})
	b.WriteString("    esac\n")
	b.WriteString("    COMPREPLY=( $(compgen -W \"$words\" -- \"$cur\") )\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "complete -F %s %s\n", fn, program)

	return b.String()
}
