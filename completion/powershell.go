package completion

import (
	"fmt"
	"strings"
)

type PowerShellGenerator struct{}

func (PowerShellGenerator) Generate(program string, root Command) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# powershell completion for %s\n\n", program)
	fmt.Fprintf(&b, "Register-ArgumentCompleter -Native -CommandName %s -ScriptBlock {\n", psQuote(program))
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	fmt.Fprintf(&b, "    $path = %s\n", psQuote(root.Path))
	b.WriteString("    $prev = ''\n")
	b.WriteString("    foreach ($element in ($commandAst.CommandElements | Select-Object -Skip 1)) {\n")
	b.WriteString("        $word = $element.ToString()\n")
	b.WriteString("        if ($element.Extent.StartOffset -ge $cursorPosition) { break }\n")
	b.WriteString("        if ($word -eq $wordToComplete) { break }\n")
	b.WriteString("        $prev = $word\n")
	b.WriteString("        if ($word.StartsWith('-')) { continue }\n")
	b.WriteString("        switch (\"$path $word\") {\n")
	for _, t := range transitions(root) {
		fmt.Fprintf(&b, "            %s { $path = %s }\n", psQuote(t.from+" "+t.word), psQuote(t.to))
	}
	b.WriteString("        }\n")
	b.WriteString("    }\n\n")

	b.WriteString("    $values = switch (\"${path}:${prev}\") {\n")
	walk(root, func(cmd Command) {
		for _, f := range cmd.Flags {
			if len(f.Values) == 0 {
				continue
			}
			quoted := make([]string, len(f.Values))
			for i, v := range f.Values {
				quoted[i] = psQuote(v)
			}
			for _, name := range f.Names {
				fmt.Fprintf(&b, "        %s { @(%s) }\n", psQuote(cmd.Path+":"+name), strings.Join(quoted, ", "))
			}
		}
	})
	b.WriteString("    }\n")
	b.WriteString("    if ($values) {\n")
	b.WriteString("        $values | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")

	b.WriteString("    $candidates = switch ($path) {\n")
	walk(root, func(cmd Command) {
		fmt.Fprintf(&b, "        %s {\n", psQuote(cmd.Path))
		b.WriteString("            @(\n")
		for _, child := range cmd.Children {
			for _, name := range append([]string{child.Name}, child.Aliases...) {
				fmt.Fprintf(&b, "                ,@(%s, %s)\n", psQuote(name), psQuote(psDescription(name, child.Description)))
			}
		}
		for _, f := range cmd.Flags {
			for _, name := range f.Names {
				fmt.Fprintf(&b, "                ,@(%s, %s)\n", psQuote(name), psQuote(psDescription(name, f.Description)))
			}
		}
		b.WriteString("            )\n")
		b.WriteString("        }\n")
	})
	b.WriteString("    }\n")
	b.WriteString("    $candidates | Where-Object { $_[0] -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_[0], $_[0], 'ParameterValue', $_[1])\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	return b.String()
}

// psDescription falls back to the name: CompletionResult rejects an empty tooltip.
func psDescription(name, description string) string {
	if description == "" {
		return name
	}

	return description
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
