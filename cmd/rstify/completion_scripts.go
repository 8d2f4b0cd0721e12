package main

import (
	"fmt"
	"strings"
)

// generateBash renders a bash completion function for cmds.
func generateBash(cmds []commandDef) string {
	var b strings.Builder

	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}

	b.WriteString("# bash completion for rstify\n")
	b.WriteString("_rstify() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	fmt.Fprintf(&b, "    local commands=%q\n", strings.Join(names, " "))
	b.WriteString("\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"${commands}\" -- \"${cur}\") $(compgen -f -- \"${cur}\") )\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("\n")
	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)

		if len(c.Flags) > 0 {
			b.WriteString("            case \"${prev}\" in\n")
			for _, f := range c.Flags {
				if !f.takesValue() {
					continue
				}
				fmt.Fprintf(&b, "                %s)\n", strings.Join(flagWords([]flagDef{f}), "|"))
				fmt.Fprintf(&b, "                    %s\n", bashValueReply(f))
				b.WriteString("                    return ;;\n")
			}
			b.WriteString("            esac\n")
			b.WriteString("            if [[ \"${cur}\" == -* ]]; then\n")
			fmt.Fprintf(&b, "                COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(flagWords(c.Flags), " "))
			b.WriteString("                return\n")
			b.WriteString("            fi\n")
		}

		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(c.Args, " "))
		case c.TakesFiles:
			b.WriteString("            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -F _rstify rstify\n")
	return b.String()
}

// bashValueReply returns the COMPREPLY assignment completing a flag value.
func bashValueReply(f flagDef) string {
	switch f.Type {
	case flagDir:
		return "COMPREPLY=( $(compgen -d -- \"${cur}\") )"
	case flagFile:
		var exts []string
		for _, g := range globs(f.FileGlob) {
			exts = append(exts, strings.TrimPrefix(g, "*."))
		}
		return fmt.Sprintf("COMPREPLY=( $(compgen -f -- \"${cur}\" | grep -E '\\.(%s)$') $(compgen -d -- \"${cur}\") )", strings.Join(exts, "|"))
	case flagEnum:
		return fmt.Sprintf("COMPREPLY=( $(compgen -W %q -- \"${cur}\") )", strings.Join(f.Values, " "))
	default:
		return "COMPREPLY=()"
	}
}

// generateZsh renders a zsh completion function for cmds.
func generateZsh(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef rstify\n\n")
	b.WriteString("_rstify() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        _files\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 && !c.TakesFiles {
			continue
		}
		specs := make([]string, 0, len(c.Flags)+1)
		for _, f := range c.Flags {
			specs = append(specs, zshFlagSpec(f))
		}
		switch {
		case len(c.Args) > 0:
			specs = append(specs, "'*:argument:("+strings.Join(c.Args, " ")+")'")
		case c.TakesFiles:
			specs = append(specs, "'*:input file:_files'")
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            shift words; (( CURRENT-- ))\n")
		fmt.Fprintf(&b, "            _arguments \\\n                %s\n", strings.Join(specs, " \\\n                "))
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _rstify rstify\n")
	return b.String()
}

// zshFlagSpec renders one _arguments flag entry.
func zshFlagSpec(f flagDef) string {
	desc := "[" + zshEscape(f.Desc) + "]"

	action := ""
	if f.takesValue() {
		switch f.Type {
		case flagDir:
			action = ":directory:_files -/"
		case flagFile:
			action = ":file:_files -g \"" + strings.Join(globs(f.FileGlob), " ") + "\""
		case flagEnum:
			action = ":value:(" + strings.Join(f.Values, " ") + ")"
		case flagInt:
			action = ":number:"
		default:
			action = ":value:"
		}
	}

	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return "'(-" + f.Short + " --" + f.Long + ")'{-" + f.Short + ",--" + f.Long + "}'" + desc + action + "'"
}

// zshEscape escapes characters that are special inside _arguments specs.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

// generateFish renders fish completion commands for cmds.
func generateFish(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for rstify\n")
	b.WriteString("complete -c rstify -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c rstify -n '__fish_use_subcommand' -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := "'__fish_seen_subcommand_from " + c.Name + "'"
		for _, f := range c.Flags {
			var line strings.Builder
			fmt.Fprintf(&line, "complete -c rstify -n %s", cond)
			if f.Short != "" {
				fmt.Fprintf(&line, " -s %s", f.Short)
			}
			fmt.Fprintf(&line, " -l %s -d '%s'", f.Long, fishEscape(f.Desc))
			switch f.Type {
			case flagBool:
			case flagDir:
				line.WriteString(" -r -a '(__fish_complete_directories)'")
			case flagFile:
				var exts []string
				for _, g := range globs(f.FileGlob) {
					exts = append(exts, strings.TrimPrefix(g, "*"))
				}
				fmt.Fprintf(&line, " -r -a '(__fish_complete_suffix %s)'", strings.Join(exts, " "))
			case flagEnum:
				fmt.Fprintf(&line, " -x -a '%s'", strings.Join(f.Values, " "))
			default:
				line.WriteString(" -x")
			}
			b.WriteString(line.String() + "\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c rstify -n %s -x -a '%s'\n", cond, strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(&b, "complete -c rstify -n %s -F\n", cond)
		}
	}

	return b.String()
}

// fishEscape escapes single quotes for a fish single-quoted string.
func fishEscape(s string) string {
	return strings.NewReplacer("\\", "\\\\", "'", "\\'").Replace(s)
}
