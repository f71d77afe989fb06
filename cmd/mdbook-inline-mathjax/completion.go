package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// binaryName is the executable name completions are registered for.
const binaryName = "mdbook-inline-mathjax"

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long       string // --workers
	Short      string // -w (empty if none)
	Desc       string
	TakesValue bool
	FileGlob   string // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Args  []string // fixed argument values
	Files bool     // accepts file arguments
}

// flagFileGlobs maps flag names to file completion patterns.
var flagFileGlobs = map[string]string{
	"config": "*.yaml *.yml",
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Flag names and descriptions come from the FlagSet: single source of truth.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		flags = append(flags, flagDef{
			Long:       f.Name,
			Short:      f.Shorthand,
			Desc:       f.Usage,
			TakesValue: f.Value.Type() != "bool",
			FileGlob:   flagFileGlobs[f.Name],
		})
	})
	return flags
}

// rootFlags returns the flags of the default (preprocess) command.
func rootFlags() []flagDef {
	return extractFlagsFromFlagSet(buildPreprocessFlagSet(&preprocessFlags{}))
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	return []commandDef{
		{Name: "supports", Desc: "Check whether a renderer is supported", Args: []string{"html", "markdown", "epub", "latex"}},
		{Name: "check", Desc: "Report suspicious delimiters in markdown files", Flags: extractFlagsFromFlagSet(buildCheckFlagSet(&checkFlags{})), Files: true},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command", Args: commands},
		{Name: "completion", Desc: "Generate shell completion script", Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)}},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashScript()
	case ShellZsh:
		script = "#compdef " + binaryName + "\n" +
			"autoload -U +X bashcompinit && bashcompinit\n" + bashScript()
	case ShellFish:
		script = fishScript()
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// longFlags returns "--name" words for a flag list.
func longFlags(flags []flagDef) string {
	words := make([]string, 0, len(flags))
	for _, f := range flags {
		words = append(words, "--"+f.Long)
	}
	return strings.Join(words, " ")
}

func bashScript() string {
	var b strings.Builder
	fn := "_" + strings.ReplaceAll(binaryName, "-", "_")

	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    local prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    if [[ \"$prev\" == \"--config\" || \"$prev\" == \"-c\" ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -f -X '!*.y*ml' -- \"$cur\") )\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s %s\" -- \"$cur\") )\n",
		strings.Join(commands, " "), longFlags(rootFlags()))
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")
	for _, cmd := range getCommands() {
		fmt.Fprintf(&b, "        %s)\n", cmd.Name)
		switch {
		case cmd.Files:
			fmt.Fprintf(&b, "            if [[ \"$cur\" == -* ]]; then COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") ); else COMPREPLY=( $(compgen -f -- \"$cur\") ); fi\n",
				longFlags(cmd.Flags))
		case len(cmd.Args) > 0:
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(cmd.Args, " "))
		default:
			b.WriteString("            COMPREPLY=()\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("        *)\n")
	fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", longFlags(rootFlags()))
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	fmt.Fprintf(&b, "complete -F %s %s\n", fn, binaryName)
	return b.String()
}

func fishScript() string {
	var b strings.Builder
	noCmd := "not __fish_seen_subcommand_from " + strings.Join(commands, " ")

	fmt.Fprintf(&b, "complete -c %s -f\n", binaryName)
	for _, cmd := range getCommands() {
		fmt.Fprintf(&b, "complete -c %s -n %q -a %s -d %q\n", binaryName, noCmd, cmd.Name, cmd.Desc)
	}
	for _, f := range rootFlags() {
		b.WriteString(fishFlag(noCmd, f))
	}
	for _, cmd := range getCommands() {
		cond := "__fish_seen_subcommand_from " + cmd.Name
		for _, f := range cmd.Flags {
			b.WriteString(fishFlag(cond, f))
		}
		if len(cmd.Args) > 0 {
			fmt.Fprintf(&b, "complete -c %s -n %q -a %q\n", binaryName, cond, strings.Join(cmd.Args, " "))
		}
		if cmd.Files {
			fmt.Fprintf(&b, "complete -c %s -n %q -F\n", binaryName, cond)
		}
	}
	return b.String()
}

func fishFlag(cond string, f flagDef) string {
	line := fmt.Sprintf("complete -c %s -n %q -l %s", binaryName, cond, f.Long)
	if f.Short != "" {
		line += " -s " + f.Short
	}
	if f.TakesValue {
		line += " -r"
		if f.FileGlob != "" {
			line += " -F"
		}
	}
	return line + fmt.Sprintf(" -d %q\n", f.Desc)
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbook-inline-mathjax completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(mdbook-inline-mathjax completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(mdbook-inline-mathjax completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    mdbook-inline-mathjax completion fish > ~/.config/fish/completions/mdbook-inline-mathjax.fish")
}
