package flags

import (
	"errors"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/alecthomas/kingpin/v2"
)

const (
	defaultCommandName = "create_env"
	defaultCommandHelp = "Create a new environment for an application."
)

var (
	unknownFlagPattern  = regexp.MustCompile(`^unknown (?:long|short) flag '([^']+)'`)
	missingValuePattern = regexp.MustCompile(`^expected argument for flag '([^']+)'`)
	unexpectedPattern   = regexp.MustCompile(`^unexpected (?:argument )?'?([^']*)'?`)
	negativePattern     = regexp.MustCompile(`^-[0-9]+$`)
)

// builtinFlags are registered by every kingpin application. None of them is
// a create_env flag, and the generators print to os.Stdout directly.
var builtinFlags = map[string]bool{
	"help-long":              true,
	"help-man":               true,
	"completion-bash":        true,
	"completion-script-bash": true,
	"completion-script-zsh":  true,
	"no-help":                true,
}

func init() {
	// Tokens starting with @ are values, never files to read.
	kingpin.EnableFileExpansion = false
}

// Parser turns create_env command-line tokens into Flags.
type Parser struct {
	name  string
	help  string
	usage io.Writer
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithUsageWriter sets where usage text goes when --help is given.
func WithUsageWriter(w io.Writer) ParserOption {
	return func(p *Parser) {
		p.usage = w
	}
}

// WithCommandName overrides the command name shown in usage text.
func WithCommandName(name string) ParserOption {
	return func(p *Parser) {
		p.name = name
	}
}

// NewParser constructs a Parser. Usage text is discarded unless a writer is set.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		name:  defaultCommandName,
		help:  defaultCommandHelp,
		usage: io.Discard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses args with a default Parser.
func Parse(args []string) (Flags, error) {
	return NewParser().Parse(args)
}

// Parse validates every token against the flag table. The returned Flags
// holds one entry per supplied flag plus the solo default.
func (p *Parser) Parse(args []string) (Flags, error) {
	if err := precheck(args); err != nil {
		return nil, err
	}

	result := Flags{}
	helpRequested := false

	app := kingpin.New(p.name, p.help).
		UsageWriter(p.usage).
		ErrorWriter(p.usage).
		UsageFuncs(template.FuncMap{"FlagsToTwoColumns": usageRows}).
		Terminate(func(int) { helpRequested = true })
	app.HelpFlag.Help("Show this help.")

	for _, spec := range table {
		clause := app.Flag(spec.Name, spec.Help)
		if spec.PlaceHolder != "" {
			clause = clause.PlaceHolder(spec.PlaceHolder)
		}
		if spec.Default != "" {
			clause = clause.Default(spec.Default)
		}
		clause.SetValue(&flagValue{spec: spec, into: result})
	}

	_, err := app.Parse(args)
	if helpRequested {
		return nil, ErrHelpRequested
	}
	if err != nil {
		return nil, translate(err)
	}
	return result, nil
}

// precheck rejects what kingpin would otherwise accept or misread: its own
// builtin flags, and a negative count given as a separate token, which
// kingpin takes for a short flag.
func precheck(args []string) error {
	for i, arg := range args {
		if arg == "--" {
			return nil
		}
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		name, _, inline := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if builtinFlags[name] || builtinFlags[strings.TrimPrefix(name, "no-")] {
			return newFlagError(ErrUnrecognizedFlag, name, "--"+name, nil)
		}
		if inline || i+1 >= len(args) || !negativePattern.MatchString(args[i+1]) {
			continue
		}
		if spec, ok := Lookup(name); ok && spec.Kind == KindInt {
			return newFlagError(ErrTypeMismatch, name, args[i+1], nil)
		}
	}
	return nil
}

// usageRows renders the Flags section. Every flag tolerates repeats, but
// only the last occurrence counts, so no flag is shown as a list.
func usageRows(models []*kingpin.FlagModel) [][2]string {
	rows := [][2]string{}
	for _, flag := range models {
		if flag.Hidden {
			continue
		}
		var usage string
		switch {
		case flag.Name == "help":
			usage = "--help"
		case flag.IsBoolFlag():
			usage = "--[no-]" + flag.Name
		default:
			usage = "--" + flag.Name + "=" + flag.FormatPlaceHolder()
		}
		rows = append(rows, [2]string{usage, flag.HelpWithEnvar()})
	}
	return rows
}

// translate maps kingpin's structural parse errors onto the flag taxonomy.
// Errors raised by flagValue.Set are already typed and pass through.
func translate(err error) error {
	var flagErr *FlagError
	if errors.As(err, &flagErr) {
		return flagErr
	}

	msg := err.Error()
	if m := unknownFlagPattern.FindStringSubmatch(msg); m != nil {
		return newFlagError(ErrUnrecognizedFlag, strings.TrimLeft(m[1], "-"), m[1], nil)
	}
	if m := missingValuePattern.FindStringSubmatch(msg); m != nil {
		return newFlagError(ErrMissingValue, strings.TrimLeft(m[1], "-"), "", nil)
	}
	if m := unexpectedPattern.FindStringSubmatch(msg); m != nil {
		return newFlagError(ErrUnexpectedArgument, "", m[1], nil)
	}
	return err
}
