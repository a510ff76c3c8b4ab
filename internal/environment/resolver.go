package environment

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ejmvar/ey-cli/internal/flags"
)

const (
	soloNotice = "~> creating solo environment"

	jrubyVersion = "JRuby"
)

var stackAliases = map[string]string{
	"passenger": "nginx_passenger3",
	"unicorn":   "nginx_unicorn",
}

var dbStackAliases = map[string]string{
	"mysql":      "mysql5_0",
	"postgresql": "postgres9_1",
}

// sizingFlags select a Single or Custom cluster configuration when present.
var sizingFlags = []string{flags.AppInstances, flags.DBInstances, flags.AppSize, flags.DBSize}

type resolver struct {
	out    io.Writer
	logger *zap.Logger
}

// Option configures the resolver.
type Option func(*resolver)

// WithLogger attaches a logger for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(r *resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Resolver that writes user-facing notices to out.
func New(out io.Writer, opts ...Option) Resolver {
	if out == nil {
		out = io.Discard
	}
	r := &resolver{
		out:    out,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *resolver) Resolve(f flags.Flags, d Defaults) (Config, error) {
	if err := checkContract(f); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Name:         d.EnvName,
		FrameworkEnv: stringFlag(f, flags.FrameworkEnv),
		Stack:        stringFlag(f, flags.Stack),
		DBStack:      stringFlag(f, flags.DBStack),
		RubyVersion:  d.RubyVersion,
	}
	if name, ok := f.Get(flags.Name).AsString(); ok {
		cfg.Name = name
	}

	// trinidad keeps its name but overrides any ruby version already set.
	if cfg.Stack != "" {
		if alias, ok := stackAliases[cfg.Stack]; ok {
			cfg.Stack = alias
		} else if cfg.Stack == "trinidad" {
			cfg.RubyVersion = jrubyVersion
		}
	}

	if cfg.DBStack != "" {
		if alias, ok := dbStackAliases[cfg.DBStack]; ok {
			cfg.DBStack = alias
		}
	}

	cluster, err := r.clusterConfiguration(f)
	if err != nil {
		return Config{}, err
	}
	cfg.ClusterConfiguration = cluster

	r.logger.Debug("resolved environment options",
		zap.String("name", cfg.Name),
		zap.String("stack", cfg.Stack),
		zap.String("db_stack", cfg.DBStack),
		zap.String("ruby_version", cfg.RubyVersion),
		zap.String("configuration", string(cfg.ClusterConfiguration.Configuration)),
	)

	return cfg, nil
}

func (r *resolver) clusterConfiguration(f flags.Flags) (ClusterConfig, error) {
	solo, _ := f.Get(flags.Solo).AsBool()

	sized := solo
	for _, name := range sizingFlags {
		if f.Has(name) {
			sized = true
			break
		}
	}
	if !sized {
		return Cluster(), nil
	}
	if !solo {
		return Custom(f), nil
	}

	if err := r.notify(soloNotice); err != nil {
		return ClusterConfig{}, err
	}
	return Single(f), nil
}

// notify writes a line to the user-facing channel and flushes it.
func (r *resolver) notify(line string) error {
	if _, err := fmt.Fprintln(r.out, line); err != nil {
		return fmt.Errorf("write notice: %w", err)
	}
	// Unbuffered writers such as os.Stdout need nothing more.
	if w, ok := r.out.(interface{ Flush() error }); ok {
		if err := w.Flush(); err != nil {
			return fmt.Errorf("flush notice: %w", err)
		}
	}
	return nil
}

func checkContract(f flags.Flags) error {
	for _, name := range f.Names() {
		value := f.Get(name)
		spec, ok := flags.Lookup(name)
		if !ok {
			return &ContractError{Flag: name, Reason: "is not a recognized flag"}
		}
		if value.Kind() != spec.Kind {
			return &ContractError{
				Flag:   name,
				Reason: fmt.Sprintf("holds a %s value, want %s", value.Kind(), spec.Kind),
			}
		}
	}
	return nil
}

func stringFlag(f flags.Flags, name string) string {
	s, _ := f.Get(name).AsString()
	return s
}
