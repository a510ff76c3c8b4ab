package provision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ejmvar/ey-cli/internal/environment"
)

var (
	// ErrInvalidRequest is returned when a request breaks the backend's rules.
	ErrInvalidRequest = errors.New("invalid provisioning request")
	// ErrUnknownFormat is returned for an unsupported plan format.
	ErrUnknownFormat = errors.New("unknown plan format")
)

var validate = validator.New()

// Format selects how a plan is rendered.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatYAML, FormatJSON:
		return f, nil
	case "":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// Request is what the provisioning backend receives for create_env.
type Request struct {
	App         string             `json:"app,omitempty" yaml:"app,omitempty"`
	Domains     []string           `json:"domains,omitempty" yaml:"domains,omitempty"`
	Environment environment.Config `json:"environment" yaml:"environment"`
}

// NewRequest builds a Request for app.
func NewRequest(app string, cfg environment.Config) Request {
	return Request{App: app, Environment: cfg}
}

// rules mirrors the values the backend accepts. Name is only enforced here,
// never during resolution.
type rules struct {
	Name          string   `validate:"required"`
	Stack         string   `validate:"omitempty,oneof=nginx_passenger3 nginx_unicorn puma thin trinidad"`
	DBStack       string   `validate:"omitempty,oneof=mysql5_0 mysql5_5 postgres9_1"`
	RubyVersion   string   `validate:"omitempty,printascii"`
	Configuration string   `validate:"required,oneof=single custom cluster"`
	Domains       []string `validate:"omitempty,dive,hostname_rfc1123"`
}

// Validate checks the request against the backend's accepted values.
func (r Request) Validate() error {
	env := r.Environment
	err := validate.Struct(rules{
		Name:          env.Name,
		Stack:         env.Stack,
		DBStack:       env.DBStack,
		RubyVersion:   env.RubyVersion,
		Configuration: string(env.ClusterConfiguration.Configuration),
		Domains:       r.Domains,
	})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		problems := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			problems = append(problems, describe(fe))
		}
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(problems, "; "))
	}
	return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
}

func describe(fe validator.FieldError) string {
	name, _, _ := strings.Cut(fe.Field(), "[")
	field := map[string]string{
		"Name":          "name",
		"Stack":         "stack",
		"DBStack":       "db_stack",
		"RubyVersion":   "ruby_version",
		"Configuration": "cluster_configuration",
		"Domains":       "url",
	}[name]

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s %q must be one of %s", field, fe.Value(), fe.Param())
	case "hostname_rfc1123":
		return fmt.Sprintf("%s %q is not a domain name", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// Provisioner creates the environment described by a request.
type Provisioner interface {
	Create(ctx context.Context, req Request) error
}

// PlanWriter is a Provisioner that renders the request instead of sending it.
type PlanWriter struct {
	out    io.Writer
	format Format
	logger *zap.Logger
}

// NewPlanWriter creates a PlanWriter rendering to out.
func NewPlanWriter(out io.Writer, format Format, logger *zap.Logger) *PlanWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanWriter{out: out, format: format, logger: logger}
}

// Create validates req and writes it in the configured format.
func (p *PlanWriter) Create(ctx context.Context, req Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	data, err := Render(req, p.format)
	if err != nil {
		return err
	}
	if _, err := p.out.Write(data); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}

	p.logger.Info("environment plan written",
		zap.String("app", req.App),
		zap.String("environment", req.Environment.Name),
		zap.String("format", string(p.format)),
	)
	return nil
}

// Render encodes req as YAML or JSON.
func Render(req Request, format Format) ([]byte, error) {
	switch format {
	case FormatYAML, "":
		data, err := yaml.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("encode YAML plan: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(req, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode JSON plan: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
