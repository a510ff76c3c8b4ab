package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/ejmvar/ey-cli/internal/environment"
	"github.com/ejmvar/ey-cli/internal/flags"
)

func validConfig() environment.Config {
	return environment.Config{
		Name:         "shop_production",
		FrameworkEnv: "production",
		Stack:        "nginx_unicorn",
		DBStack:      "postgres9_1",
		ClusterConfiguration: environment.Custom(flags.Flags{
			flags.AppInstances: flags.Int(3),
			flags.DBInstances:  flags.Int(2),
		}),
	}
}

func TestValidateAcceptsResolvedConfig(t *testing.T) {
	t.Parallel()

	if err := NewRequest("shop", validConfig()).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsInvalidRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*environment.Config)
		wantMsg string
	}{
		{name: "MissingName", mutate: func(c *environment.Config) { c.Name = "" }, wantMsg: "name is required"},
		{name: "UnaliasedStack", mutate: func(c *environment.Config) { c.Stack = "passenger" }, wantMsg: "stack"},
		{name: "UnaliasedDBStack", mutate: func(c *environment.Config) { c.DBStack = "mysql" }, wantMsg: "db_stack"},
		{name: "MissingTopology", mutate: func(c *environment.Config) { c.ClusterConfiguration = environment.ClusterConfig{} }, wantMsg: "cluster_configuration"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := NewRequest("shop", cfg).Validate()
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("expected %q in %q", tc.wantMsg, err.Error())
			}
		})
	}
}

func TestValidateDomains(t *testing.T) {
	t.Parallel()

	req := NewRequest("shop", validConfig())
	req.Domains = []string{"shop.example.com", "www.shop.example.com"}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req.Domains = []string{"shop.example.com", "not a host"}
	err := req.Validate()
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if !strings.Contains(err.Error(), `url "not a host" is not a domain name`) {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestPlanWriterRendersYAML(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	writer := NewPlanWriter(&out, FormatYAML, zaptest.NewLogger(t))
	if err := writer.Create(context.Background(), NewRequest("shop", validConfig())); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	plan := out.String()
	for _, line := range []string{
		"app: shop",
		"name: shop_production",
		"stack: nginx_unicorn",
		"configuration: custom",
		"app_instances: 3",
	} {
		if !strings.Contains(plan, line) {
			t.Fatalf("expected %q in plan:\n%s", line, plan)
		}
	}
}

func TestPlanWriterRendersJSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg := validConfig()
	cfg.ClusterConfiguration = environment.Cluster()
	if err := NewPlanWriter(&out, FormatJSON, nil).Create(context.Background(), NewRequest("shop", cfg)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	var body struct {
		App         string `json:"app"`
		Environment struct {
			Name    string         `json:"name"`
			DBStack string         `json:"db_stack"`
			Cluster map[string]any `json:"cluster_configuration"`
		} `json:"environment"`
	}
	if err := json.Unmarshal(out.Bytes(), &body); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if body.App != "shop" || body.Environment.Name != "shop_production" || body.Environment.DBStack != "postgres9_1" {
		t.Fatalf("unexpected plan %+v", body)
	}
	if len(body.Environment.Cluster) != 1 || body.Environment.Cluster["configuration"] != "cluster" {
		t.Fatalf("expected bare cluster configuration, got %v", body.Environment.Cluster)
	}
}

func TestPlanWriterRejectsInvalidRequestWithoutWriting(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg := validConfig()
	cfg.Name = ""
	err := NewPlanWriter(&out, FormatYAML, nil).Create(context.Background(), NewRequest("shop", cfg))
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", out.String())
	}
}

func TestPlanWriterHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewPlanWriter(&bytes.Buffer{}, FormatYAML, nil).Create(ctx, NewRequest("shop", validConfig()))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]Format{"": FormatYAML, "yaml": FormatYAML, " JSON ": FormatJSON}
	for raw, want := range tests {
		got, err := ParseFormat(raw)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
