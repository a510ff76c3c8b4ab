package flags

import (
	"github.com/ejmvar/ey-cli/internal/catalog"
)

// Constraint names the check applied to a raw flag token.
type Constraint int

const (
	ConstraintNone Constraint = iota
	ConstraintOneOf
	ConstraintInstanceSize
)

// Spec declares a recognized flag: its type, constraint and help text.
type Spec struct {
	Name        string
	Help        string
	PlaceHolder string
	Kind        Kind
	Constraint  Constraint
	Allowed     []string
	Default     string
}

// TakesValue reports whether the flag consumes a value token.
func (s Spec) TakesValue() bool {
	return s.Kind != KindBool
}

// Flag names recognized by the create_env command.
const (
	App          = "app"
	Name         = "name"
	FrameworkEnv = "framework_env"
	URL          = "url"
	AppInstances = "app_instances"
	DBInstances  = "db_instances"
	Solo         = "solo"
	Stack        = "stack"
	DBStack      = "db_stack"
	AppSize      = "app_size"
	DBSize       = "db_size"
)

var table = []Spec{
	{Name: App, Help: "Name of the app to create the environment for.", PlaceHolder: "NAME", Kind: KindString},
	{Name: Name, Help: "Name of the environment.", PlaceHolder: "NAME", Kind: KindString},
	{Name: FrameworkEnv, Help: "Type of the environment (production, staging...).", PlaceHolder: "ENV", Kind: KindString},
	{Name: URL, Help: "Domain name for the app. It accepts comma-separated values.", PlaceHolder: "URL", Kind: KindString},
	{Name: AppInstances, Help: "Number of application instances.", PlaceHolder: "NUMBER", Kind: KindInt},
	{Name: DBInstances, Help: "Number of database slaves.", PlaceHolder: "NUMBER", Kind: KindInt},
	{Name: Solo, Help: "A single instance for application and database.", Kind: KindBool, Default: "false"},
	{Name: Stack, Help: "App server stack, either passenger, unicorn, puma, thin or trinidad.", PlaceHolder: "STACK",
		Kind: KindString, Constraint: ConstraintOneOf, Allowed: catalog.AppStacks()},
	{Name: DBStack, Help: "DB stack, either mysql/mysql5_0, mysql5_5, or postgresql/postgres9_1.", PlaceHolder: "STACK",
		Kind: KindString, Constraint: ConstraintOneOf, Allowed: catalog.DBStacks()},
	{Name: AppSize, Help: "Size of the app instances.", PlaceHolder: "SIZE", Kind: KindString, Constraint: ConstraintInstanceSize},
	{Name: DBSize, Help: "Size of the db instances.", PlaceHolder: "SIZE", Kind: KindString, Constraint: ConstraintInstanceSize},
}

// Table returns the recognized flags in declaration order.
func Table() []Spec {
	out := make([]Spec, len(table))
	for i, spec := range table {
		spec.Allowed = append([]string(nil), spec.Allowed...)
		out[i] = spec
	}
	return out
}

// Lookup returns the declaration for name.
func Lookup(name string) (Spec, bool) {
	for _, spec := range table {
		if spec.Name == name {
			return spec, true
		}
	}
	return Spec{}, false
}
