package catalog

import "slices"

var instanceSizes = []string{
	"m1.small", "m1.large", "m1.xlarge",
	"m2.xlarge", "m2.2xlarge", "m2.4xlarge",
	"c1.medium", "c1.xlarge",
}

var appStacks = []string{"passenger", "unicorn", "puma", "thin", "trinidad"}

// dbStacks holds the short names users type plus the backend spellings that
// pass through resolution untouched.
var dbStacks = []string{"mysql", "postgresql", "mysql5_0", "mysql5_5", "postgres9_1"}

// InstanceSizes returns a copy of the instance-size catalog in its canonical order.
func InstanceSizes() []string {
	return clone(instanceSizes)
}

// IsInstanceSize reports whether size belongs to the catalog.
func IsInstanceSize(size string) bool {
	return slices.Contains(instanceSizes, size)
}

// AppStacks returns a copy of the application-server stacks accepted by --stack.
func AppStacks() []string {
	return clone(appStacks)
}

// DBStacks returns a copy of the database stacks accepted by --db_stack.
func DBStacks() []string {
	return clone(dbStacks)
}

func clone(src []string) []string {
	out := make([]string, len(src))
	copy(out, src)
	return out
}
