// Package catalog holds the closed value sets accepted by the create_env flags:
// the instance-size catalog and the application and database stacks.
package catalog
