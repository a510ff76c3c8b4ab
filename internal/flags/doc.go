// Package flags parses the create_env command line. Every recognized flag is
// declared once in a static table with its type and constraint; parsing is
// delegated to kingpin and each raw token is decoded into a tagged Value.
// Failures are reported as *FlagError values that unwrap to one of the
// package sentinels.
package flags
