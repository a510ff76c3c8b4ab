// Package environment resolves parsed create_env flags into the Config
// consumed by the provisioning backend: name fallback, stack and db stack
// aliases, and the cluster configuration variant.
package environment
