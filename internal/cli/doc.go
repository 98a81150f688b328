// Package cli implements the worklane command-line client: configuration
// layering, credential store selection and the subcommands built on the
// worklane SDK.
package cli
