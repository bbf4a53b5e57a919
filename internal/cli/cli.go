// Package cli implements the fmeaskema command-line interface.
//
// The commands validate documents against the registered contract models:
//   - validate: parse a JSON or YAML document with one model and print the
//     normalized JSON, or an issue report and a non-zero exit
//   - models: list the registered model keys
//   - schema: print the JSON Schema of a model
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context.
package cli
