// Package fmeaskema provides the validation core for the engineering-analysis
// data contracts (document upload, requirements analysis, DFMEA and PFMEA):
//
//   - Type-safe parsing of untyped JSON trees into typed values via Schema[T]
//   - A stable error model via Issues (JSON Pointer, code, message, params)
//   - Unknown-key policies: strict, strip, warn-and-strip for top-level records,
//     passthrough for open "extra" payloads
//   - Source-driven decoding with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep only the core model in the root package; implementations live under internal/.
// - Schema construction lives under dsl/, the contracts themselves under contracts/.
// - Validation is pure: no shared mutable state between calls apart from warning sinks.
//
// Typical usage:
//
//	v, err := fmeaskema.ParseFrom(ctx, s, fmeaskema.JSONBytes(data))
//
//	col := &fmeaskema.WarningCollector{}
//	ctx = fmeaskema.WithWarningSink(ctx, col.Add)
//	v, err = s.Parse(ctx, raw)
package fmeaskema
