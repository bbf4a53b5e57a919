// Package contracts defines the request and response models exchanged with
// the FMEA and requirements-analysis backend.
//
// Every model is registered under a stable key (see Keys and Lookup) and is
// parsed through a Validator, which:
//
//   - drops undeclared top-level fields and reports them as warnings,
//   - keeps undeclared keys of "extra" payloads in the payload's Rest map,
//   - routes analysis nodes to their concrete type by "nodeType",
//   - rejects a "nodes" filter whose entries lack an integer "uuid" before
//     looking at anything else.
//
// Failures are returned as *ValidationError; use errors.Is with
// ErrSchemaMismatch, ErrMalformedFilter or ErrMalformedInput to branch on the
// kind.
//
//	v := contracts.NewValidator(contracts.Options{})
//	res, err := contracts.Validate(ctx, v, contracts.DFMEARequestModel, body)
//	if errors.Is(err, contracts.ErrMalformedFilter) {
//		// 400
//	}
package contracts
