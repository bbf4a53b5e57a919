// Package dsl provides the schema builder used to declare fmeaskema contracts.
//
// Overview
//   - Builder API: declare JSON object semantics (aliases/unknown/required/default/refine) with
//     Object()/Field()/Alias()/Required()/UnknownWarn()/MustBuild().
//   - Typed build: project wire -> T with Bind[T](Object()...) or MustBind[T].
//   - Primitives: String()/URL()/Bool()/Int64(), closed enumerations IntEnum/StringEnum.
//   - Containers: Array(elem), Map(elem), MapAny(), TaggedUnion[U](discriminator).
//   - AnyAdapter: adapt an existing Schema[T] via SchemaOf[T](s) to embed it into builders.
//
// # Unknown keys
//
// Every object resolves, once at Build, the set of wire keys it accepts: canonical
// field names, every Alias and the first segment of every AliasPath. Input keys
// outside that set are handled by the object's policy:
//
//	UnknownStrict       unknown_key issue per key
//	UnknownStrip        dropped
//	UnknownWarn         dropped; one fmeaskema.Warning naming the model, record path and keys
//	UnknownPassthrough  kept with their original values (Bind stores them in the extras field)
//
// The policy applies to the immediate record only; nested objects apply their own.
//
// Quickstart
//
//	type Link struct {
//		FromID int64 `json:"from" fmeaskema:"name=fromId"`
//		ToID   int64 `json:"to" fmeaskema:"name=toId"`
//	}
//
//	var linkSchema = dsl.MustBind[Link](dsl.Object().Named("NetworkLink").
//		Field("fromId", dsl.Int64Of()).Alias("from").Required().
//		Field("toId", dsl.Int64Of()).Alias("to").Required().
//		UnknownWarn())
//
// File layout (roles)
//   - adapter.go/of_helpers.go: AnyAdapter and the Schema[T] -> AnyAdapter helpers.
//   - primitives.go: strings, URLs, booleans, integers and enumerations.
//   - object_builder.go: objectBuilder/fieldStep and Build/MustBuild.
//   - object_core.go: objectSchema (accepted keys, alias lookup, unknown policies, hooks).
//   - bind.go: typed binding onto structs (embedded promotion, pointers, extras).
//   - array.go/map_core.go: containers with eager error aggregation.
//   - union.go: TaggedUnion and Widen.
package dsl
