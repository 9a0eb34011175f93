// Package validator validates a key/value Context against an ordered list of
// declarative rule specifications and produces a validated Context plus a
// list of human readable error messages.
//
// # Rules
//
// A Spec binds a rule Kind and its Params to a key. The Registry turns a Spec
// into a Rule bound to the value found under that key. Every rule follows
// the same three-state protocol:
//
//   - StatusCheck: the shared empty/required step passed and the rule
//     specific check must run
//   - StatusValid: the value is accepted; Value returns the (possibly
//     trimmed, cast or decoded) value
//   - StatusError: the value is rejected; ErrorMessage returns the rendered
//     message
//
// Empty values (nil or "" for scalar rules, nil or an empty collection for
// array, choices and collection rules) pass unless the rule is required.
//
// The composite kinds "and", "or" and "collection" build nested rules from
// their "rules" parameter and report nested errors verbatim.
//
// # Messages
//
// Messages are patterns keyed by error code with %key%, %value% and rule
// specific placeholders. A rule's "messages" parameter wins over messages
// set with WithMessages, which win over the built-in defaults.
//
// # Usage
//
//	v := validator.New(validator.Context{"age": "17"}, []validator.Spec{
//	    {Key: "age", Kind: validator.KindNumeric, Params: validator.Params{"min": 18, "cast": true}},
//	})
//	ok, err := v.Validate()
//	if err != nil {
//	    // the rule list is misconfigured
//	}
//	if !ok {
//	    fmt.Println(v.ImplodedErrors("\n"))
//	}
//
// # Errors
//
// Bad input never produces a Go error. Broken specifications do: unknown
// kinds, missing or invalid parameters are reported by Registry.Build,
// Validator.Validate and CheckSpecs, wrapping ErrUnknownKind,
// ErrMissingParam or ErrInvalidParam.
//
// A Validator is not safe for concurrent use. Registries are.
package validator
