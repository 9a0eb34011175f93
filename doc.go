// Package formguard is a declarative field validation engine.
//
// A list of rule specifications, written in Go or loaded from JSON or YAML,
// is applied to a key/value context taken from a form, a JSON body or any
// other input. Each rule checks, normalizes and possibly rewrites one value;
// the result is a validated context plus readable error messages.
//
// The module is organized in packages:
//
//   - pkg/validator: rule kinds, the registry and the Validator
//   - pkg/rulespec: JSON and YAML rule documents, from files, fs.FS or Redis
//   - pkg/i18n: per-locale message catalogs
//   - pkg/binder: HTTP request binding and a validating middleware
//   - pkg/sanitizer: text filters used by the string_cleaner rule
//   - pkg/redis: connection helpers and a shared rule store
//   - pkg/config, pkg/logger, pkg/cache: supporting infrastructure
//
// Basic usage:
//
//	v := validator.New(validator.Context{"email": "bob"}, []validator.Spec{
//		{Key: "email", Kind: validator.KindEmail, Params: validator.Params{"required": true}},
//	})
//	if ok, err := v.Validate(); err == nil && !ok {
//		fmt.Println(v.ImplodedErrors("\n"))
//	}
package formguard
