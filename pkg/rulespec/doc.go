// Package rulespec loads validator rule lists from JSON and YAML documents.
//
// A document is either a list of rule entries or a map holding the list
// under "rules". Every entry needs a "kind"; "key" names the context entry
// and any other field becomes a rule parameter:
//
//	rules:
//	  - key: age
//	    kind: numeric
//	    min: 18
//	    cast: true
//	  - key: tags
//	    kind: collection
//	    rules:
//	      - {key: name, kind: string, max: 20}
//
// Documents can be read from files, from an fs.FS or from Redis:
//
//	specs, err := rulespec.LoadFile(ctx, "rules/signup.yaml")
//	if err != nil {
//	    return err
//	}
//	v := validator.New(input, specs)
//
// Loaded lists are checked with validator.CheckSpecs, so a broken rule is
// reported when the document is loaded rather than on first use.
package rulespec
