package validator

import "go.uber.org/multierr"

// CheckSpecs builds every rule of specs without a value and returns all
// construction errors at once. A nil registry means DefaultRegistry.
func CheckSpecs(reg *Registry, specs []Spec) error {
	if reg == nil {
		reg = DefaultRegistry()
	}

	var err error
	for _, spec := range specs {
		if _, buildErr := reg.Build(spec, nil); buildErr != nil {
			err = multierr.Append(err, buildErr)
		}
	}

	return err
}
