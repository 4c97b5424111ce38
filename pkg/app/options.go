package app

import cliflag "k8s.io/component-base/cli/flag"

// NamedFlagSetOptions is implemented by a command's option set. Flags are
// grouped into named sets for help output; Complete fills derived values
// and Validate reports every invalid one.
type NamedFlagSetOptions interface {
	Flags() cliflag.NamedFlagSets
	Complete() error
	Validate() error
}
