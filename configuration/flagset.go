package configuration

import (
	flag "github.com/spf13/pflag"
)

// NewUnsortedFlagSet creates a FlagSet that prints its flags in the order of their definition.
func NewUnsortedFlagSet(name string, errorHandling flag.ErrorHandling) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, errorHandling)
	flagset.SortFlags = false

	return flagset
}
