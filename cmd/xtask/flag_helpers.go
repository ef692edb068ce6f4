package main

import "github.com/spf13/pflag"

type snapshotOptions struct {
	overwrite bool
}

func addSnapshotFlags(flags *pflag.FlagSet, opts *snapshotOptions) {
	flags.BoolVar(&opts.overwrite, "overwrite", false, "Overwrite the expected output instead of comparing it")
}

type listOptions struct {
	json bool
}

func addListFlags(flags *pflag.FlagSet, opts *listOptions) {
	flags.BoolVar(&opts.json, "json", false, "Output as JSON")
}
