package main

import (
	"strings"

	"github.com/amonks/xtask/internal/command"
	"github.com/amonks/xtask/internal/config"
	"github.com/amonks/xtask/internal/report"
	"github.com/amonks/xtask/internal/ui"
	"github.com/amonks/xtask/snapshot"
	"github.com/spf13/cobra"
)

var snapshotOpts snapshotOptions
var listOpts listOptions

// test-snapshot
var testSnapshotCmd = &cobra.Command{
	Use:       "test-snapshot [name]",
	Short:     "Run snapshot tests or optionally overwrite the expected output",
	Long:      "Run every snapshot test, or only the named one, and compare its output with the checked-in golden file.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: snapshot.Default().Names(),
	RunE:      runTestSnapshot,
}

// list-snapshots
var listSnapshotsCmd = &cobra.Command{
	Use:   "list-snapshots",
	Short: "List the snapshot test cases",
	Args:  cobra.NoArgs,
	RunE:  runListSnapshots,
}

func init() {
	rootCmd.AddCommand(testSnapshotCmd, listSnapshotsCmd)
	addSnapshotFlags(testSnapshotCmd.Flags(), &snapshotOpts)
	addListFlags(listSnapshotsCmd.Flags(), &listOpts)
}

func runTestSnapshot(cmd *cobra.Command, args []string) error {
	selection := snapshot.Selection{Overwrite: snapshotOpts.overwrite}
	if len(args) > 0 {
		// Reject unknown names before touching the repository.
		c, err := snapshot.Default().Lookup(args[0])
		if err != nil {
			return err
		}
		selection.Case = c.Name
	}

	repoPath, err := getRepoPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(repoPath)
	if err != nil {
		return err
	}

	suite, err := snapshot.New(repoPath, cfg, command.New(cmd.ErrOrStderr()), snapshot.NewConsoleReporter(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	summary, err := suite.Run(selection)
	if err != nil {
		return err
	}

	var collector report.Collector
	collectSnapshotFailures(&collector, summary)
	return collector.Err()
}

func collectSnapshotFailures(collector *report.Collector, summary snapshot.Summary) {
	for _, result := range summary.Results {
		if result.Failed() {
			collector.Add(snapshot.Category, result.Err)
		}
	}
}

type snapshotCaseJSON struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Features []string `json:"features"`
	Target   string   `json:"target,omitempty"`
	Source   string   `json:"source"`
	Golden   string   `json:"golden"`
}

func runListSnapshots(cmd *cobra.Command, args []string) error {
	cases := snapshot.Default().Cases()

	if listOpts.json {
		out := make([]snapshotCaseJSON, 0, len(cases))
		for _, c := range cases {
			features := c.Features
			if features == nil {
				features = []string{}
			}
			out = append(out, snapshotCaseJSON{
				Name:     c.Name,
				Kind:     string(c.Kind),
				Features: features,
				Target:   c.Target,
				Source:   c.Source(),
				Golden:   c.Golden(),
			})
		}
		return encodeJSON(cmd.OutOrStdout(), out)
	}

	table := ui.NewTableBuilder([]string{"NAME", "KIND", "FEATURES", "GOLDEN"}, len(cases))
	for _, c := range cases {
		features := strings.Join(c.Features, ",")
		if features == "" {
			features = "-"
		}
		table.AddRow(c.Name, string(c.Kind), features, c.Golden())
	}
	_, err := cmd.OutOrStdout().Write([]byte(table.String()))
	return err
}
