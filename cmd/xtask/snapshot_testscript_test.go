package main

import (
	"testing"

	"github.com/amonks/xtask/internal/testsupport"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestSnapshotScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/snapshot",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
	})
}
