package main

import (
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/trmn/academy/internal/testsupport"
)

func TestCourseScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/course",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"envset":      testsupport.CmdEnvSet,
			"progresshas": testsupport.CmdProgressHas,
		},
	})
}

func TestPinScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/pin",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
	})
}

func TestImportScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/import",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"progresshas": testsupport.CmdProgressHas,
		},
	})
}

func TestCatalogScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/catalog",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
	})
}
