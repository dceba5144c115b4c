package core

import (
	"bytes"
	"strings"
	"testing"
)

func TestAssert_PanicsWithContractError(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Expected panic on failed assertion")
		}
		ce, ok := r.(ContractError)
		if !ok {
			t.Fatalf("Expected ContractError, got %T", r)
		}
		if !strings.Contains(ce.Error(), "entity 7 out of range") {
			t.Errorf("Unexpected message: %q", ce.Error())
		}
	}()

	Assert(true, "never raised")
	Assert(false, "entity %d out of range", 7)
}

func TestHandleCrash_RunsHookAndExits(t *testing.T) {
	var out bytes.Buffer
	exitCode := -1
	hookRan := false

	prevOut, prevExit := crashOut, crashExit
	crashOut = &out
	crashExit = func(code int) { exitCode = code }
	defer func() {
		crashOut = prevOut
		crashExit = prevExit
	}()
	SetCrashHook(func() { hookRan = true })

	HandleCrash("boom")

	if !hookRan {
		t.Error("Expected crash hook to run")
	}
	if exitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "CRASH DETECTED: boom") {
		t.Errorf("Expected crash banner, got %q", out.String())
	}
}

func TestHandleCrash_NilIsNoop(t *testing.T) {
	called := false
	prevExit := crashExit
	crashExit = func(int) { called = true }
	defer func() { crashExit = prevExit }()

	HandleCrash(nil)
	if called {
		t.Error("Expected no exit for nil recover value")
	}
}
