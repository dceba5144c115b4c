package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

var (
	crashMu   sync.Mutex
	crashHook func()
	crashOut  io.Writer = os.Stderr
	crashExit           = os.Exit
)

// SetCrashHook registers cleanup to run before a crash report is printed
// The viewer uses it to restore the terminal
func SetCrashHook(fn func()) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashHook = fn
}

// HandleCrash is the unified panic handler that runs the crash hook and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	hook := crashHook
	crashHook = nil
	crashMu.Unlock()

	if hook != nil {
		hook()
	}

	fmt.Fprintf(crashOut, "\nCRASH DETECTED: %v\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\n%s\n", debug.Stack())

	crashExit(1)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword so crashes restore the terminal
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
