package main

import (
	"errors"
	"testing"
)

func stubMain(t *testing.T, execErr error) (closed *bool, code *int) {
	t.Helper()
	origExecute := executeCmd
	origCloseLogging := closeLogging
	origExit := exit
	t.Cleanup(func() {
		executeCmd = origExecute
		closeLogging = origCloseLogging
		exit = origExit
	})

	closed = new(bool)
	code = new(int)
	*code = -1
	executeCmd = func() error { return execErr }
	closeLogging = func() error {
		*closed = true
		return nil
	}
	exit = func(c int) { *code = c }
	return closed, code
}

func TestMainWiring(t *testing.T) {
	closed, code := stubMain(t, nil)

	main()

	if !*closed {
		t.Fatal("expected logging to be closed")
	}
	if *code != -1 {
		t.Fatalf("expected no exit call on success, got %d", *code)
	}
}

func TestMainClosesLoggingBeforeExitOnError(t *testing.T) {
	closed, code := stubMain(t, errors.New("boom"))

	main()

	if !*closed {
		t.Fatal("expected logging to be closed on failure")
	}
	if *code != 1 {
		t.Fatalf("expected exit code 1, got %d", *code)
	}
}
