package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/robalobadob/mastermind/internal/gen"
)

func TestRunSolve(t *testing.T) {
	var out bytes.Buffer
	if err := runSolve([]string{"-gen", "fixed", "-player", "stepper"}, &out); err != nil {
		t.Fatalf("runSolve: %v", err)
	}
	if !strings.Contains(out.String(), "secret: cgyr") || !strings.Contains(out.String(), "solved: true") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunSolveUnknownNames(t *testing.T) {
	if err := runSolve([]string{"-gen", "uniform-7"}, &bytes.Buffer{}); !errors.Is(err, gen.ErrUnknownGenerator) {
		t.Fatalf("err=%v", err)
	}
	if err := runSolve([]string{"-player", "psychic"}, &bytes.Buffer{}); err == nil {
		t.Fatal("unknown player accepted")
	}
}

func TestRunBench(t *testing.T) {
	var out bytes.Buffer
	if err := runBench(context.Background(), []string{"-gen", "uniform-2", "-n", "50", "-seed", "9"}, &out); err != nil {
		t.Fatalf("runBench: %v", err)
	}
	if !strings.Contains(out.String(), "uniform-2") || !strings.Contains(out.String(), "stepper") {
		t.Fatalf("table missing names:\n%s", out.String())
	}
}
