package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/quotekeeper/internal/client/errclass"
	"github.com/stretchr/testify/assert"
)

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

type fakeExec struct {
	calls []string
	err   error
}

func (f *fakeExec) Exec(_ context.Context, cmd string, args []string) error {
	f.calls = append(f.calls, strings.Join(append([]string{cmd}, args...), " "))
	return f.err
}

func TestRunREPL_DispatchesUntilQuit(t *testing.T) {
	lines := capturePrintln(t)
	exec := &fakeExec{}
	sc := bufio.NewScanner(strings.NewReader("help\n\nlist quote\nshow quote 1\nquit\nlist never\n"))

	runREPL(context.Background(), exec, func() string { return "u1" }, sc)

	assert.Equal(t, []string{"list quote", "show quote 1"}, exec.calls)
	assert.Contains(t, *lines, helpText)
	assert.Contains(t, *lines, "qk u1> ")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_ReportsErrorsAndStopsAtEOF(t *testing.T) {
	lines := capturePrintln(t)
	exec := &fakeExec{err: errors.New("boom")}
	sc := bufio.NewScanner(strings.NewReader("list quote"))

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	assert.Contains(t, *lines, "Error: boom")
	assert.Len(t, exec.calls, 1)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "usage: save", describe(usage("save")))
	assert.Equal(t, "Error: plain", describe(errors.New("plain")))

	classified := errclass.Classify(&errclass.StoreError{Code: errclass.CodeUniqueViolation, Message: "dup"})
	assert.Equal(t, "Error [VALIDATION]: A record with this name already exists.", describe(fmt.Errorf("wrap: %w", classified)))
}
