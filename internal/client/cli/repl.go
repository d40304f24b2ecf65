package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/quotekeeper/internal/client/errclass"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the loop needs. App satisfies it.
type execIface interface {
	Exec(ctx context.Context, cmd string, args []string) error
}

const helpText = "Available commands: (l)ist, show, create-quote, create-template, create-profile, " +
	"rename-template, attach-pdf, delete, edit-profile, set, save, status, exit"

// runREPL reads commands from scanner until EOF, "exit" or "quit" and hands
// each one to a. Errors are reported and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("qk %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			printlnFn(helpText)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			if err := a.Exec(ctx, parts[0], parts[1:]); err != nil {
				printlnFn(describe(err))
			}
		}
	}
}

// describe formats err for the user. Store failures are shown with their
// class and user-facing message.
func describe(err error) string {
	if errors.Is(err, errUsage) {
		return err.Error()
	}
	var ce *errclass.Error
	if errors.As(err, &ce) {
		return fmt.Sprintf("Error [%s]: %s", ce.Kind, ce.Message)
	}
	return "Error: " + err.Error()
}

// Run executes args as a single command when present, otherwise it starts
// the interactive loop on scanner.
func (a *App) Run(ctx context.Context, args []string, scanner *bufio.Scanner) error {
	if len(args) > 0 {
		if err := a.Exec(ctx, args[0], args[1:]); err != nil {
			return errors.New(describe(err))
		}
		return nil
	}
	printlnFn("Welcome to QuoteKeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.Status, scanner)
	return nil
}
