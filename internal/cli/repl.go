package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Import(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Move(ctx context.Context, args []string) error
	Shelve(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	SetPage(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop over the desks.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//   - help                — show available commands
//   - import [desk] <f>…  — copy documents into the library and onto a desk
//   - list | l            — print all desks and their cards
//   - move <id> <x> <y>   — reposition a card (drag-end)
//   - shelve <id> <desk>  — move a card to another desk
//   - rm <id>             — delete a card
//   - open <id>           — print the document path and remembered page
//   - page <id> <n>       — remember the last-viewed page
//   - exit | quit         — leave the program
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors to the user.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("bookdesk> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: import, (l)ist, move, shelve, rm, open, page, exit")

		case "import":
			_ = a.Import(ctx, args)

		case "l", "list":
			_ = a.List(ctx)

		case "move":
			_ = a.Move(ctx, args)

		case "shelve":
			_ = a.Shelve(ctx, args)

		case "rm":
			_ = a.Remove(ctx, args)

		case "open":
			_ = a.Open(ctx, args)

		case "page":
			_ = a.SetPage(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
