package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for prompt and status output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	Create(ctx context.Context) error
	List(ctx context.Context) error
	Check(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Ping(ctx context.Context) error
}

const helpText = `Available commands:
  create                      create an account with a generated password
  (l)ist                      list active accounts
  check [username]            verify a username and password
  login [username] [method]   log in, method is credentials (default) or jwt
  delete [username]           deactivate an account
  ping                        check the server health
  exit | quit                 leave the program`

// runREPL reads one command per line and dispatches it to a. It returns
// on EOF, on exit/quit, or when ctx is done. Command errors are reported
// by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ak%s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)
		case "create":
			_ = a.Create(ctx)
		case "l", "list":
			_ = a.List(ctx)
		case "check":
			_ = a.Check(ctx, args)
		case "login":
			_ = a.Login(ctx, args)
		case "delete":
			_ = a.Delete(ctx, args)
		case "ping":
			_ = a.Ping(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
