package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Categories(ctx context.Context) error
	AddCategory(ctx context.Context) error
	EditCategory(ctx context.Context) error
	DeleteCategory(ctx context.Context) error
	Transactions(ctx context.Context) error
	AddTransaction(ctx context.Context) error
	DeleteTransaction(ctx context.Context) error
	Budget(ctx context.Context) error
	SetBudget(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// It returns on EOF, ctx cancellation, or "exit"/"quit".
//
//	Not logged in: help, register, login, exit | quit
//	Logged in:     help, categories (c), addcategory, editcategory,
//	               delcategory, transactions (t), addtransaction,
//	               deltransaction, budget (b), setbudget, logout, exit | quit
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("et %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (c)ategories, addcategory, editcategory, delcategory, (t)ransactions, addtransaction, deltransaction, (b)udget, setbudget, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "c", "categories":
			cmdErr = a.Categories(ctx)

		case "addcategory":
			cmdErr = a.AddCategory(ctx)

		case "editcategory":
			cmdErr = a.EditCategory(ctx)

		case "delcategory":
			cmdErr = a.DeleteCategory(ctx)

		case "t", "transactions":
			cmdErr = a.Transactions(ctx)

		case "addtransaction":
			cmdErr = a.AddTransaction(ctx)

		case "deltransaction":
			cmdErr = a.DeleteTransaction(ctx)

		case "b", "budget":
			cmdErr = a.Budget(ctx)

		case "setbudget":
			cmdErr = a.SetBudget(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr.Error())
		}
	}
}
