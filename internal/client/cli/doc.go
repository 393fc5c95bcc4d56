// Package cli provides the interactive expense tracker command-line client.
//
// App wires the REST client and an interactive REPL. A background watcher
// pings the server and reports online/offline transitions.
//
// Commands cover account registration and login, category listing and
// editing, transactions per category, and the budget. Deleting a category
// asks for confirmation because it also removes its transactions.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
