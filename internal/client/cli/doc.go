// Package cli provides the interactive quizauth command-line client.
//
// It wires configuration, the local token store and the HTTP API client into
// a small REPL:
//
//	signup   create an account (checked locally before it is sent)
//	login    authenticate
//	me       show the signed-in identity as the server sees it
//	logout   end the session
//	help     list commands
//	exit     leave the program
//
// With the cookie transport the session lives in the HTTP client's cookie
// jar for the lifetime of the process. With the header transport the bearer
// token is kept in a SQLite file and survives restarts.
package cli
