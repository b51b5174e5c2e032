package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	meErr    error

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(context.Context) error {
	f.calls = append(f.calls, "signup")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Me(context.Context) error {
	f.calls = append(f.calls, "me")
	return f.meErr
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"signup",
		"",
		"me",
		"logout",
		"login extra args",
		"foobar",
		"exit",
		"me",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(input))

	want := []string{"signup", "me", "logout", "login"}
	if fmt.Sprint(exec.calls) != fmt.Sprint(want) {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
}

func TestRunREPL_HelpDependsOnState(t *testing.T) {
	lines := capturePrintln(t)

	input := strings.NewReader("help\nlogin\nhelp\nquit\n")
	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewReader(input))

	var helps []string
	for _, l := range *lines {
		if strings.HasPrefix(l, "Available commands:") {
			helps = append(helps, l)
		}
	}
	if len(helps) != 2 || helps[0] == helps[1] {
		t.Fatalf("help output should differ before and after login: %v", helps)
	}
	if (*lines)[len(*lines)-1] != "Bye!" {
		t.Fatalf("expected farewell, got %v", *lines)
	}
}

func TestRunREPL_ReportsErrorsAndContinues(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{meErr: errors.New("boom")}
	input := strings.NewReader("me\nlogout") // last line without newline still runs
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(input))

	if len(exec.calls) != 2 {
		t.Fatalf("calls = %v", exec.calls)
	}
	found := false
	for _, l := range *lines {
		if l == "Error: boom" {
			found = true
		}
	}
	if !found {
		t.Fatalf("error not reported: %v", *lines)
	}
}
