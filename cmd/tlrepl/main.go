// Command tlrepl is the end-to-end example of §6's driver CLI contract
// wired into a process: an interactive REPL over internal/driver.Session
// plus a non-interactive `tlrepl run FILE.tl` mode. Grounded on the
// teacher's cmd/funxy/main.go for the file-vs-stdin argument handling and
// exit-code discipline; the teacher has no REPL front-end of its own, so
// the interactive loop itself is enriched from the wider corpus's use of
// github.com/chzyer/readline for exactly this purpose (see DESIGN.md).
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sin4auto/typelang-hm/internal/driver"
)

func main() {
	if len(os.Args) >= 3 && os.Args[1] == "run" {
		os.Exit(runFile(os.Args[2]))
	}

	rl, err := readline.New("tl> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "tlrepl: %s\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	sess := driver.NewSession()
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "tlrepl: %s\n", err)
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !dispatch(sess, line) {
			return
		}
	}
}

// runFile implements non-interactive mode: load one file, print nothing
// on success, print the error and return exit code 2 on failure — §6's
// "2: parse/type error on loaded file in non-interactive mode".
func runFile(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tlrepl: %s\n", err)
		return 2
	}
	sess := driver.NewSession()
	if err := sess.LoadText(string(src)); err != nil {
		fmt.Fprintln(os.Stderr, driver.FormatError(err))
		return 2
	}
	return 0
}

// dispatch runs one REPL input line, returning false when the session
// should end (`:quit`).
func dispatch(sess *driver.Session, line string) bool {
	switch {
	case line == ":quit":
		return false

	case line == ":defaulting":
		sess.Defaulting = !sess.Defaulting
		fmt.Printf("defaulting: %v\n", sess.Defaulting)

	case strings.HasPrefix(line, ":type "):
		cmdType(sess, strings.TrimSpace(line[len(":type "):]))

	case strings.HasPrefix(line, ":let "):
		cmdLet(sess, strings.TrimSpace(line[len(":let "):]))

	case strings.HasPrefix(line, ":load "):
		cmdLoad(sess, strings.TrimSpace(line[len(":load "):]))

	case line == ":reload":
		if sess.LastFile == "" {
			fmt.Println("error: no file has been loaded yet")
		} else {
			cmdLoad(sess, sess.LastFile)
		}

	case line == ":bindings" || strings.HasPrefix(line, ":bindings "):
		prefix := ""
		if len(line) > len(":bindings") {
			prefix = strings.TrimSpace(line[len(":bindings "):])
		}
		cmdBindings(sess, prefix)

	case strings.HasPrefix(line, ":remove "):
		name := strings.TrimSpace(line[len(":remove "):])
		sess.TypeEnv.Remove(name)
		fmt.Printf("removed %s\n", name)

	case strings.HasPrefix(line, ":"):
		fmt.Printf("unknown command: %s\n", line)

	default:
		cmdQuery(sess, line)
	}
	return true
}

// cmdQuery answers a bare expression: infer its scheme, evaluate it, and
// print `value :: type`. Neither step touches the session's own
// environments (driver.Session.EvalQuery binds only into child scopes
// it creates), so querying never shadows a later `:let`.
func cmdQuery(sess *driver.Session, expr string) {
	scheme, v, err := sess.EvalQuery(expr)
	if err != nil {
		fmt.Println(driver.FormatError(err))
		return
	}
	fmt.Printf("%s :: %s\n", driver.ShowValue(v), driver.ShowScheme(scheme, sess.Defaulting))
}

// cmdType answers `:type EXPR`: infer and print its scheme only, never
// evaluating — so `:type ?todo` reports the hole's residual type (§9)
// instead of always raising UserHole the way evaluating it would.
func cmdType(sess *driver.Session, expr string) {
	scheme, err := sess.TypeQuery(expr)
	if err != nil {
		fmt.Println(driver.FormatError(err))
		return
	}
	fmt.Println(driver.ShowScheme(scheme, sess.Defaulting))
}

// cmdLet implements `:let DEF[;DEF]*` (§6): each DEF is a binding `v
// p1…pn = e` with the `let` keyword omitted, since the command itself
// supplies it — this reattaches the keyword before handing the text to
// the same parser a `.tl` file uses.
func cmdLet(sess *driver.Session, def string) {
	parts := strings.Split(def, ";")
	for i, part := range parts {
		parts[i] = "let " + strings.TrimSpace(part)
	}
	if err := sess.LoadText(strings.Join(parts, ";")); err != nil {
		fmt.Println(driver.FormatError(err))
	}
}

func cmdLoad(sess *driver.Session, path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(driver.FormatError(err))
		return
	}
	if err := sess.LoadText(string(src)); err != nil {
		fmt.Println(driver.FormatError(err))
		return
	}
	sess.LastFile = path
	fmt.Printf("loaded %s\n", path)
}

func cmdBindings(sess *driver.Session, prefix string) {
	names := sess.TypeEnv.Names()
	sort.Strings(names)
	for _, n := range names {
		if prefix != "" && !strings.HasPrefix(n, prefix) {
			continue
		}
		fmt.Println(n)
	}
}
