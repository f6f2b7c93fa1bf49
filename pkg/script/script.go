// Package script runs Lisp mesh-building scripts through a sandboxed
// zygomys interpreter
package script

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/philipparndt/gomesh/pkg/mesh"
)

// DefaultTimeout bounds a single evaluation
const DefaultTimeout = 5 * time.Second

// ErrTimeout is returned when a script runs past its timeout
var ErrTimeout = errors.New("script timed out")

// EvalError is an error in the user's script
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result is the outcome of a successful run
type Result struct {
	Mesh *mesh.EditableMesh
	// Value is the printed value of the last expression
	Value string
}

// Runner evaluates scripts. Every run gets a fresh sandbox.
type Runner struct {
	Timeout time.Duration
}

// NewRunner creates a runner with DefaultTimeout
func NewRunner() *Runner {
	return &Runner{Timeout: DefaultTimeout}
}

type outcome struct {
	result Result
	err    error
}

// Run evaluates source against a copy of m. The copy is returned on success
// and m is never modified. Script errors are returned as EvalError.
func (r *Runner) Run(source string, m *mesh.EditableMesh) (Result, error) {
	target := m.Clone()
	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				ch <- outcome{err: fmt.Errorf("panic during evaluation: %v", p)}
			}
		}()
		value, err := evaluate(source, target)
		ch <- outcome{result: Result{Mesh: target, Value: value}, err: err}
	}()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return wait(ch, timeout)
}

// wait returns the first outcome on ch, or ErrTimeout. A timed out
// evaluation keeps running on its private copy until it ends.
func wait(ch <-chan outcome, timeout time.Duration) (Result, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case o := <-ch:
		if o.err != nil {
			return Result{}, o.err
		}
		return o.result, nil
	case <-timer.C:
		return Result{}, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
}

func evaluate(source string, m *mesh.EditableMesh) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, m)

	if err := env.LoadString(preprocess(source)); err != nil {
		return "", toEvalError(err)
	}
	value, err := env.Run()
	if err != nil {
		return "", toEvalError(err)
	}
	return value.SexpString(nil), nil
}

var linePattern = regexp.MustCompile(`(?i)line (\d+):\s*(.*)`)

func toEvalError(err error) EvalError {
	msg := strings.TrimSpace(err.Error())
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return EvalError{Line: line, Message: strings.TrimSpace(m[2])}
	}
	return EvalError{Message: msg}
}

// preprocess rewrites ; comments to // and kebab-case names to snake_case,
// leaving string literals alone. zygomys reads a-b as subtraction.
func preprocess(source string) string {
	var out strings.Builder
	out.Grow(len(source))
	inString := false
	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case inString:
			out.WriteByte(c)
			if c == '\\' && i+1 < len(source) {
				i++
				out.WriteByte(source[i])
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
			out.WriteByte(c)
		case c == ';':
			out.WriteString("//")
			for i+1 < len(source) && source[i+1] == ';' {
				i++
			}
		case c == '-' && i > 0 && i+1 < len(source) && isIdent(source[i-1]) && isLetter(source[i+1]):
			out.WriteByte('_')
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdent(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
