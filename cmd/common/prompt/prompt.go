// Package prompt asks the user for wordlist inputs on a line-oriented terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gigurra/pwforge/cmd/common/config"
	"github.com/gigurra/pwforge/cmd/common/wordgen"
	"golang.org/x/term"
)

// Prompter reads answers line by line. End of input counts as an empty answer.
// Use one Prompter per input stream: it buffers ahead of what it returns.
type Prompter struct {
	raw io.Reader
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{raw: in, in: bufio.NewReader(in), out: out}
}

// IsTerminal reports whether the prompter reads from an interactive terminal.
func (p *Prompter) IsTerminal() bool {
	return IsTerminal(p.raw)
}

// Secret prints label and reads a value without echo on a terminal. Other
// input is read as one line from the shared buffer.
func (p *Prompter) Secret(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if f, ok := p.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(secret), nil
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Line prints label and returns the trimmed answer.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. An empty answer selects def.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	answer, err := p.Line(label)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return def, nil
}

// Collected is the outcome of an interactive session.
type Collected struct {
	Tokens []string
	// Years is nil when no years were entered.
	Years []int
	// Answers holds what was typed, per category, for saving to the profile.
	Answers config.Profile
}

// Collect gathers wordlist inputs. With existing tokens the user may decline
// the full questionnaire and only add comma-separated extra words.
func Collect(p *Prompter, existing []string) (Collected, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "--- Interactive wordlist input (press Enter to skip) ---")

	res := Collected{Tokens: append([]string(nil), existing...)}

	if len(existing) > 0 {
		fmt.Fprintf(p.out, "Existing inputs: %s\n", strings.Join(existing, ", "))
		more, err := p.Confirm("Add more data interactively? [Y/n]: ", true)
		if err != nil {
			return Collected{}, err
		}
		if !more {
			extra, err := p.Line("Add additional comma-separated words: ")
			if err != nil {
				return Collected{}, err
			}
			if extra != "" {
				res.Answers.Extra = []string{extra}
				res.Tokens = append(res.Tokens, wordgen.CollectTokens(extra)...)
			}
			return res, nil
		}
	}

	questions := []struct {
		label string
		dst   *[]string
	}{
		{"Name(s): ", &res.Answers.Names},
		{"Pet name(s): ", &res.Answers.Pets},
		{"Favorite things: ", &res.Answers.Favorites},
		{"DOB / dates (YYYYMMDD or YYYY): ", &res.Answers.Dates},
		{"Any extra words: ", &res.Answers.Extra},
		{"Years (e.g. '1990 2025' or '2018,2019'): ", &res.Answers.Years},
	}
	for _, q := range questions {
		answer, err := p.Line(q.label)
		if err != nil {
			return Collected{}, err
		}
		if answer != "" {
			*q.dst = []string{answer}
		}
	}

	res.Tokens = append(res.Tokens, res.Answers.Tokens()...)
	if len(res.Answers.Years) > 0 {
		res.Years = wordgen.ExpandYears(wordgen.SplitYears(res.Answers.Years[0]))
	}
	return res, nil
}

// IsTerminal reports whether r is an interactive terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ReadSecret reads a single secret from in. Callers that also prompt for
// other input should share a Prompter and use Secret.
func ReadSecret(in io.Reader, out io.Writer, label string) (string, error) {
	return New(in, out).Secret(label)
}
