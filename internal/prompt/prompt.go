// Package prompt implements the interactive input collaborator: it
// collects an audit mode, a time window, and run options from a
// terminal, re-prompting on invalid input.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"calaudit/internal/model"
	"calaudit/internal/window"
)

// Mode selects how the audit window is entered.
type Mode int

const (
	ModeDay Mode = iota + 1
	ModeWeek
	ModeRange
)

// Prompter reads line-oriented answers from in and writes prompts to
// out.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Run walks the full interactive flow and returns the resolved window
// and options.
func (p *Prompter) Run(loc *time.Location, defaultFirstTag bool) (window.Window, model.Options, error) {
	mode, err := p.Mode()
	if err != nil {
		return window.Window{}, model.Options{}, err
	}
	opts, err := p.Options(defaultFirstTag)
	if err != nil {
		return window.Window{}, model.Options{}, err
	}
	win, err := p.Window(mode, loc)
	if err != nil {
		return window.Window{}, model.Options{}, err
	}
	return win, opts, nil
}

// Mode asks which kind of window to audit, re-prompting until a valid
// choice is entered.
func (p *Prompter) Mode() (Mode, error) {
	for {
		fmt.Fprintln(p.out, "Select from one of the following audit options:")
		fmt.Fprintln(p.out, "1. day")
		fmt.Fprintln(p.out, "2. week")
		fmt.Fprintln(p.out, "3. datetime range")
		choice, err := p.ask("Select a number 1-3: ")
		if err != nil {
			return 0, err
		}
		switch choice {
		case "1":
			return ModeDay, nil
		case "2":
			return ModeWeek, nil
		case "3":
			return ModeRange, nil
		}
		fmt.Fprintln(p.out, "INVALID OPTION. TRY AGAIN.")
	}
}

// Options asks the y/n audit options.
func (p *Prompter) Options(defaultFirstTag bool) (model.Options, error) {
	suffix := "[y/N]"
	if defaultFirstTag {
		suffix = "[Y/n]"
	}
	answer, err := p.ask("Audit the first tag only? " + suffix + ": ")
	if err != nil {
		return model.Options{}, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return model.Options{FirstTagOnly: true}, nil
	case "n", "no":
		return model.Options{FirstTagOnly: false}, nil
	case "":
		return model.Options{FirstTagOnly: defaultFirstTag}, nil
	default:
		return model.Options{FirstTagOnly: false}, nil
	}
}

// Window collects the date/time inputs for the mode. Invalid dates are
// a resolver-local failure: the user is told and asked again.
func (p *Prompter) Window(mode Mode, loc *time.Location) (window.Window, error) {
	for {
		win, err := p.windowOnce(mode, loc)
		var invalid *window.InvalidDateError
		if errors.As(err, &invalid) {
			fmt.Fprintf(p.out, "%v. Try again.\n", invalid)
			continue
		}
		return win, err
	}
}

func (p *Prompter) windowOnce(mode Mode, loc *time.Location) (window.Window, error) {
	switch mode {
	case ModeDay:
		date, err := p.ask("Enter the day (YYYY-MM-DD). Press Enter for today: ")
		if err != nil {
			return window.Window{}, err
		}
		return window.ResolveDay(date, loc)

	case ModeWeek:
		start, err := p.ask("Enter the start day (YYYY-MM-DD) of the week. Press Enter for today: ")
		if err != nil {
			return window.Window{}, err
		}
		return window.ResolveWeek(start, loc)

	case ModeRange:
		startDate, err := p.ask("Enter the start day (YYYY-MM-DD). Press Enter for today: ")
		if err != nil {
			return window.Window{}, err
		}
		startTime, err := p.ask("Enter the start time (HH:MM). Press Enter for 00:00: ")
		if err != nil {
			return window.Window{}, err
		}
		endDate, err := p.ask("Enter the end day (YYYY-MM-DD). Press Enter for the start day: ")
		if err != nil {
			return window.Window{}, err
		}
		endTime, err := p.ask("Enter the end time (HH:MM). Press Enter for 23:59: ")
		if err != nil {
			return window.Window{}, err
		}
		return window.ResolveRange(startDate, startTime, endDate, endTime, loc)

	default:
		return window.Window{}, fmt.Errorf("unknown audit mode %d", mode)
	}
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}
