package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Prompter reads answers line by line from the interactive session.
// Malformed numeric or timestamp input is reported and asked again;
// running out of input surfaces io.EOF so callers can stop cleanly.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// String asks until a non-empty answer arrives.
func (p *Prompter) String(label string) (string, error) {
	for {
		answer, err := p.line(label)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		fmt.Fprintln(p.out, "A value is required.")
	}
}

// Int64 asks until the answer parses as an integer.
func (p *Prompter) Int64(label string) (int64, error) {
	for {
		answer, err := p.line(label)
		if err != nil {
			return 0, err
		}
		value, err := strconv.ParseInt(answer, 10, 64)
		if err == nil {
			return value, nil
		}
		fmt.Fprintln(p.out, "Please enter a number.")
	}
}

// Bool asks a 1/0 question until answered with either.
func (p *Prompter) Bool(label string) (bool, error) {
	for {
		value, err := p.Int64(label)
		if err != nil {
			return false, err
		}
		switch value {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		fmt.Fprintln(p.out, "Please answer 1 for Yes or 0 for No.")
	}
}

// Time asks until the answer parses in the fixed YYYY-MM-DD HH:MM:SS form.
func (p *Prompter) Time(label string) (time.Time, error) {
	for {
		answer, err := p.line(label)
		if err != nil {
			return time.Time{}, err
		}
		ts, err := time.ParseInLocation(timeLayout, answer, time.Local)
		if err == nil {
			return ts, nil
		}
		fmt.Fprintf(p.out, "Please use the %s format.\n", "YYYY-MM-DD HH:MM:SS")
	}
}
