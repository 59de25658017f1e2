package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	TimeLayout = "2006-01-02 15:04"
	DateLayout = "2006-01-02"
)

// ErrInputClosed is returned by every prompt once the input stream ends.
var ErrInputClosed = errors.New("input closed")

// Console reads answers line by line from in and writes prompts and
// results to out.
type Console struct {
	in  *bufio.Scanner
	out io.Writer

	heading lipgloss.Style
	failure lipgloss.Style
	success lipgloss.Style
	label   lipgloss.Style
}

func New(in io.Reader, out io.Writer) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		in:      bufio.NewScanner(in),
		out:     out,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")),
		success: r.NewStyle().Foreground(lipgloss.Color("10")),
		label:   r.NewStyle().Faint(true),
	}
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

func (c *Console) Header(title string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.heading.Render("=== "+title+" ==="))
}

func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintln(c.out, c.failure.Render("Error: "+fmt.Sprintf(format, args...)))
}

func (c *Console) Successf(format string, args ...any) {
	fmt.Fprintln(c.out, c.success.Render(fmt.Sprintf(format, args...)))
}

// Field prints one "name: value" line of an entity listing.
func (c *Console) Field(name string, value any) {
	fmt.Fprintf(c.out, "  %s %v\n", c.label.Render(name+":"), value)
}

func (c *Console) readLine(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// Prompt asks until a non-empty answer is given.
func (c *Console) Prompt(label string) (string, error) {
	for {
		s, err := c.readLine(label)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		c.Errorf("a value is required")
	}
}

// PromptOptional returns the answer as typed; empty means skipped.
func (c *Console) PromptOptional(label string) (string, error) {
	return c.readLine(label + " (optional)")
}

func (c *Console) PromptInt(label string) (int, error) {
	return PromptParsed(c, label, strconv.Atoi)
}

func (c *Console) PromptOptionalInt(label string) (*int, error) {
	return PromptOptionalParsed(c, label, strconv.Atoi)
}

func (c *Console) PromptFloat(label string) (float64, error) {
	return PromptParsed(c, label, parseFloat)
}

func (c *Console) PromptOptionalFloat(label string) (*float64, error) {
	return PromptOptionalParsed(c, label, parseFloat)
}

// PromptTime reads a local wall-clock time and returns it in UTC.
func (c *Console) PromptTime(label string) (time.Time, error) {
	return PromptParsed(c, label+" ("+TimeLayout+")", parseTime(TimeLayout))
}

func (c *Console) PromptOptionalTime(label string) (*time.Time, error) {
	return PromptOptionalParsed(c, label+" ("+TimeLayout+")", parseTime(TimeLayout))
}

func (c *Console) PromptDate(label string) (time.Time, error) {
	return PromptParsed(c, label+" ("+DateLayout+")", parseTime(DateLayout))
}

func (c *Console) PromptOptionalDate(label string) (*time.Time, error) {
	return PromptOptionalParsed(c, label+" ("+DateLayout+")", parseTime(DateLayout))
}

// PromptList reads a comma separated list. Blank entries are dropped.
func (c *Console) PromptList(label string) ([]string, error) {
	s, err := c.readLine(label + " (comma separated)")
	if err != nil {
		return nil, err
	}
	return SplitList(s), nil
}

func (c *Console) PromptYesNo(label string, def bool) (bool, error) {
	hint := " [y/N]"
	if def {
		hint = " [Y/n]"
	}
	for {
		s, err := c.readLine(label + hint)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		c.Errorf("please answer y or n")
	}
}

// PromptParsed asks until parse accepts the answer.
func PromptParsed[T any](c *Console, label string, parse func(string) (T, error)) (T, error) {
	for {
		s, err := c.Prompt(label)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(s)
		if err == nil {
			return v, nil
		}
		c.Errorf("%v", cleanParseError(err))
	}
}

// PromptOptionalParsed returns nil when the answer is left empty.
func PromptOptionalParsed[T any](c *Console, label string, parse func(string) (T, error)) (*T, error) {
	for {
		s, err := c.PromptOptional(label)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		v, err := parse(s)
		if err == nil {
			return &v, nil
		}
		c.Errorf("%v", cleanParseError(err))
	}
}

func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func parseTime(layout string) func(string) (time.Time, error) {
	return func(s string) (time.Time, error) {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("expected format %s", layout)
		}
		return t.UTC(), nil
	}
}

func cleanParseError(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return fmt.Errorf("%q is not a valid number", numErr.Num)
	}
	return err
}
