package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// dateLayout is how dates are shown and typed: dd.MM.yy.
const dateLayout = "02.01.06"

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The line is trimmed. If EOF occurs after some input was read, the partial
// line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetTextDefault is GetSimpleText where an empty answer yields def.
func GetTextDefault(reader *bufio.Reader, prompt, def string, w io.Writer) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// GetDate reads a date as dd.MM.yy (or YYYY-MM-DD) in loc. An empty answer
// yields def. Invalid input is re-prompted.
func GetDate(reader *bufio.Reader, prompt string, def time.Time, loc *time.Location, w io.Writer) (time.Time, error) {
	for {
		s, err := GetTextDefault(reader, prompt, def.Format(dateLayout), w)
		if err != nil {
			return time.Time{}, err
		}
		if t, err := parseDate(s, loc); err == nil {
			return t, nil
		}
		fmt.Fprintf(w, "Invalid date %q, expected dd.mm.yy\n", s)
	}
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{dateLayout, "02.01.2006", time.DateOnly} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// GetInt reads an integer in [lo, hi]. An empty answer yields def. Invalid
// input is re-prompted.
func GetInt(reader *bufio.Reader, prompt string, def, lo, hi int, w io.Writer) (int, error) {
	for {
		s, err := GetTextDefault(reader, prompt, strconv.Itoa(def), w)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}
		fmt.Fprintf(w, "Enter a number from %d to %d\n", lo, hi)
	}
}

// GetConfirm asks a yes/no question; anything but y/yes is a no.
func GetConfirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	s, err := GetSimpleText(reader, prompt+" [y/N]", w)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
