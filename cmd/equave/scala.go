package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jangler/equave/collection"
	"github.com/jangler/equave/interval"
)

var errBadScl = errors.New("invalid scale file")

// read a scala .scl file. the last pitch in the file is the period and
// becomes the equave; the rest become degrees above an implicit 1/1.
func readSclFile(path string) (name, description string, s *collection.Scale, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", nil, err
	}
	defer f.Close()
	description, s, err = readScl(f)
	if err != nil {
		return "", "", nil, fmt.Errorf("%s: %w", path, err)
	}
	return strings.TrimSuffix(filepath.Base(path), ".scl"), description, s, nil
}

func readScl(r io.Reader) (string, *collection.Scale, error) {
	var (
		description string
		scale       []interval.Value
		n           = -1
	)
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "!") {
			continue
		}
		switch {
		case i == 0:
			description = line
		case i == 1:
			count, err := strconv.ParseUint(line, 10, 16)
			if err != nil {
				return "", nil, fmt.Errorf("note count %q: %w", line, errBadScl)
			}
			n = int(count)
			scale = make([]interval.Value, 0, n)
		case len(scale) < n:
			v, err := parseScalaPitch(line)
			if err != nil {
				return "", nil, fmt.Errorf("pitch %q: %w", line, errBadScl)
			}
			scale = append(scale, v)
		}
		i++
	}
	if err := scanner.Err(); err != nil {
		return "", nil, err
	}
	if n < 0 || len(scale) < n {
		return "", nil, fmt.Errorf("want %d pitches, got %d: %w", max(n, 0), len(scale), errBadScl)
	}
	if n == 0 {
		s, err := collection.NewScale([]interval.Value{interval.Identity(interval.Ratio)})
		return description, s, err
	}
	degrees := append([]interval.Value{interval.Identity(scale[0].Kind())}, scale[:n-1]...)
	s, err := collection.NewScale(degrees, collection.WithEquave(scale[n-1]))
	return description, s, err
}

// convert a scala pitch string into an interval. text after the first
// field is a comment; a period marks cents, a bare integer is n/1.
func parseScalaPitch(s string) (interval.Value, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return interval.Value{}, interval.ErrConversion
	}
	f := fields[0]
	if strings.Contains(f, ".") && !strings.Contains(f, "/") {
		c, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return interval.Value{}, err
		}
		return interval.NewCents(c), nil
	}
	return interval.Parse(f)
}
