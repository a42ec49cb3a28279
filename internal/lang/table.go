package lang

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
)

// NumericOnlyMarker tags a prefix that only applies before numbers.
const NumericOnlyMarker = "#NUMERIC_ONLY#"

// ParsePrefixTable reads a Moses nonbreaking_prefix file: one prefix per
// line, blank lines and '#' comments ignored, and an optional trailing
// #NUMERIC_ONLY# marker. Every malformed line is reported in the returned
// error, which wraps ErrInvalidRuleTable.
func ParsePrefixTable(r io.Reader) ([]Prefix, error) {
	var (
		prefixes []Prefix
		errs     error
	)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p, err := parsePrefixLine(line)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		prefixes = append(prefixes, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read prefix table: %w", err)
	}
	if errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRuleTable, errs)
	}

	return prefixes, nil
}

func parsePrefixLine(line string) (Prefix, error) {
	fields := strings.Fields(line)
	p := Prefix{Word: fields[0]}

	switch {
	case len(fields) == 1:
	case len(fields) == 2 && fields[1] == NumericOnlyMarker:
		p.NumericOnly = true
	case strings.HasPrefix(fields[1], "#") && len(fields) == 2:
		return Prefix{}, fmt.Errorf("unknown marker %q", fields[1])
	default:
		return Prefix{}, fmt.Errorf("prefix %q contains whitespace", line)
	}

	if err := validatePrefix(p.Word); err != nil {
		return Prefix{}, err
	}
	return p, nil
}
