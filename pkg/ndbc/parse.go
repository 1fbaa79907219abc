package ndbc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// NDBC marks missing data with all-nines sentinels sized to the column
// width: 99, 999, or 9999 (possibly with a decimal part, e.g. 99.00).
func sentinel(v float64) bool {
	return v == 99 || v == 999 || v == 9999
}

// ParseStandardMet parses an NDBC historical standard meteorological file.
// The format is whitespace-delimited columns under a header line naming
// them. Files from 2007 on carry a '#'-prefixed header plus a units line;
// older files have a bare header, may lack the minutes column, and may use
// two-digit years.
func ParseStandardMet(r io.Reader) (Observations, error) {
	scanner := bufio.NewScanner(r)

	cols, err := readHeader(scanner)
	if err != nil {
		return nil, err
	}

	var obs Observations
	lineno := 1
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			// Units line or stray comment.
			continue
		}
		o, err := parseRow(strings.Fields(line), cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		obs = append(obs, o)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return obs, nil
}

// columns maps header names to field positions.
type columns map[string]int

func (c columns) lookup(names ...string) (int, bool) {
	for _, name := range names {
		if i, ok := c[name]; ok {
			return i, true
		}
	}
	return 0, false
}

func readHeader(scanner *bufio.Scanner) (columns, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, "#")
		cols := make(columns)
		for i, name := range strings.Fields(line) {
			cols[name] = i
		}
		if _, ok := cols.lookup("YY", "YYYY"); !ok {
			return nil, fmt.Errorf("header %q has no year column", line)
		}
		return cols, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("empty input")
}

func parseRow(fields []string, cols columns) (Observation, error) {
	var o Observation

	intAt := func(names ...string) (int, error) {
		i, ok := cols.lookup(names...)
		if !ok || i >= len(fields) {
			return 0, fmt.Errorf("missing column %s", names[0])
		}
		return strconv.Atoi(fields[i])
	}

	year, err := intAt("YY", "YYYY")
	if err != nil {
		return o, err
	}
	if year < 100 {
		// Two-digit years only appear in pre-1999 archives.
		year += 1900
	}
	month, err := intAt("MM")
	if err != nil {
		return o, err
	}
	day, err := intAt("DD")
	if err != nil {
		return o, err
	}
	hour, err := intAt("hh")
	if err != nil {
		return o, err
	}
	minute := 0
	if _, ok := cols.lookup("mm"); ok {
		if minute, err = intAt("mm"); err != nil {
			return o, err
		}
	}
	o.Time = time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)

	measure := func(dst **float64, names ...string) error {
		i, ok := cols.lookup(names...)
		if !ok || i >= len(fields) {
			// Column absent from this archive; leave nil.
			return nil
		}
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return fmt.Errorf("column %s: %w", names[0], err)
		}
		if sentinel(v) {
			return nil
		}
		*dst = &v
		return nil
	}

	for _, m := range []struct {
		dst   **float64
		names []string
	}{
		{&o.WindDir, []string{"WDIR", "WD"}},
		{&o.WindSpeed, []string{"WSPD"}},
		{&o.WaveHeight, []string{"WVHT"}},
		{&o.DominantPeriod, []string{"DPD"}},
		{&o.AveragePeriod, []string{"APD"}},
		{&o.MeanWaveDir, []string{"MWD"}},
	} {
		if err := measure(m.dst, m.names...); err != nil {
			return o, err
		}
	}

	return o, nil
}
