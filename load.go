package posthist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// LoadOptions describe the layout of a delimited text file.
type LoadOptions struct {
	// Delimiter separates the fields of a row.
	Delimiter rune

	// DecimalMark is the decimal separator of numeric fields.
	DecimalMark rune

	// MissingMarker is the literal field text denoting a missing value.
	MissingMarker string

	// HasHeader is set if the first row supplies the column names.
	// Without a header columns are named V1, V2, ...
	HasHeader bool
}

// DefaultLoadOptions returns the options for comma separated files with
// a header row, '.' as decimal mark and "NA" for missing values.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Delimiter:     ',',
		DecimalMark:   '.',
		MissingMarker: "NA",
		HasHeader:     true,
	}
}

// LoadTable reads the delimited text file at path into a Table.
//
// A nonexistent path yields ErrPath. A file which cannot be opened or
// read, a duplicate header name or rows with a field count different
// from the header yield ErrFormat.
func LoadTable(path string, opts LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrPath, path)
		}
		return nil, fmt.Errorf("%w: cannot open %s: %v", ErrFormat, path, err)
	}
	defer f.Close()

	t, err := ReadTable(f, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// ReadTable reads delimited text from r into a Table. See LoadTable.
func ReadTable(r io.Reader, opts LoadOptions) (*Table, error) {
	if opts.Delimiter == opts.DecimalMark {
		return nil, fmt.Errorf("%w: delimiter and decimal mark are both %q",
			ErrFormat, opts.Delimiter)
	}
	parse := numberParser(opts.DecimalMark)

	cr := csv.NewReader(r)
	cr.Comma = opts.Delimiter
	cr.FieldsPerRecord = 0 // all rows like the first one

	first, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: no header row", ErrFormat)
	}
	if err != nil {
		return nil, csvError(err)
	}

	var names []string
	var pending []string
	if opts.HasHeader {
		names, err = headerNames(first)
		if err != nil {
			return nil, err
		}
	} else {
		names = make([]string, len(first))
		for i := range first {
			names[i] = fmt.Sprintf("V%d", i+1)
		}
		pending = first
	}

	t := newTable("", names)
	add := func(record []string) {
		for i, field := range record {
			col := t.columns[i]
			field = strings.TrimSpace(field)
			switch {
			case field == opts.MissingMarker:
				col.Data = append(col.Data, math.NaN())
				col.Kinds = append(col.Kinds, Null)
			default:
				if v, ok := parse(field); ok {
					col.Data = append(col.Data, v)
					col.Kinds = append(col.Kinds, Float)
				} else {
					col.Data = append(col.Data, float64(t.Pool.Add(field)))
					col.Kinds = append(col.Kinds, String)
				}
			}
		}
		t.N++
	}

	if pending != nil {
		add(pending)
	}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		add(record)
	}

	return t, nil
}

// headerNames trims the header fields and makes sure they are unique.
func headerNames(header []string) ([]string, error) {
	names := make([]string, len(header))
	seen := NewStringSet()
	dups := NewStringSet()
	for i, h := range header {
		h = strings.TrimSpace(h)
		if seen.Contains(h) {
			dups.Add(h)
		}
		seen.Add(h)
		names[i] = h
	}
	if len(dups) > 0 {
		return nil, fmt.Errorf("%w: duplicate column names %q", ErrFormat, dups.Elements())
	}
	return names, nil
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) && errors.Is(pe.Err, csv.ErrFieldCount) {
		return fmt.Errorf("%w: line %d has a different number of fields than the header",
			ErrFormat, pe.Line)
	}
	return fmt.Errorf("%w: %v", ErrFormat, err)
}

// numberParser returns a function which parses decimal numbers written
// with the given decimal mark, like "-1.5", ".5", "3." or "2.5e-3".
// Anything else, including "NaN" and "Inf", is not a number.
func numberParser(mark rune) func(string) (float64, bool) {
	m := regexp.QuoteMeta(string(mark))
	re := regexp.MustCompile(`^[+-]?(\d+(` + m + `\d*)?|` + m + `\d+)([eE][+-]?\d+)?$`)
	return func(s string) (float64, bool) {
		if !re.MatchString(s) {
			return 0, false
		}
		if mark != '.' {
			s = strings.Replace(s, string(mark), ".", 1)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// Only overflow gets here.
			return 0, false
		}
		return v, true
	}
}
