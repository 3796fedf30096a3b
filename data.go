package posthist

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"
)

// CellKind is the kind of value held by one table cell.
type CellKind uint8

const (
	Null CellKind = iota
	Float
	String
)

func (k CellKind) String() string {
	switch k {
	case Null:
		return "null"
	case Float:
		return "float"
	case String:
		return "string"
	}
	return fmt.Sprintf("CellKind(%d)", k)
}

// Column is one named column of a Table.
//
// Every cell stores one float64: the value for Float cells, the index
// into the table's string pool for String cells and NaN for Null cells.
type Column struct {
	Name  string
	Data  []float64
	Kinds []CellKind

	pool *StringPool
}

// Len returns the number of cells in c.
func (c *Column) Len() int { return len(c.Data) }

func (c *Column) Kind(i int) CellKind { return c.Kinds[i] }

func (c *Column) IsNull(i int) bool { return c.Kinds[i] == Null }

// Float returns the numeric value of cell i or NaN if the cell is not
// numeric.
func (c *Column) Float(i int) float64 {
	if c.Kinds[i] != Float {
		return math.NaN()
	}
	return c.Data[i]
}

// Text returns the textual form of cell i. Null cells yield "".
func (c *Column) Text(i int) string {
	switch c.Kinds[i] {
	case Float:
		return strconv.FormatFloat(c.Data[i], 'g', -1, 64)
	case String:
		return c.pool.Get(int(c.Data[i]))
	}
	return ""
}

// Value returns cell i as nil, float64 or string.
func (c *Column) Value(i int) interface{} {
	switch c.Kinds[i] {
	case Float:
		return c.Data[i]
	case String:
		return c.pool.Get(int(c.Data[i]))
	}
	return nil
}

// Floats returns the non-null values of c in row order. A non-null cell
// holding a string makes the column unplottable and yields ErrFormat.
func (c *Column) Floats() ([]float64, error) {
	values := make([]float64, 0, len(c.Data))
	for i, k := range c.Kinds {
		switch k {
		case Null:
			continue
		case String:
			return nil, fmt.Errorf("%w: column %q row %d holds non-numeric value %q",
				ErrFormat, c.Name, i+1, c.Text(i))
		}
		values = append(values, c.Data[i])
	}
	return values, nil
}

// NonNull counts the non-null cells of c.
func (c *Column) NonNull() int {
	n := 0
	for _, k := range c.Kinds {
		if k != Null {
			n++
		}
	}
	return n
}

// Table is an ordered collection of equally long named columns.
// A table is not modified after it has been loaded.
type Table struct {
	// Name is typically the base name of the file the table was read from.
	Name string

	// N is the number of rows.
	N int

	// Pool holds the text of all string cells.
	Pool *StringPool

	columns []*Column
	index   map[string]int
}

func newTable(name string, names []string) *Table {
	t := &Table{
		Name:    name,
		Pool:    NewStringPool(),
		columns: make([]*Column, len(names)),
		index:   make(map[string]int, len(names)),
	}
	for i, n := range names {
		t.columns[i] = &Column{Name: n, pool: t.Pool}
		t.index[n] = i
	}
	return t
}

// Names returns the column names in file order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Has reports whether t has a column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the column called name.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q not in table %s", ErrColumnNotFound, name, t.Name)
	}
	return t.columns[i], nil
}

// Print dumps t in tabular form to out.
func (t *Table) Print(out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Table %q, %d rows\n", t.Name, t.N)
	fmt.Fprint(w, "row")
	for _, c := range t.columns {
		fmt.Fprintf(w, "\t%s", c.Name)
	}
	fmt.Fprintln(w)
	for i := 0; i < t.N; i++ {
		fmt.Fprintf(w, "%d", i+1)
		for _, c := range t.columns {
			if c.IsNull(i) {
				fmt.Fprint(w, "\tNA")
				continue
			}
			fmt.Fprintf(w, "\t%s", c.Text(i))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}
