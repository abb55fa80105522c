// Package dataset holds generated point tables and the concatenated dataset,
// and persists them as Parquet.
//
// Both Table and Dataset are column-major: one []float64 per axis plus the
// integer cluster label column.
package dataset

import (
	"fmt"

	"github.com/teranos/clustergen/errors"
)

// ClusterColumn is the name of the integer label column
const ClusterColumn = "cluster"

// AxisName returns the column name of axis i ("ax0", "ax1", ...)
func AxisName(i int) string {
	return fmt.Sprintf("ax%d", i)
}

// ColumnNames returns ax0..ax{dims-1} followed by cluster
func ColumnNames(dims int) []string {
	names := make([]string, 0, dims+1)
	for i := 0; i < dims; i++ {
		names = append(names, AxisName(i))
	}
	return append(names, ClusterColumn)
}

// Table is the point table of a single cluster: every row carries the same
// cluster label.
type Table struct {
	Cluster int64
	Axes    [][]float64
}

// NewTable wraps per-axis value columns. All columns must have equal length.
func NewTable(cluster int, axes [][]float64) (*Table, error) {
	if len(axes) == 0 {
		return nil, errors.NewInvalidRequestError("table for cluster %d has no axes", cluster)
	}
	rows := len(axes[0])
	for i, col := range axes {
		if len(col) != rows {
			return nil, errors.NewInvalidRequestError("table for cluster %d: axis %s has %d rows, want %d",
				cluster, AxisName(i), len(col), rows)
		}
	}
	return &Table{Cluster: int64(cluster), Axes: axes}, nil
}

// Rows returns the number of points in the table
func (t *Table) Rows() int {
	if len(t.Axes) == 0 {
		return 0
	}
	return len(t.Axes[0])
}

// Dims returns the number of axes
func (t *Table) Dims() int {
	return len(t.Axes)
}

// Dataset is the row-wise concatenation of cluster tables
type Dataset struct {
	Axes    [][]float64
	Cluster []int64
}

// Concat appends tables in the given order. Row order inside each table is
// preserved, so rows of tables[0] come first. All tables must share the
// same axis count.
func Concat(tables ...*Table) (*Dataset, error) {
	if len(tables) == 0 {
		return nil, errors.NewInvalidRequestError("nothing to concatenate")
	}

	dims := tables[0].Dims()
	total := 0
	for _, t := range tables {
		if t.Dims() != dims {
			return nil, errors.NewInvalidRequestError("cluster %d has %d axes, want %d", t.Cluster, t.Dims(), dims)
		}
		total += t.Rows()
	}

	ds := &Dataset{
		Axes:    make([][]float64, dims),
		Cluster: make([]int64, 0, total),
	}
	for a := range ds.Axes {
		ds.Axes[a] = make([]float64, 0, total)
	}

	for _, t := range tables {
		for a := range t.Axes {
			ds.Axes[a] = append(ds.Axes[a], t.Axes[a]...)
		}
		for i := 0; i < t.Rows(); i++ {
			ds.Cluster = append(ds.Cluster, t.Cluster)
		}
	}
	return ds, nil
}

// Rows returns the number of points
func (d *Dataset) Rows() int {
	return len(d.Cluster)
}

// Dims returns the number of axes
func (d *Dataset) Dims() int {
	return len(d.Axes)
}

// Columns returns the column names in file order
func (d *Dataset) Columns() []string {
	return ColumnNames(d.Dims())
}

// Point copies the coordinates of row i into dst (grown if needed) and
// returns it.
func (d *Dataset) Point(i int, dst []float64) []float64 {
	dst = dst[:0]
	for a := range d.Axes {
		dst = append(dst, d.Axes[a][i])
	}
	return dst
}

// Block is a contiguous run of rows sharing one cluster label
type Block struct {
	Cluster int64
	Start   int
	Rows    int
}

// Blocks splits the label column into contiguous runs, in row order
func (d *Dataset) Blocks() []Block {
	var blocks []Block
	for i, c := range d.Cluster {
		if n := len(blocks); n > 0 && blocks[n-1].Cluster == c {
			blocks[n-1].Rows++
			continue
		}
		blocks = append(blocks, Block{Cluster: c, Start: i, Rows: 1})
	}
	return blocks
}

// Summary describes the shape of a dataset
type Summary struct {
	Rows         int           `json:"rows"`
	Columns      []string      `json:"columns"`
	ClusterCount int           `json:"cluster_count"`
	ClusterSizes map[int64]int `json:"cluster_sizes"`
}

// Summary counts rows per cluster label
func (d *Dataset) Summary() Summary {
	sizes := make(map[int64]int)
	for _, c := range d.Cluster {
		sizes[c]++
	}
	return Summary{
		Rows:         d.Rows(),
		Columns:      d.Columns(),
		ClusterCount: len(sizes),
		ClusterSizes: sizes,
	}
}
