package dataset

import (
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/teranos/clustergen/errors"
)

// A single writer goroutine keeps page layout, and therefore the file
// bytes, identical across runs.
const writerParallelism = 1

// schema returns the CSV-writer metadata for dims DOUBLE axes and the
// INT64 label column, in column order.
func schema(dims int) []string {
	md := make([]string, 0, dims+1)
	for i := 0; i < dims; i++ {
		md = append(md, "name="+AxisName(i)+", type=DOUBLE, repetitiontype=REQUIRED")
	}
	return append(md, "name="+ClusterColumn+", type=INT64, repetitiontype=REQUIRED")
}

// WriteParquet writes the dataset to path, replacing any existing file.
// The parent directory must already exist; failures are marked with
// errors.ErrOutputWrite.
func (d *Dataset) WriteParquet(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return errors.WithHint(errors.WrapOutputWrite(err, "output directory unavailable"),
			"create the output directory before running clustergen")
	}
	if !info.IsDir() {
		return errors.WrapOutputWrite(errors.Newf("%s is not a directory", dir), "output directory unavailable")
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return errors.WrapOutputWrite(err, "failed to create dataset file")
	}

	if err := d.writeRows(fw); err != nil {
		_ = fw.Close()
		return err
	}

	if err := fw.Close(); err != nil {
		return errors.WrapOutputWrite(err, "failed to close dataset file")
	}
	return nil
}

func (d *Dataset) writeRows(fw source.ParquetFile) error {
	pw, err := writer.NewCSVWriter(schema(d.Dims()), fw, writerParallelism)
	if err != nil {
		return errors.WrapOutputWrite(err, "failed to initialise parquet writer")
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	rec := make([]interface{}, d.Dims()+1)
	for i := 0; i < d.Rows(); i++ {
		for a := range d.Axes {
			rec[a] = d.Axes[a][i]
		}
		rec[d.Dims()] = d.Cluster[i]
		if err := pw.Write(rec); err != nil {
			return errors.WrapOutputWrite(err, "failed to write row")
		}
	}

	if err := pw.WriteStop(); err != nil {
		return errors.WrapOutputWrite(err, "failed to finalise parquet file")
	}
	return nil
}

// ReadParquet loads a dataset file. Every DOUBLE column becomes an axis in
// file order and the cluster column becomes the label; other columns (for
// example a pandas index) are ignored.
func ReadParquet(path string) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(errors.Mark(err, errors.ErrNotFound), "dataset %s", path)
	}

	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset %s", path)
	}
	defer fr.Close()

	pr, err := reader.NewParquetColumnReader(fr, writerParallelism)
	if err != nil {
		return nil, errors.Wrapf(errors.Mark(err, errors.ErrInvalidRequest), "failed to read parquet footer of %s", path)
	}
	defer pr.ReadStop()

	rows := pr.GetNumRows()
	ds := &Dataset{Cluster: make([]int64, 0, rows)}
	foundLabels := false

	names := leafNames(pr)
	// Schema[0] is the root group; the remaining elements are the flat leaves
	for leaf, el := range pr.Footer.Schema[1:] {
		name := names[leaf]
		isLabel := name == ClusterColumn
		isAxis := !isLabel && el.GetType() == parquet.Type_DOUBLE
		if !isLabel && !isAxis {
			continue
		}

		var values []interface{}
		if rows > 0 {
			values, _, _, err = pr.ReadColumnByIndex(int64(leaf), rows)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read column %s", name)
			}
		}
		if int64(len(values)) != rows {
			return nil, errors.NewInvalidRequestError("column %s has %d values, want %d", name, len(values), rows)
		}

		if isLabel {
			labels, err := toInt64s(name, values)
			if err != nil {
				return nil, err
			}
			ds.Cluster = labels
			foundLabels = true
			continue
		}

		axis, err := toFloat64s(name, values)
		if err != nil {
			return nil, err
		}
		ds.Axes = append(ds.Axes, axis)
	}

	if !foundLabels {
		return nil, errors.NewInvalidRequestError("dataset %s has no %s column", path, ClusterColumn)
	}
	if len(ds.Axes) == 0 {
		return nil, errors.NewInvalidRequestError("dataset %s has no DOUBLE axis columns", path)
	}
	return ds, nil
}

// leafNames returns the column names as stored in the file. The reader
// renames Footer.Schema to exported Go identifiers (ax0 becomes Ax0), so
// the on-disk names come from the schema handler instead.
func leafNames(pr *reader.ParquetReader) []string {
	infos := pr.SchemaHandler.Infos
	names := make([]string, 0, len(infos))
	for _, info := range infos[1:] {
		names = append(names, info.ExName)
	}
	return names
}

func toFloat64s(column string, values []interface{}) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		f, ok := v.(float64)
		if !ok {
			return nil, errors.NewInvalidRequestError("column %s row %d: unexpected value %v (%T)", column, i, v, v)
		}
		out[i] = f
	}
	return out, nil
}

func toInt64s(column string, values []interface{}) ([]int64, error) {
	out := make([]int64, len(values))
	for i, v := range values {
		switch n := v.(type) {
		case int64:
			out[i] = n
		case int32:
			out[i] = int64(n)
		default:
			return nil, errors.NewInvalidRequestError("column %s row %d: unexpected value %v (%T)", column, i, v, v)
		}
	}
	return out, nil
}
