package output

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/nwgo/networth-simulator/internal/domain"
)

// ArrowExporter dumps the raw paths as an Arrow IPC stream: one row per
// (path, year) with a float64 column per series. The long layout loads
// directly into dataframe tooling for analysis beyond the built-in bands.
type ArrowExporter struct{}

func (a ArrowExporter) Name() string { return "arrow" }

func (a ArrowExporter) Format(report *Report) ([]byte, error) {
	rs := report.Results
	names := domain.SeriesNames()

	fields := []arrow.Field{
		{Name: "path", Type: arrow.PrimitiveTypes.Int32},
		{Name: "year", Type: arrow.PrimitiveTypes.Int32},
	}
	series := make([][][]float64, 0, len(names))
	for _, name := range names {
		fields = append(fields, arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64})
		data, err := rs.Series(name)
		if err != nil {
			return nil, err
		}
		series = append(series, data)
	}
	schema := arrow.NewSchema(fields, nil)

	pool := memory.NewGoAllocator()
	builder := array.NewRecordBuilder(pool, schema)
	defer builder.Release()

	pathCol := builder.Field(0).(*array.Int32Builder)
	yearCol := builder.Field(1).(*array.Int32Builder)
	valueCols := make([]*array.Float64Builder, len(names))
	for i := range names {
		valueCols[i] = builder.Field(2 + i).(*array.Float64Builder)
	}

	for path := 0; path < rs.NumSimulations; path++ {
		for year := 0; year <= rs.HorizonYears; year++ {
			pathCol.Append(int32(path))
			yearCol.Append(int32(year))
			for i := range valueCols {
				valueCols[i].Append(series[i][path][year])
			}
		}
	}

	rec := builder.NewRecord()
	defer rec.Release()

	// Stream format rather than file format: the writer targets a plain
	// buffer, which cannot seek.
	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithSchema(schema), ipc.WithAllocator(pool))
	if err := w.Write(rec); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to write arrow record: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize arrow file: %w", err)
	}
	return buf.Bytes(), nil
}
