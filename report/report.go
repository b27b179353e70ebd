/*
 * report.go, part of pistack.
 *
 * Copyright 2025 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package report serializes pistack metrics and delta records into CSV
//tables and JSON documents. Output files ending in ".gz" or ".zst" are
//compressed transparently (gzip and z-standard, respectively); anything
//else is written as plain text. Directory layout, file naming and the
//decision of what to write belong to the caller.
package report

import (
	"compress/gzip"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/pistack"
)

//Distances and slips are reported with 3 decimals, angles with 1, as is
//customary for structural tables.
func formatFor(column string) string {
	if strings.Contains(column, "tilt") || strings.Contains(column, "twist") || strings.Contains(column, "angle") {
		return "%.1f"
	}
	return "%.3f"
}

//outFile is a writer plus whatever compressor sits on top of it. Closing
//it flushes the compressor before the file.
type outFile struct {
	w io.Writer
	c []io.Closer
}

func (o *outFile) Write(p []byte) (int, error) { return o.w.Write(p) }

func (o *outFile) Close() error {
	var err error
	for _, c := range o.c {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

//create opens name for writing, stacking a compressor on top when the
//extension asks for one.
func create(name string) (*outFile, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		z := gzip.NewWriter(f)
		return &outFile{w: z, c: []io.Closer{z, f}}, nil
	case strings.HasSuffix(name, ".zst"):
		z, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &outFile{w: z, c: []io.Closer{z, f}}, nil
	}
	return &outFile{w: f, c: []io.Closer{f}}, nil
}

//writeTable writes one CSV table: a header of an empty index column plus
//the column names, then one row per entry of rows, in order.
func writeTable(name string, columns []string, index []string, rows [][]float64) error {
	out, err := create(name)
	if err != nil {
		return fmt.Errorf("report: Can't create %s: %w", name, err)
	}
	defer out.Close()
	w := csv.NewWriter(out)
	header := append([]string{""}, columns...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("report: Can't write to %s: %w", name, err)
	}
	for i, row := range rows {
		record := make([]string, 0, len(row)+1)
		record = append(record, index[i])
		for j, v := range row {
			record = append(record, fmt.Sprintf(formatFor(columns[j]), v))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("report: Can't write to %s: %w", name, err)
		}
	}
	w.Flush()
	return w.Error()
}

//planeColumns is the number of leading plane-metric fields in the field
//order of pistack.FieldNames; the rest is the COM summary.
const planeColumns = 12

//metricsRows collects, in the order given, the rows for the variants in
//order that are present in metrics. Missing variants (failed upstream) are
//skipped.
func metricsRows(order []string, metrics map[string]*pistack.AssemblyMetrics) ([]string, [][]float64) {
	index := make([]string, 0, len(order))
	rows := make([][]float64, 0, len(order))
	for _, key := range order {
		m, ok := metrics[key]
		if !ok {
			continue
		}
		index = append(index, m.Variant)
		rows = append(rows, m.Fields())
	}
	return index, rows
}

//WritePlaneCSV writes the plane-based metrics (perpendicular distances,
//slips, tilts and twists) of the given variants, one row per variant, in
//the order given.
func WritePlaneCSV(name string, order []string, metrics map[string]*pistack.AssemblyMetrics) error {
	index, rows := metricsRows(order, metrics)
	for i := range rows {
		rows[i] = rows[i][:planeColumns]
	}
	return writeTable(name, pistack.FieldNames()[:planeColumns], index, rows)
}

//WriteCOMCSV writes the mass-weighted COM-COM summary (three distances and
//the central angle) of the given variants.
func WriteCOMCSV(name string, order []string, metrics map[string]*pistack.AssemblyMetrics) error {
	index, rows := metricsRows(order, metrics)
	for i := range rows {
		rows[i] = rows[i][planeColumns:]
	}
	return writeTable(name, pistack.FieldNames()[planeColumns:], index, rows)
}

//WriteAllCSV writes every numeric field of the given variants into a
//single table.
func WriteAllCSV(name string, order []string, metrics map[string]*pistack.AssemblyMetrics) error {
	index, rows := metricsRows(order, metrics)
	return writeTable(name, pistack.FieldNames(), index, rows)
}

//WriteDeltaCSV writes the field-wise differences against the baseline for
//the given variants, one row per non-baseline variant, in the order given.
func WriteDeltaCSV(name string, order []string, deltas map[string]*pistack.DeltaRecord) error {
	index := make([]string, 0, len(order))
	rows := make([][]float64, 0, len(order))
	var columns []string
	for _, key := range order {
		d, ok := deltas[key]
		if !ok {
			continue
		}
		if columns == nil {
			columns = d.Names
		}
		index = append(index, d.Variant)
		rows = append(rows, d.Delta)
	}
	if columns == nil {
		columns = pistack.FieldNames()
	}
	return writeTable(name, columns, index, rows)
}

//WriteJSON writes v as indented JSON to the file name, compressed
//according to its extension like the CSV writers.
func WriteJSON(name string, v interface{}) error {
	out, err := create(name)
	if err != nil {
		return fmt.Errorf("report: Can't create %s: %w", name, err)
	}
	defer out.Close()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("report: Can't encode JSON to %s: %w", name, err)
	}
	return nil
}
