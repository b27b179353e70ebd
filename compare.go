/*
 * compare.go, part of pistack.
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

package pistack

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

//DeltaRecord holds, for one non-baseline variant, the difference
//(variant value - baseline value) for every numeric field of an
//AssemblyMetrics record. Names and Delta run in parallel, in the order of
//FieldNames.
type DeltaRecord struct {
	Environment string    `json:"environment"`
	Variant     string    `json:"variant"`
	Baseline    string    `json:"baseline"`
	Names       []string  `json:"names"`
	Delta       []float64 `json:"delta"`
}

//Deltas computes the field-wise differences of each variant in metrics
//against the variant named baseline. The returned map has one DeltaRecord
//per non-baseline variant, under the same keys as the input.
//It returns a BaselineNotFoundError if, and only if, the baseline key is
//absent from metrics; variants missing from the map (e.g. because their
//analysis failed upstream) simply produce no record, they never abort the
//comparison of the others.
func Deltas(metrics map[string]*AssemblyMetrics, baseline string) (map[string]*DeltaRecord, error) {
	base, ok := metrics[baseline]
	if !ok {
		available := make([]string, 0, len(metrics))
		for k := range metrics {
			available = append(available, k)
		}
		sort.Strings(available)
		return nil, &BaselineNotFoundError{baseline: baseline, available: available}
	}
	bf := base.Fields()
	ret := make(map[string]*DeltaRecord, len(metrics)-1)
	for key, m := range metrics {
		if key == baseline {
			continue
		}
		d := make([]float64, len(bf))
		floats.SubTo(d, m.Fields(), bf)
		ret[key] = &DeltaRecord{
			Environment: m.Environment,
			Variant:     m.Variant,
			Baseline:    base.Variant,
			Names:       FieldNames(),
			Delta:       d,
		}
	}
	return ret, nil
}
