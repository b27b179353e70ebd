/*
 * atoms.go, part of pistack.
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
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rmera/pistack/vec3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//AtomSet is an immutable, ordered set of atoms: one element symbol, one
//mass and one cartesian position per atom. It is the read-only input of
//every calculation in this library; nothing here modifies it after creation.
type AtomSet struct {
	symbols []string
	masses  []float64
	coords  *vec3.Matrix
}

//NewAtomSet builds an AtomSet from element symbols and coordinates.
//Masses are assigned from the symbols. It returns an error if the number of
//symbols and coordinates disagree, or if a symbol is not in the mass table.
func NewAtomSet(symbols []string, coords *vec3.Matrix) (*AtomSet, error) {
	if coords == nil || len(symbols) != coords.NVecs() {
		return nil, &CError{fmt.Sprintf("pistack: Inconsistent symbols(%d)/coordinates", len(symbols)), []string{"NewAtomSet"}}
	}
	masses := make([]float64, len(symbols))
	for i, s := range symbols {
		m, ok := SymbolMass(s)
		if !ok {
			return nil, &CError{fmt.Sprintf("pistack: No mass for element %q (atom %d)", s, i), []string{"NewAtomSet"}}
		}
		masses[i] = m
	}
	return &AtomSet{symbols: symbols, masses: masses, coords: coords}, nil
}

//Len returns the number of atoms in the set.
func (A *AtomSet) Len() int { return len(A.symbols) }

//Symbol returns the element symbol of the ith atom.
func (A *AtomSet) Symbol(i int) string { return A.symbols[i] }

//Mass returns the mass of the ith atom.
func (A *AtomSet) Mass(i int) float64 { return A.masses[i] }

//Masses returns a new slice with the masses of all atoms in the set.
func (A *AtomSet) Masses() []float64 {
	ret := make([]float64, len(A.masses))
	copy(ret, A.masses)
	return ret
}

//Coords returns the coordinates of the ith atom as a new 1-vec Matrix.
func (A *AtomSet) Coords(i int) *vec3.Matrix {
	ret := vec3.Zeros(1)
	ret.Copy(A.coords.VecView(i))
	return ret
}

//SubunitCore is a named view over a subset of the atoms of an AtomSet,
//typically one planar chromophore core of a stacked assembly. It owns no
//atoms, only indexes into its parent set.
type SubunitCore struct {
	name    string
	indexes []int
	set     *AtomSet
}

//NewSubunit returns a view over the atoms of set with the (0-based) indexes
//given. The indexes are checked against the bounds of the set.
func NewSubunit(name string, set *AtomSet, indexes []int) (*SubunitCore, error) {
	if set == nil || len(indexes) == 0 {
		return nil, &CError{fmt.Sprintf("pistack: Empty subunit %q", name), []string{"NewSubunit"}}
	}
	for _, v := range indexes {
		if v < 0 || v >= set.Len() {
			return nil, &CError{fmt.Sprintf("pistack: Subunit %q: atom index %d out of range (0-%d)", name, v, set.Len()-1), []string{"NewSubunit"}}
		}
	}
	return &SubunitCore{name: name, indexes: indexes, set: set}, nil
}

//Name returns the name of the subunit ("top", "middle", etc).
func (S *SubunitCore) Name() string { return S.name }

//Len returns the number of atoms in the subunit.
func (S *SubunitCore) Len() int { return len(S.indexes) }

//Coords returns a new matrix with the coordinates of the atoms in the
//subunit, in the order of the index list.
func (S *SubunitCore) Coords() (*vec3.Matrix, error) {
	ret := vec3.Zeros(len(S.indexes))
	err := ret.SomeVecsSafe(S.set.coords, S.indexes)
	if err != nil {
		return nil, errDecorate(err, "SubunitCore.Coords: "+S.name)
	}
	return ret, nil
}

//Masses returns a new slice with the masses of the atoms in the subunit.
func (S *SubunitCore) Masses() []float64 {
	ret := make([]float64, len(S.indexes))
	for i, v := range S.indexes {
		ret[i] = S.set.masses[v]
	}
	return ret
}

//COM returns the mass-weighted center of mass of the subunit.
func (S *SubunitCore) COM() (*vec3.Matrix, error) {
	coords, err := S.Coords()
	if err != nil {
		return nil, errDecorate(err, "SubunitCore.COM")
	}
	return CenterOfMass(coords, S.Masses()), nil
}

//CenterOfMass returns the center of mass of the points in geometry with the
//masses in mass. If mass is nil, it returns the geometric center instead.
//Panics if the dimensions of geometry and mass are inconsistent.
func CenterOfMass(geometry *vec3.Matrix, mass []float64) *vec3.Matrix {
	ret := vec3.Zeros(1)
	col := make([]float64, geometry.NVecs())
	for j := 0; j < 3; j++ {
		mat.Col(col, j, vec3.Matrix2Dense(geometry))
		ret.Set(0, j, stat.Mean(col, mass))
	}
	return ret
}

//ParseIndexSpec converts a human-readable, 1-based index specification into
//a sorted list of unique, 0-based indexes. The specification is a
//comma-separated string of integers and inclusive ranges, e.g.
//"86-118,121-125". Whitespace is ignored.
func ParseIndexSpec(spec string) ([]int, error) {
	seen := make(map[int]bool)
	for _, token := range strings.Split(strings.ReplaceAll(spec, " ", ""), ",") {
		if token == "" {
			continue
		}
		if strings.Contains(token, "-") {
			parts := strings.SplitN(token, "-", 2)
			a, err1 := strconv.Atoi(parts[0])
			b, err2 := strconv.Atoi(parts[1])
			if err1 != nil || err2 != nil || a < 1 || b < a {
				return nil, &CError{fmt.Sprintf("pistack: Ill-formed index range %q", token), []string{"ParseIndexSpec"}}
			}
			for i := a; i <= b; i++ {
				seen[i-1] = true //1-based -> 0-based
			}
			continue
		}
		a, err := strconv.Atoi(token)
		if err != nil || a < 1 {
			return nil, &CError{fmt.Sprintf("pistack: Ill-formed index %q", token), []string{"ParseIndexSpec"}}
		}
		seen[a-1] = true
	}
	if len(seen) == 0 {
		return nil, &CError{fmt.Sprintf("pistack: Empty index specification %q", spec), []string{"ParseIndexSpec"}}
	}
	ret := make([]int, 0, len(seen))
	for k := range seen {
		ret = append(ret, k)
	}
	sort.Ints(ret)
	return ret, nil
}
