/*
 * xyz.go, part of pistack.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rmera/pistack/vec3"
)

//XYZRead reads the first geometry of an XYZ file into an AtomSet.
//The first line must contain the number of atoms and the second is a
//comment, which is ignored. Each atom line must have at least 4 fields:
//element symbol and cartesian x, y, z.
func XYZRead(xyzname string) (*AtomSet, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, &CError{fmt.Sprintf("pistack: Can't open XYZ file %s: %s", xyzname, err.Error()), []string{"XYZRead"}}
	}
	defer xyzfile.Close()
	set, err := xyzReadFrom(bufio.NewReader(xyzfile))
	if err != nil {
		return nil, errDecorate(err, "XYZRead: "+xyzname)
	}
	return set, nil
}

func xyzReadFrom(xyz *bufio.Reader) (*AtomSet, error) {
	line, err := xyz.ReadString('\n')
	if err != nil {
		return nil, &CError{"pistack: Ill-formatted XYZ: missing atom-count line", []string{"xyzReadFrom"}}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms <= 0 {
		return nil, &CError{"pistack: Ill-formatted XYZ: first line is not an atom count", []string{"xyzReadFrom"}}
	}
	if _, err := xyz.ReadString('\n'); err != nil {
		return nil, &CError{"pistack: Ill-formatted XYZ: missing comment line", []string{"xyzReadFrom"}}
	}
	symbols := make([]string, 0, natoms)
	coords := make([]float64, 0, natoms*3)
	for i := 0; i < natoms; i++ {
		line, err := xyz.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, &CError{fmt.Sprintf("pistack: Error reading atom %d: %s", i, err.Error()), []string{"xyzReadFrom"}}
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, &CError{fmt.Sprintf("pistack: Atom line %d ill-formed: %q", i, strings.TrimSpace(line)), []string{"xyzReadFrom"}}
		}
		symbols = append(symbols, fields[0])
		for j := 1; j <= 3; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, &CError{fmt.Sprintf("pistack: Bad coordinate on atom line %d: %q", i, fields[j]), []string{"xyzReadFrom"}}
			}
			coords = append(coords, v)
		}
	}
	m, err := vec3.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "xyzReadFrom")
	}
	set, err := NewAtomSet(symbols, m)
	if err != nil {
		return nil, errDecorate(err, "xyzReadFrom")
	}
	return set, nil
}

//XYZWrite writes the AtomSet in XYZ format to a file with name xyzname,
//which is created, or overwritten if it exists.
func XYZWrite(xyzname string, set *AtomSet) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return &CError{fmt.Sprintf("pistack: Can't create XYZ file %s: %s", xyzname, err.Error()), []string{"XYZWrite"}}
	}
	defer out.Close()
	fmt.Fprintf(out, "%-4d\n", set.Len())
	fmt.Fprintf(out, "\n")
	for i := 0; i < set.Len(); i++ {
		c := set.Coords(i)
		_, err = fmt.Fprintf(out, "%-2s  %12.6f%12.6f%12.6f\n", set.Symbol(i), c.At(0, 0), c.At(0, 1), c.At(0, 2))
		if err != nil {
			return &CError{fmt.Sprintf("pistack: Can't write to XYZ file %s: %s", xyzname, err.Error()), []string{"XYZWrite"}}
		}
	}
	return nil
}
