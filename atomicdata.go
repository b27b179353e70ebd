/*
 * atomicdata.go, part of pistack.
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
 * pistack is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package pistack

//A map for assigning mass to elements.
//Note that just common "organic" elements are present, which covers the
//chromophore assemblies this library targets.
var symbolMass = map[string]float64{
	"H":  1.00784,
	"C":  12.0107,
	"N":  14.0067,
	"O":  15.999,
	"F":  18.998,
	"P":  30.97,
	"S":  32.06,
	"Cl": 35.45,
	"Br": 79.904,
	"I":  126.90,
}

//SymbolMass returns the atomic mass for the element symbol given,
//and whether the symbol is known to the library.
func SymbolMass(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	return m, ok
}
