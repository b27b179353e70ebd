/*
 * project.go, part of pistack.
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
	"math"

	"github.com/rmera/pistack/vec3"
)

//projTol is the tolerance for the Pythagorean self-check of a projection.
const projTol float64 = 1e-9

//Projection is the decomposition of a centroid-to-centroid displacement
//into a perpendicular separation and an in-plane slip, relative to a
//reference frame. Dperp is signed: positive means the point lies along the
//+z (normal) side of the reference plane. Slip is the magnitude of the
//in-plane component, always non-negative.
type Projection struct {
	Dperp float64
	SlipX float64
	SlipY float64
	Slip  float64
}

//Project decomposes the displacement from the origin of frame to point.
//The perpendicular part is the component along the frame's z axis, and the
//in-plane remainder is resolved on the x and y axes. The decomposition is
//verified against the identity Dperp^2 + Slip^2 = |d|^2; a violation means
//the frame basis is malformed and is returned as an error rather than
//silently producing inconsistent metrics.
func Project(frame *ReferenceFrame, point *vec3.Matrix) (*Projection, error) {
	d := vec3.Zeros(1)
	d.Sub(point, frame.Origin)
	dperp := d.Dot(frame.Z)
	s := vec3.Zeros(1)
	s.Copy(frame.Z)
	s.Scale(dperp, s)
	s.Sub(d, s)
	ret := &Projection{
		Dperp: dperp,
		SlipX: s.Dot(frame.X),
		SlipY: s.Dot(frame.Y),
		Slip:  s.Norm(),
	}
	d2 := d.Dot(d)
	if diff := math.Abs(dperp*dperp + ret.Slip*ret.Slip - d2); diff > projTol*(1+d2) {
		return nil, &CError{fmt.Sprintf("pistack: Projection self-check failed, |d_perp^2+slip^2-d^2| = %.3e; the reference frame is not orthonormal", diff), []string{"Project"}}
	}
	return ret, nil
}
