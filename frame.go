/*
 * frame.go, part of pistack.
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
	"github.com/rmera/pistack/vec3"
)

//ReferenceFrame is a right-handed, orthonormal local coordinate system
//anchored at the centroid of the reference subunit: x along the fitted
//major in-plane axis, y along the minor one, z along the plane normal.
//All other subunits of an assembly are expressed relative to it.
type ReferenceFrame struct {
	Origin    *vec3.Matrix
	X         *vec3.Matrix
	Y         *vec3.Matrix
	Z         *vec3.Matrix
	corrected bool
}

//Corrected returns whether the frame builder had to flip the y axis to
//restore right-handedness.
func (F *ReferenceFrame) Corrected() bool { return F.corrected }

//NewFrame builds the local reference frame of a fitted plane. The basis
//vectors are re-normalized defensively against floating point drift
//accumulated in upstream manipulations. If (x cross y) dot z comes out
//negative, the y axis is flipped to restore right-handedness; the normal is
//never flipped here, since its direction carries the physical meaning for
//tilt signs. A FrameError is returned for a degenerate (zero-length)
//normal, which can only mean the plane itself is broken.
func NewFrame(P *FittedPlane) (*ReferenceFrame, error) {
	if P == nil || P.Normal == nil {
		return nil, &FrameError{msg: "pistack: Can't build a frame from a nil plane"}
	}
	if P.Normal.Norm() <= appzero {
		return nil, &FrameError{msg: "pistack: Fitted plane has a degenerate (zero-length) normal"}
	}
	if P.Axis1.Norm() <= appzero || P.Axis2.Norm() <= appzero {
		return nil, &FrameError{msg: "pistack: Fitted plane has a degenerate in-plane axis"}
	}
	ret := new(ReferenceFrame)
	ret.Origin = vec3.Zeros(1)
	ret.Origin.Copy(P.Centroid)
	ret.X = vec3.Zeros(1)
	ret.X.Unit(P.Axis1)
	ret.Y = vec3.Zeros(1)
	ret.Y.Unit(P.Axis2)
	ret.Z = vec3.Zeros(1)
	ret.Z.Unit(P.Normal)
	cr := vec3.Zeros(1)
	cr.Cross(ret.X, ret.Y)
	if cr.Dot(ret.Z) < 0 {
		ret.Y.Scale(-1, ret.Y)
		ret.corrected = true
	}
	return ret, nil
}
