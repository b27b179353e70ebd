/*
 * angles.go, part of pistack.
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
	"math"

	"github.com/rmera/pistack/vec3"
)

const deg = 180 / math.Pi

//clamp corrects the floating point overshoot of a cosine/sine argument
//before it goes into an inverse trigonometric function. Skipping this
//produces NaN for vectors that are numerically just past parallel or
//antiparallel.
func clamp(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

//Angle returns the angle, in radians, between the first vecs of v1 and v2.
//The result is in [0, pi].
func Angle(v1, v2 *vec3.Matrix) float64 {
	argument := v1.Dot(v2) / (v1.Norm() * v2.Norm())
	angle := math.Acos(clamp(argument))
	if math.Abs(angle) <= appzero {
		return 0.0
	}
	return angle
}

//Tilt returns the unsigned angle, in degrees and in [0,180], between the
//normals of the two fitted planes.
//Tilt is symmetric in its arguments. Note that, being unsigned, it cannot
//distinguish a plane whose normal merely points the other way from one that
//is genuinely flipped relative to the stack: flipping the sign of either
//normal turns a tilt of theta into 180-theta. This is inherent to the
//formulation; canonicalize normal signs (OrientNormal) before comparing
//across structures instead of expecting Tilt to resolve it.
func Tilt(a, b *FittedPlane) float64 {
	na := vec3.Zeros(1)
	na.Unit(a.Normal)
	nb := vec3.Zeros(1)
	nb.Unit(b.Normal)
	return deg * math.Acos(clamp(na.Dot(nb)))
}

//Twist returns the signed in-plane rotational offset, in degrees and in
//(-180,180], from the major axis of ref to the major axis of other,
//measured about the normal of ref with the right-hand rule. Both axes are
//first projected into the reference plane; if either projection is
//numerically zero (the other plane stands perpendicular to ref), the twist
//is returned as 0.
//Twist is antisymmetric: swapping the planes negates it. It is only
//meaningful once the sign of both major axes has been canonicalized
//consistently (OrientAxis1); otherwise it is defined modulo 180 degrees.
func Twist(ref, other *FittedPlane) float64 {
	n := vec3.Zeros(1)
	n.Unit(ref.Normal)
	u := projectOut(ref.Axis1, n)
	v := projectOut(other.Axis1, n)
	if u.Norm() <= appzero || v.Norm() <= appzero {
		return 0.0
	}
	u.Unit(u)
	v.Unit(v)
	cr := vec3.Zeros(1)
	cr.Cross(u, v)
	sin := clamp(cr.Dot(n))
	cos := clamp(u.Dot(v))
	phi := deg * math.Atan2(sin, cos)
	if phi <= -180 { //atan2 returns (-pi,pi], but keep the contract explicit
		phi += 360
	}
	return phi
}

//projectOut returns the component of v orthogonal to the unit vector n.
func projectOut(v, n *vec3.Matrix) *vec3.Matrix {
	ret := vec3.Zeros(1)
	ret.Copy(n)
	ret.Scale(v.Dot(n), ret)
	ret.Sub(v, ret)
	return ret
}
