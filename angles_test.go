/*
 * angles_test.go, part of pistack.
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
	"testing"

	"github.com/rmera/pistack/vec3"
)

//planeFrom builds a FittedPlane by hand, for angle tests that need exact
//axes rather than fitted ones.
func planeFrom(normal, axis1, axis2 *vec3.Matrix) *FittedPlane {
	return &FittedPlane{
		Centroid: vec3.Zeros(1),
		Normal:   normal,
		Axis1:    axis1,
		Axis2:    axis2,
		axesOK:   true,
	}
}

func labPlane() *FittedPlane {
	return planeFrom(vec3.NewVec(0, 0, 1), vec3.NewVec(1, 0, 0), vec3.NewVec(0, 1, 0))
}

//rotPlane is the laboratory plane rotated by ang (radians) about the x
//axis, then by twist (radians) about its own normal.
func rotPlane(ang, twist float64) *FittedPlane {
	sa, ca := math.Sin(ang), math.Cos(ang)
	st, ct := math.Sin(twist), math.Cos(twist)
	//twist first (about z), then tilt (about x)
	a1 := vec3.NewVec(ct, st*ca, st*sa)
	a2 := vec3.NewVec(-st, ct*ca, ct*sa)
	n := vec3.NewVec(0, -sa, ca)
	return planeFrom(n, a1, a2)
}

func TestAngle(Te *testing.T) {
	x := vec3.NewVec(1, 0, 0)
	y := vec3.NewVec(0, 2, 0)
	if a := Angle(x, x); a != 0 {
		Te.Errorf("Angle of a vector with itself: %f", a)
	}
	if a := Angle(x, y); math.Abs(a-math.Pi/2) > 1e-9 {
		Te.Errorf("Angle between x and y: %f", a)
	}
	//antiparallel, slightly off due to rounding, must not give NaN
	mx := vec3.NewVec(-1, 1e-16, 0)
	if a := Angle(x, mx); math.IsNaN(a) || math.Abs(a-math.Pi) > 1e-6 {
		Te.Errorf("Angle between antiparallel vectors: %f", a)
	}
}

func TestTilt(Te *testing.T) {
	a := labPlane()
	if tilt := Tilt(a, a); math.Abs(tilt) > 1e-9 {
		Te.Errorf("Tilt of a plane with itself: %f", tilt)
	}
	b := rotPlane(math.Pi/6, 0)
	if tilt := Tilt(a, b); math.Abs(tilt-30) > 1e-9 {
		Te.Errorf("Expected a tilt of 30, got %f", tilt)
	}
	if Tilt(a, b) != Tilt(b, a) {
		Te.Error("Tilt must be symmetric")
	}
	//an un-canonicalized (flipped) normal turns theta into 180-theta
	b.Normal.Scale(-1, b.Normal)
	if tilt := Tilt(a, b); math.Abs(tilt-150) > 1e-9 {
		Te.Errorf("Expected a tilt of 150 for the flipped normal, got %f", tilt)
	}
}

func TestTwist(Te *testing.T) {
	a := labPlane()
	if tw := Twist(a, a); math.Abs(tw) > 1e-9 {
		Te.Errorf("Twist of a plane with itself: %f", tw)
	}
	b := rotPlane(0, math.Pi/6)
	if tw := Twist(a, b); math.Abs(tw-30) > 1e-9 {
		Te.Errorf("Expected a twist of +30, got %f", tw)
	}
	if tw := Twist(b, a); math.Abs(tw+30) > 1e-9 {
		Te.Errorf("Twist must be antisymmetric, got %f for the swap", tw)
	}
	//twist survives a moderate tilt of the other plane, with some
	//foreshortening from the in-plane projection
	c := rotPlane(math.Pi/9, math.Pi/6)
	if tw := Twist(a, c); math.Abs(tw-30) > 2 {
		Te.Errorf("Twist of a tilted plane too far off: %f", tw)
	}
}

func TestTwistPerpendicular(Te *testing.T) {
	a := labPlane()
	//the other major axis is parallel to the reference normal, so its
	//in-plane projection vanishes and the twist is reported as zero
	b := planeFrom(vec3.NewVec(1, 0, 0), vec3.NewVec(0, 0, 1), vec3.NewVec(0, 1, 0))
	if tw := Twist(a, b); tw != 0 {
		Te.Errorf("Expected a zero twist for a perpendicular axis, got %f", tw)
	}
}
