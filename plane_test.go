/*
 * plane_test.go, part of pistack.
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
	"errors"
	"math"
	"testing"

	"github.com/rmera/pistack/vec3"
)

func mustMatrix(Te *testing.T, data []float64) *vec3.Matrix {
	m, err := vec3.NewMatrix(data)
	if err != nil {
		Te.Fatal(err)
	}
	return m
}

//a 2x1 rectangle in the z=2 plane. The aspect ratio matters: a square has
//two equal in-plane singular values, so its axes are not well defined.
func flatRect(Te *testing.T) *vec3.Matrix {
	return mustMatrix(Te, []float64{
		1, 0.5, 2,
		1, -0.5, 2,
		-1, 0.5, 2,
		-1, -0.5, 2,
	})
}

func TestFitPlaneRectangle(Te *testing.T) {
	P, err := FitPlane(flatRect(Te), nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	for j, want := range []float64{0, 0, 2} {
		if math.Abs(P.Centroid.At(0, j)-want) > 1e-9 {
			Te.Errorf("Wrong centroid component %d: %f", j, P.Centroid.At(0, j))
		}
	}
	z := vec3.NewVec(0, 0, 1)
	if d := math.Abs(P.Normal.Dot(z)); math.Abs(d-1) > 1e-9 {
		Te.Errorf("Normal is not along z, |dot|: %f", d)
	}
	x := vec3.NewVec(1, 0, 0)
	if d := math.Abs(P.Axis1.Dot(x)); math.Abs(d-1) > 1e-9 {
		Te.Errorf("Major axis is not along x, |dot|: %f", d)
	}
	s := P.SingularValues()
	if math.Abs(s[0]-2) > 1e-9 || math.Abs(s[1]-1) > 1e-9 || s[2] > 1e-9 {
		Te.Errorf("Wrong singular values: %v", s)
	}
	if !P.AxesReliable() {
		Te.Error("Axes of a 2x1 rectangle should be reliable")
	}
}

func TestFitPlaneTilted(Te *testing.T) {
	//the rectangle rotated 30 degrees about x, normal (0,-sin30,cos30)
	sin, cos := math.Sin(math.Pi/6), math.Cos(math.Pi/6)
	data := make([]float64, 0, 12)
	for _, c := range [][2]float64{{1, 0.5}, {1, -0.5}, {-1, 0.5}, {-1, -0.5}} {
		data = append(data, c[0], c[1]*cos, c[1]*sin)
	}
	P, err := FitPlane(mustMatrix(Te, data), nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	n := vec3.NewVec(0, -sin, cos)
	if d := math.Abs(P.Normal.Dot(n)); math.Abs(d-1) > 1e-9 {
		Te.Errorf("Wrong tilted normal, |dot| with expected: %f", d)
	}
}

func TestFitPlaneInsufficientPoints(Te *testing.T) {
	coords := mustMatrix(Te, []float64{0, 0, 0, 1, 0, 0})
	_, err := FitPlane(coords, nil, nil)
	var perr *InsufficientPointsError
	if !errors.As(err, &perr) {
		Te.Fatalf("Expected an InsufficientPointsError, got %v", err)
	}
	if perr.Points() != 2 {
		Te.Errorf("Wrong point count in error: %d", perr.Points())
	}
}

func TestFitPlaneCollinear(Te *testing.T) {
	coords := mustMatrix(Te, []float64{0, 0, 0, 1, 0, 0, 2, 0, 0, 3, 0, 0})
	_, err := FitPlane(coords, nil, nil)
	var derr *DegeneratePlaneError
	if !errors.As(err, &derr) {
		Te.Fatalf("Expected a DegeneratePlaneError, got %v", err)
	}
	if derr.Kind() != "collinear" {
		Te.Errorf("Wrong degeneracy kind: %s", derr.Kind())
	}
}

func TestFitPlaneIsotropic(Te *testing.T) {
	//octahedron vertices: all three singular values are equal
	coords := mustMatrix(Te, []float64{
		1, 0, 0, -1, 0, 0,
		0, 1, 0, 0, -1, 0,
		0, 0, 1, 0, 0, -1,
	})
	_, err := FitPlane(coords, nil, nil)
	var derr *DegeneratePlaneError
	if !errors.As(err, &derr) {
		Te.Fatalf("Expected a DegeneratePlaneError, got %v", err)
	}
	if derr.Kind() != "isotropic" {
		Te.Errorf("Wrong degeneracy kind: %s", derr.Kind())
	}
	s := derr.SingularValues()
	if math.Abs(s[0]-s[2]) > 1e-9 {
		Te.Errorf("Octahedron singular values are not equal: %v", s)
	}
}

func TestFitPlaneWeightedCentroid(Te *testing.T) {
	coords := mustMatrix(Te, []float64{0, 0, 0, 2, 0, 0, 0, 2, 0})
	masses := []float64{1, 1, 2}
	o := DefaultFitOptions()
	o.Weighted(true)
	P, err := FitPlane(coords, masses, o)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(P.Centroid.At(0, 0)-0.5) > 1e-9 || math.Abs(P.Centroid.At(0, 1)-1) > 1e-9 {
		Te.Errorf("Wrong weighted centroid: %v", P.Centroid)
	}
	unw, err := FitPlane(coords, masses, DefaultFitOptions())
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(unw.Centroid.At(0, 0)-2.0/3) > 1e-9 {
		Te.Errorf("Wrong unweighted centroid: %v", unw.Centroid)
	}
}

func TestFitPlaneSquareAxesUnreliable(Te *testing.T) {
	coords := mustMatrix(Te, []float64{1, 1, 0, 1, -1, 0, -1, 1, 0, -1, -1, 0})
	P, err := FitPlane(coords, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if P.AxesReliable() {
		Te.Error("The in-plane axes of a square should be flagged as unreliable")
	}
	//the normal is still perfectly fine
	z := vec3.NewVec(0, 0, 1)
	if d := math.Abs(P.Normal.Dot(z)); math.Abs(d-1) > 1e-9 {
		Te.Errorf("Square normal is not along z, |dot|: %f", d)
	}
}

func TestOrient(Te *testing.T) {
	P, err := FitPlane(flatRect(Te), nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	dir := vec3.Zeros(1)
	dir.Scale(-1, P.Normal)
	a1 := vec3.Zeros(1)
	a1.Copy(P.Axis1)
	P.OrientNormal(dir)
	if P.Normal.Dot(dir) < 0 {
		Te.Error("OrientNormal did not flip the normal")
	}
	if math.Abs(P.Axis1.Dot(a1)-1) > 1e-9 {
		Te.Error("OrientNormal must not touch the in-plane axes")
	}
	//OrientAxis1, on a fresh fit so the handedness invariant still holds
	Q, err := FitPlane(flatRect(Te), nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	dir.Scale(-1, Q.Axis1)
	a2 := vec3.Zeros(1)
	a2.Copy(Q.Axis2)
	Q.OrientAxis1(dir)
	if Q.Axis1.Dot(dir) < 0 {
		Te.Error("OrientAxis1 did not flip the major axis")
	}
	if math.Abs(Q.Axis2.Dot(a2)+1) > 1e-9 {
		Te.Error("OrientAxis1 must flip Axis2 along with Axis1")
	}
	//the triad stays right-handed through the axis flip
	cr := vec3.Zeros(1)
	cr.Cross(Q.Axis1, Q.Axis2)
	if cr.Dot(Q.Normal) < 0 {
		Te.Error("Axis flip broke the handedness of the triad")
	}
}
