/*
 * plane.go, part of pistack.
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
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//orthoTol is the tolerance for the orthonormality invariant of a fitted
//plane basis. It is not configurable: a basis that is further than this
//from orthonormal indicates a bug, not a property of the input.
const orthoTol float64 = 1e-9

//FitOptions contains the numerical tolerances and the centroid-weighting
//policy for plane fitting. The same options must be used for every variant
//of a comparison, or the deltas lose their meaning.
type FitOptions struct {
	weighted     bool
	degenTol     float64
	collinearTol float64
	axisGapTol   float64
}

//DefaultFitOptions returns options with mass-weighting of the centroid
//disabled (the orientation fit is always unweighted) and reasonable
//tolerances for molecular point clouds.
func DefaultFitOptions() *FitOptions {
	ret := new(FitOptions)
	ret.weighted = false
	ret.degenTol = 0.01
	ret.collinearTol = 1e-9
	ret.axisGapTol = 0.05
	return ret
}

//Weighted returns whether the centroid of the fit is mass-weighted, and
//sets the value to the one given, if any. Note that this only affects the
//placement of the centroid: the orientation is always fitted on the
//centered, unweighted positions.
func (o *FitOptions) Weighted(w ...bool) bool {
	ret := o.weighted
	if len(w) > 0 {
		o.weighted = w[0]
	}
	return ret
}

//DegeneracyTol returns the relative tolerance below which the spread
//between the largest and smallest singular values marks the point cloud as
//too isotropic for a plane fit, and sets it, if a valid value is given.
func (o *FitOptions) DegeneracyTol(tol ...float64) float64 {
	ret := o.degenTol
	if len(tol) > 0 && tol[0] > 0 {
		o.degenTol = tol[0]
	}
	return ret
}

//CollinearTol returns the relative tolerance below which the second
//singular value marks the point cloud as near-collinear, and sets it, if a
//valid value is given.
func (o *FitOptions) CollinearTol(tol ...float64) float64 {
	ret := o.collinearTol
	if len(tol) > 0 && tol[0] > 0 {
		o.collinearTol = tol[0]
	}
	return ret
}

//AxisGapTol returns the relative gap between the two largest singular
//values below which the in-plane axes are flagged as unreliable (so twists
//computed from them are low-confidence), and sets it, if a valid value is
//given.
func (o *FitOptions) AxisGapTol(tol ...float64) float64 {
	ret := o.axisGapTol
	if len(tol) > 0 && tol[0] > 0 {
		o.axisGapTol = tol[0]
	}
	return ret
}

//FittedPlane is the result of a principal-axis fit to a point set: the
//centroid, the unit normal (least-variance direction) and the two in-plane
//unit axes, ordered by decreasing variance. The basis is orthonormal and
//right-handed, but the sign of each vector is arbitrary until one of the
//Orient methods canonicalizes it; comparing planes across structures
//without canonicalizing first gives angles that are only defined modulo
//180 degrees.
type FittedPlane struct {
	Centroid *vec3.Matrix
	Normal   *vec3.Matrix
	Axis1    *vec3.Matrix
	Axis2    *vec3.Matrix
	svals    [3]float64
	axesOK   bool
}

//SingularValues returns the singular values of the centered coordinates of
//the fit, in decreasing order.
func (P *FittedPlane) SingularValues() [3]float64 { return P.svals }

//AxesReliable returns whether the two largest singular values of the fit
//were separated enough for Axis1/Axis2 to be numerically meaningful. The
//normal is always trustworthy when the fit itself succeeded; only in-plane
//quantities (i.e. twists) are affected.
func (P *FittedPlane) AxesReliable() bool { return P.axesOK }

//OrientNormal flips the sign of the normal, if needed, so that it has a
//non-negative dot product with dir. It resolves the sign ambiguity of the
//SVD deterministically; dir is typically the displacement toward a
//neighboring subunit, or that subunit's already-canonical normal.
//Only the normal is touched, as its direction carries the physical
//"which side of the stack" meaning.
func (P *FittedPlane) OrientNormal(dir *vec3.Matrix) {
	if P.Normal.Dot(dir) < 0 {
		P.Normal.Scale(-1, P.Normal)
	}
}

//OrientAxis1 flips the sign of Axis1, if needed, so that it has a
//non-negative dot product with dir. Axis2 is flipped along with it, which
//keeps the {Axis1, Axis2, Normal} triad right-handed.
func (P *FittedPlane) OrientAxis1(dir *vec3.Matrix) {
	if P.Axis1.Dot(dir) < 0 {
		P.Axis1.Scale(-1, P.Axis1)
		P.Axis2.Scale(-1, P.Axis2)
	}
}

//FitPlane fits a plane to the points in coords by singular value
//decomposition of the centered coordinates: the first two right singular
//vectors become the in-plane axes and the third, least-variance one, the
//normal. If o is nil, defaults are used. masses may be nil; it is only
//used when the weighted-centroid option is set, and only for placing the
//centroid.
//It returns an InsufficientPointsError for fewer than 3 points and a
//DegeneratePlaneError for point clouds that are too isotropic or too close
//to collinear for the normal to mean anything.
func FitPlane(coords *vec3.Matrix, masses []float64, o *FitOptions) (*FittedPlane, error) {
	if o == nil {
		o = DefaultFitOptions()
	}
	n := coords.NVecs()
	if n < 3 {
		return nil, &InsufficientPointsError{have: n}
	}
	var w []float64
	if o.weighted && masses != nil {
		w = masses
	}
	centroid := CenterOfMass(coords, w)
	centered := vec3.Zeros(n)
	centered.SubVec(coords, centroid)
	var svd mat.SVD
	if ok := svd.Factorize(vec3.Matrix2Dense(centered), mat.SVDThin); !ok {
		return nil, &CError{"pistack: SVD of centered coordinates failed to converge", []string{"FitPlane"}}
	}
	s := svd.Values(nil) //decreasing order
	var svals [3]float64
	copy(svals[:], s)
	if svals[0]-svals[2] <= o.degenTol*svals[0] {
		return nil, &DegeneratePlaneError{kind: "isotropic", svals: svals}
	}
	if svals[1] <= o.collinearTol*svals[0] {
		return nil, &DegeneratePlaneError{kind: "collinear", svals: svals}
	}
	var v mat.Dense
	svd.VTo(&v)
	ret := &FittedPlane{
		Centroid: centroid,
		Axis1:    colVec(&v, 0),
		Axis2:    colVec(&v, 1),
		Normal:   colVec(&v, 2),
		svals:    svals,
		axesOK:   (svals[0]-svals[1])/svals[0] > o.axisGapTol,
	}
	//The SVD gives each singular vector up to a sign, so the triad can come
	//out left-handed. Flipping Axis2 restores handedness without touching
	//the normal or the major axis.
	cr := vec3.Zeros(1)
	cr.Cross(ret.Axis1, ret.Axis2)
	if cr.Dot(ret.Normal) < 0 {
		ret.Axis2.Scale(-1, ret.Axis2)
	}
	if err := ret.checkBasis(); err != nil {
		return nil, errDecorate(err, "FitPlane")
	}
	return ret, nil
}

//checkBasis verifies the orthonormality invariant of the fitted basis.
func (P *FittedPlane) checkBasis() error {
	basis := []*vec3.Matrix{P.Axis1, P.Axis2, P.Normal}
	names := []string{"axis1", "axis2", "normal"}
	for i, v := range basis {
		if math.Abs(v.Norm()-1) > orthoTol {
			return &CError{fmt.Sprintf("pistack: Fitted %s is not unit length: %.12f", names[i], v.Norm()), []string{"checkBasis"}}
		}
		for j := i + 1; j < 3; j++ {
			if d := math.Abs(v.Dot(basis[j])); d > orthoTol {
				return &CError{fmt.Sprintf("pistack: Fitted %s and %s are not orthogonal, dot: %.3e", names[i], names[j], d), []string{"checkBasis"}}
			}
		}
	}
	return nil
}

//colVec returns the jth column of the 3xN matrix A as a row vector.
func colVec(A *mat.Dense, j int) *vec3.Matrix {
	ret := vec3.Zeros(1)
	for k := 0; k < 3; k++ {
		ret.Set(0, k, A.At(k, j))
	}
	return ret
}
