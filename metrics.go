/*
 * metrics.go, part of pistack.
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
	"runtime"

	"github.com/rmera/pistack/vec3"
)

//Assembly is one stacked trimer geometry to be analyzed: three planar
//subunit cores of the same structure, with the middle one acting as the
//reference for every relative measure.
type Assembly struct {
	Environment string
	Variant     string
	Top         *SubunitCore
	Middle      *SubunitCore
	Bottom      *SubunitCore
}

//Key returns the environment/variant identifier of the assembly.
func (A *Assembly) Key() string {
	return A.Environment + "/" + A.Variant
}

//PairMetrics holds the relative-geometry descriptors of one
//(reference, neighbor) pair of subunits. Dperp is signed (positive along
//the reference +normal), Slip is non-negative, Tilt is in [0,180] and
//Twist in (-180,180]. TwistOK is false when the in-plane axes of either
//plane were too degenerate (near-circular cores) for the twist to be
//trusted; the angle is still reported.
type PairMetrics struct {
	Dperp   float64 `json:"d_perp"`
	SlipX   float64 `json:"slip_x"`
	SlipY   float64 `json:"slip_y"`
	Slip    float64 `json:"slip"`
	Tilt    float64 `json:"tilt"`
	Twist   float64 `json:"twist"`
	TwistOK bool    `json:"twist_ok"`
}

//AssemblyMetrics is the full per-assembly record: pair metrics for the
//middle-top and middle-bottom pairs, the mass-weighted COM-COM distances
//between all three subunits, and the central angle at the middle COM
//between the vectors to the top and bottom COMs.
type AssemblyMetrics struct {
	Environment         string      `json:"environment"`
	Variant             string      `json:"variant"`
	Top                 PairMetrics `json:"top"`
	Bottom              PairMetrics `json:"bottom"`
	COMDistTopMiddle    float64     `json:"COMdist_top_middle"`
	COMDistBottomMiddle float64     `json:"COMdist_bottom_middle"`
	COMDistTopBottom    float64     `json:"COMdist_top_bottom"`
	CentralAngle        float64     `json:"central_angle_COMs"`
}

//FieldNames returns the names of the numeric fields of an AssemblyMetrics
//record, in the order used by Fields and by the CSV reports.
func FieldNames() []string {
	return []string{
		"d_perp_top", "d_perp_bottom",
		"slip_top", "slip_bottom",
		"slip_top_x", "slip_top_y",
		"slip_bottom_x", "slip_bottom_y",
		"tilt_top", "tilt_bottom",
		"twist_top", "twist_bottom",
		"COMdist_top_middle", "COMdist_bottom_middle", "COMdist_top_bottom",
		"central_angle_COMs",
	}
}

//Fields returns the values of every numeric field of the record, in the
//order given by FieldNames.
func (M *AssemblyMetrics) Fields() []float64 {
	return []float64{
		M.Top.Dperp, M.Bottom.Dperp,
		M.Top.Slip, M.Bottom.Slip,
		M.Top.SlipX, M.Top.SlipY,
		M.Bottom.SlipX, M.Bottom.SlipY,
		M.Top.Tilt, M.Bottom.Tilt,
		M.Top.Twist, M.Bottom.Twist,
		M.COMDistTopMiddle, M.COMDistBottomMiddle, M.COMDistTopBottom,
		M.CentralAngle,
	}
}

//Options contains the options for the analysis of assemblies.
type Options struct {
	fit     *FitOptions
	axisRef *vec3.Matrix
	cpus    int
}

//DefaultOptions returns reasonable options: default fit tolerances, the
//automatic axis reference and all available CPUs for batch runs.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.fit = DefaultFitOptions()
	ret.axisRef = nil
	ret.cpus = runtime.NumCPU()
	return ret
}

//Fit returns the plane-fit options, and replaces them, if new ones are
//given.
func (o *Options) Fit(fit ...*FitOptions) *FitOptions {
	ret := o.fit
	if len(fit) > 0 && fit[0] != nil {
		o.fit = fit[0]
	}
	return ret
}

//AxisRef returns the external direction used to canonicalize the sign of
//the reference subunit's major axis, and sets it, if one is given. If
//never set, the laboratory x axis is used, falling back to y and then z
//when the fitted axis is nearly orthogonal to the candidate.
func (o *Options) AxisRef(dir ...*vec3.Matrix) *vec3.Matrix {
	ret := o.axisRef
	if len(dir) > 0 && dir[0] != nil {
		o.axisRef = dir[0]
	}
	return ret
}

//Cpus returns the number of goroutines used by AnalyzeAll and sets it, if
//a valid value is given.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return ret
}

//axis1Reference picks the direction against which the middle subunit's
//major axis sign is fixed. Deterministic by construction: first of the
//candidates that is not nearly orthogonal to the fitted axis.
func axis1Reference(o *Options, axis1 *vec3.Matrix) *vec3.Matrix {
	if o.axisRef != nil {
		return o.axisRef
	}
	candidates := []*vec3.Matrix{
		vec3.NewVec(1, 0, 0),
		vec3.NewVec(0, 1, 0),
		vec3.NewVec(0, 0, 1),
	}
	for _, c := range candidates {
		if v := axis1.Dot(c); v > 1e-6 || v < -1e-6 {
			return c
		}
	}
	return candidates[0] //can't happen for a unit axis1
}

//Analyze computes the full metrics record for one assembly. The three
//planes are fitted (with the centroid-weighting policy of the options),
//their signs are canonicalized (the middle normal toward the top centroid,
//neighbor normals toward the middle normal,
//major axes toward the middle major axis, which itself follows the
//external axis reference), and the middle plane becomes the reference
//frame for all projections and angles. Any failure is returned decorated
//with the (environment, variant, subunit) identity of the offender;
//nothing is masked or retried, since every failure here is a deterministic
//function of the input.
func Analyze(A *Assembly, o *Options) (*AssemblyMetrics, error) {
	if o == nil {
		o = DefaultOptions()
	}
	subunits := []*SubunitCore{A.Top, A.Middle, A.Bottom}
	planes := make([]*FittedPlane, 3)
	for i, su := range subunits {
		if su == nil {
			return nil, &CError{fmt.Sprintf("pistack: %s: Missing subunit", A.Key()), []string{"Analyze"}}
		}
		coords, err := su.Coords()
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("Analyze: %s %s", A.Key(), su.Name()))
		}
		planes[i], err = FitPlane(coords, su.Masses(), o.fit)
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("Analyze: %s %s", A.Key(), su.Name()))
		}
	}
	top, middle, bottom := planes[0], planes[1], planes[2]
	//Sign canonicalization. Without this, tilts and twists are only
	//defined modulo 180 degrees (see the FittedPlane docs), and the sign
	//of the perpendicular separations is left to the whim of the SVD.
	//The middle normal points toward the top subunit, so Dperp is
	//positive on the top side of the stack.
	dtm := vec3.Zeros(1)
	dtm.Sub(top.Centroid, middle.Centroid)
	middle.OrientNormal(dtm)
	middle.OrientAxis1(axis1Reference(o, middle.Axis1))
	top.OrientNormal(middle.Normal)
	bottom.OrientNormal(middle.Normal)
	top.OrientAxis1(middle.Axis1)
	bottom.OrientAxis1(middle.Axis1)
	frame, err := NewFrame(middle)
	if err != nil {
		return nil, errDecorate(err, fmt.Sprintf("Analyze: %s %s", A.Key(), A.Middle.Name()))
	}
	ret := &AssemblyMetrics{Environment: A.Environment, Variant: A.Variant}
	neighbors := []struct {
		plane *FittedPlane
		su    *SubunitCore
		dst   *PairMetrics
	}{
		{top, A.Top, &ret.Top},
		{bottom, A.Bottom, &ret.Bottom},
	}
	for _, nb := range neighbors {
		proj, err := Project(frame, nb.plane.Centroid)
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("Analyze: %s %s", A.Key(), nb.su.Name()))
		}
		nb.dst.Dperp = proj.Dperp
		nb.dst.SlipX = proj.SlipX
		nb.dst.SlipY = proj.SlipY
		nb.dst.Slip = proj.Slip
		nb.dst.Tilt = Tilt(middle, nb.plane)
		nb.dst.Twist = Twist(middle, nb.plane)
		nb.dst.TwistOK = middle.AxesReliable() && nb.plane.AxesReliable()
	}
	//COM-COM summary, always mass-weighted regardless of the fit options.
	coms := make([]*vec3.Matrix, 3)
	for i, su := range subunits {
		coms[i], err = su.COM()
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("Analyze: %s %s", A.Key(), su.Name()))
		}
	}
	vtm := vec3.Zeros(1)
	vtm.Sub(coms[0], coms[1])
	vbm := vec3.Zeros(1)
	vbm.Sub(coms[2], coms[1])
	vtb := vec3.Zeros(1)
	vtb.Sub(coms[0], coms[2])
	ret.COMDistTopMiddle = vtm.Norm()
	ret.COMDistBottomMiddle = vbm.Norm()
	ret.COMDistTopBottom = vtb.Norm()
	if ret.COMDistTopMiddle <= appzero || ret.COMDistBottomMiddle <= appzero {
		//coincident centers of mass leave the central angle undefined
		ret.CentralAngle = 0
	} else {
		ret.CentralAngle = deg * Angle(vtm, vbm)
	}
	return ret, nil
}

//AnalyzeAll runs Analyze concurrently over a batch of independent
//assemblies, using up to o.Cpus() goroutines. It returns the metrics of
//the assemblies that succeeded, keyed by Assembly.Key(), plus the errors
//of those that failed, under the same keys. A malformed structure never
//suppresses the results for the others.
//The assemblies share nothing mutable, so no locking is needed beyond the
//result channel.
func AnalyzeAll(assemblies []*Assembly, o *Options) (map[string]*AssemblyMetrics, map[string]error) {
	if o == nil {
		o = DefaultOptions()
	}
	type result struct {
		key     string
		metrics *AssemblyMetrics
		err     error
	}
	results := make(chan result, len(assemblies))
	sem := make(chan struct{}, o.Cpus())
	for _, A := range assemblies {
		go func(A *Assembly) {
			sem <- struct{}{}
			defer func() { <-sem }()
			m, err := Analyze(A, o)
			results <- result{A.Key(), m, err}
		}(A)
	}
	metrics := make(map[string]*AssemblyMetrics)
	failures := make(map[string]error)
	for range assemblies {
		r := <-results
		if r.err != nil {
			failures[r.key] = r.err
			continue
		}
		metrics[r.key] = r.metrics
	}
	return metrics, failures
}
