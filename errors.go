/*
 * errors.go, part of pistack.
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
	"strings"
)

//Error is the interface for errors that all packages in this library
//implement. The Decorate method allows adding and retrieving info from the
//error, without changing its type or wrapping it around something else.
//The decoration slice should contain a list of functions in the calling
//stack, plus, for each function, any relevant information, or nothing.
type Error interface {
	Error() string
	Decorate(string) []string //Decorate allows adding information when passing the error up. Each call also returns the current decoration slice. If passed an empty string, it just returns the current value without adding anything.
}

//CError is the concrete error type used through the library for failures
//that do not need their own type.
type CError struct {
	msg  string
	deco []string
}

func (err *CError) Error() string { return err.msg }

//Decorate adds the dec string to the decoration slice of the error and
//returns the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//errDecorate asserts that err implements Error and decorates it with the
//caller's name before returning it. If given a "foreign" error it wraps
//it in a CError first, so info from lower levels is not lost.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		err2 = &CError{err.Error(), []string{}}
	}
	err2.Decorate(caller)
	return err2
}

//InsufficientPointsError is returned by the plane fitter when given fewer
//than 3 points, from which no plane can be defined.
type InsufficientPointsError struct {
	have int
	deco []string
}

func (err *InsufficientPointsError) Error() string {
	return fmt.Sprintf("pistack: Can't fit a plane to %d points, at least 3 are needed", err.have)
}

//Points returns the number of points that were supplied to the fitter.
func (err *InsufficientPointsError) Points() int { return err.have }

func (err *InsufficientPointsError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//DegeneratePlaneError is returned by the plane fitter when the point cloud
//does not define a meaningful plane: either it is too isotropic (near
//spherical) or too close to a straight line. The singular values of the
//centered coordinates are kept in the error for diagnostics.
type DegeneratePlaneError struct {
	kind  string //"isotropic" or "collinear"
	svals [3]float64
	deco  []string
}

func (err *DegeneratePlaneError) Error() string {
	return fmt.Sprintf("pistack: Degenerate point cloud (%s), singular values: %.3e %.3e %.3e", err.kind, err.svals[0], err.svals[1], err.svals[2])
}

//Kind returns "isotropic" or "collinear".
func (err *DegeneratePlaneError) Kind() string { return err.kind }

//SingularValues returns the singular values of the offending point cloud,
//in decreasing order.
func (err *DegeneratePlaneError) SingularValues() [3]float64 { return err.svals }

func (err *DegeneratePlaneError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//FrameError is returned by the frame builder when given a fitted plane with
//a degenerate (zero-length) normal. It indicates an upstream problem with
//the plane, not a new failure class.
type FrameError struct {
	msg  string
	deco []string
}

func (err *FrameError) Error() string { return err.msg }

func (err *FrameError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//BaselineNotFoundError is returned by the comparison engine when the
//requested baseline variant is not among the computed metrics.
type BaselineNotFoundError struct {
	baseline  string
	available []string
	deco      []string
}

func (err *BaselineNotFoundError) Error() string {
	return fmt.Sprintf("pistack: Baseline variant %q not found, available: %s", err.baseline, strings.Join(err.available, ", "))
}

//Baseline returns the name of the missing baseline variant.
func (err *BaselineNotFoundError) Baseline() string { return err.baseline }

func (err *BaselineNotFoundError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
