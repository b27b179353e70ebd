/*
 * doc.go, part of pistack.
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

//Package pistack computes orientation-aware geometric descriptors for
//stacked planar molecular subunits, such as the three chromophore cores of
//a pi-stacked trimer. From raw cartesian coordinates it obtains, for each
//neighbor of a reference subunit: the signed perpendicular separation, the
//lateral slip (resolved on the in-plane axes of the reference), the
//unsigned tilt between plane normals and the signed twist between major
//in-plane axes. These distinguish stacking motifs (sandwich, slipped,
//zigzag...) that a plain centroid-centroid distance cannot.
//
//Planes are fitted by singular value decomposition of the centered
//coordinates of each subunit. The sign of every fitted axis is arbitrary
//and is canonicalized deterministically before any angle is computed; see
//FittedPlane and its Orient methods.
//
//The library works on one static geometry per call, holds no state
//between invocations, and performs no I/O besides the XYZ convenience
//readers; every analysis of an (environment, variant) pair is independent,
//so batches parallelize trivially (see AnalyzeAll).
package pistack
