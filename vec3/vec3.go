/*
 * vec3.go, part of pistack.
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

//Package vec3 implements a container for sets of vectors in 3D space,
//as a thin wrapper over the gonum dense matrix. Within the package it is
//understood that a "vector" is a row vector, i.e. the cartesian coordinates
//of a point in 3D space. The names of several functions reflect this.
package vec3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Matrix is a set of vectors in 3D space, stored as the rows
//of a gonum dense matrix. It must be able to implement any gonum interface.
type Matrix struct {
	*mat.Dense
}

//Matrix2Dense returns the gonum dense matrix underlying A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"vec3.NewMatrix"}}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//NewVec returns a 1-vector Matrix with the components x, y and z.
func NewVec(x, y, z float64) *Matrix {
	return &Matrix{mat.NewDense(1, 3, []float64{x, y, z})}
}

//METHODS

//NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//VecView returns a view of the ith vector of the matrix.
//Changes in the view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//Scale wraps mat.Scale to take care of the case when A is also the
//receiver. Since the receiver is a Matrix, the mat function would check
//A against the embedded Dense and not know that internally
//F.Dense==A.Dense, hence the need for this function.
func (F *Matrix) Scale(f float64, A *Matrix) {
	F.Dense.Scale(f, A.Dense)
}

//Sub wraps mat.Sub, for the same reason as Scale.
func (F *Matrix) Sub(A, B *Matrix) {
	F.Dense.Sub(A.Dense, B.Dense)
}

//Add wraps mat.Add, for the same reason as Scale.
func (F *Matrix) Add(A, B *Matrix) {
	F.Dense.Add(A.Dense, B.Dense)
}

//SomeVecs puts in the receiver the vectors of A with the indexes given
//in clist, in the same order as the clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr != len(clist) || ar < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		for j := 0; j < 3; j++ {
			F.Set(key, j, A.At(val, j))
		}
	}
}

//SomeVecsSafe is as SomeVecs, but returns an error instead of panicking.
func (F *Matrix) SomeVecsSafe(A *Matrix, clist []int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case PanicMsg:
				err = Error{string(e), []string{"vec3.SomeVecsSafe"}}
			case mat.Error:
				err = Error{fmt.Sprintf("pistack/vec3: Error in gonum function: %s", e.Error()), []string{"vec3.SomeVecsSafe"}}
			default:
				panic(r)
			}
		}
	}()
	for _, v := range clist {
		if v >= A.NVecs() || v < 0 {
			panic(ErrIndexOutOfRange)
		}
	}
	F.SomeVecs(A, clist)
	return err
}

//AddVec adds the vector vec to each vector of the matrix A, putting
//the result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		j := A.VecView(i)
		f := F.VecView(i)
		f.Add(j, vec)
	}
}

//SubVec subtracts the vector vec from each vector of the matrix A, putting
//the result on the receiver. It will not work if A and vec reference
//the same Matrix.
func (F *Matrix) SubVec(A, vec *Matrix) {
	vec.Scale(-1, vec)
	F.AddVec(A, vec)
	vec.Scale(-1, vec)
}

//Cross puts the cross product of the first vecs of a and b in the first
//vec of F. Panics on error.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() < 1 || b.NVecs() < 1 || F.NVecs() < 1 {
		panic(ErrNoCrossProduct)
	}
	//careful not to overwrite the arguments before reading them, F could
	//alias either one.
	x := a.At(0, 1)*b.At(0, 2) - a.At(0, 2)*b.At(0, 1)
	y := a.At(0, 2)*b.At(0, 0) - a.At(0, 0)*b.At(0, 2)
	z := a.At(0, 0)*b.At(0, 1) - a.At(0, 1)*b.At(0, 0)
	F.Set(0, 0, x)
	F.Set(0, 1, y)
	F.Set(0, 2, z)
}

//Dot returns the dot product of the first vecs of F and B.
func (F *Matrix) Dot(B *Matrix) float64 {
	if F.NVecs() < 1 || B.NVecs() < 1 {
		panic(ErrNotEnoughElements)
	}
	return floats.Dot(F.RawRowView(0), B.RawRowView(0))
}

//Norm returns the Euclidean norm of the first vec of F.
func (F *Matrix) Norm() float64 {
	if F.NVecs() < 1 {
		panic(ErrNotEnoughElements)
	}
	return floats.Norm(F.RawRowView(0), 2)
}

//Unit puts in the receiver the unit vector in the direction of the
//first vec of A. Panics if A is a zero vector.
func (F *Matrix) Unit(A *Matrix) {
	norm := A.Norm()
	if norm <= appzero {
		panic(ErrZeroVector)
	}
	if F.Dense != A.Dense {
		F.Copy(A)
	}
	F.Scale(1.0/norm, F)
}

//String returns a neat string representation of a Matrix.
func (F *Matrix) String() string {
	r, c := F.Dims()
	v := make([]string, r+2)
	v[0] = "\n["
	v[len(v)-1] = " ]"
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, F.Dense)
		v[i+1] = fmt.Sprintf(" %6.3f %6.3f %6.3f\n", row[0], row[1], row[2])
	}
	v[len(v)-2] = strings.Replace(v[len(v)-2], "\n", "", 1)
	return strings.Join(v, "")
}

//Det returns the determinant of a 3x3 matrix. Panics if the matrix is not 3x3.
func Det(A mat.Matrix) float64 {
	r, c := A.Dims()
	if r != 3 || c != 3 {
		panic(ErrDeterminant)
	}
	return (A.At(0, 0)*(A.At(1, 1)*A.At(2, 2)-A.At(2, 1)*A.At(1, 2)) - A.At(1, 0)*(A.At(0, 1)*A.At(2, 2)-A.At(2, 1)*A.At(0, 2)) + A.At(2, 0)*(A.At(0, 1)*A.At(1, 2)-A.At(1, 1)*A.At(0, 2)))
}

//Errors

//Error is an error in a vec3 operation. It can be decorated with the
//names of the callers as it goes up the call stack.
type Error struct {
	message string
	deco    []string
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate adds the dec string to the decoration slice of strings of the
//error, and returns the resulting slice. If dec is empty, the current
//decoration is returned unchanged.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//PanicMsg is a message used for panics. It does satisfy the error interface,
//but for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix      = PanicMsg("pistack/vec3: A Matrix should have 3 columns")
	ErrNoCrossProduct    = PanicMsg("pistack/vec3: Invalid matrix for cross product")
	ErrNotEnoughElements = PanicMsg("pistack/vec3: not enough elements in Matrix")
	ErrZeroVector        = PanicMsg("pistack/vec3: Attempted to normalize a zero-length vector")
	ErrDeterminant       = PanicMsg("pistack/vec3: Determinants are only available for 3x3 matrices")
	ErrShape             = PanicMsg("pistack/vec3: Dimension mismatch")
	ErrIndexOutOfRange   = PanicMsg("pistack/vec3: index out of range")
)
