/*
 * vec3_test.go, part of pistack.
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

package vec3

import (
	"math"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("Expected 2 vecs, got %d", A.NVecs())
	}
	if A.At(1, 2) != 6 {
		Te.Errorf("Wrong element (1,2): %f", A.At(1, 2))
	}
	_, err = NewMatrix([]float64{1, 2, 3, 4})
	if err == nil {
		Te.Error("Expected an error for a slice of length 4")
	}
}

func TestCrossAndDot(Te *testing.T) {
	x := NewVec(1, 0, 0)
	y := NewVec(0, 1, 0)
	cr := Zeros(1)
	cr.Cross(x, y)
	if math.Abs(cr.At(0, 2)-1) > appzero || math.Abs(cr.At(0, 0)) > appzero || math.Abs(cr.At(0, 1)) > appzero {
		Te.Errorf("x cross y is not z: %v", cr)
	}
	if math.Abs(x.Dot(y)) > appzero {
		Te.Errorf("x dot y is not 0: %f", x.Dot(y))
	}
	//Cross must survive aliasing the receiver with an argument.
	a := NewVec(1, 2, 3)
	b := NewVec(4, 5, 6)
	want := Zeros(1)
	want.Cross(a, b)
	a.Cross(a, b)
	for i := 0; i < 3; i++ {
		if math.Abs(a.At(0, i)-want.At(0, i)) > appzero {
			Te.Errorf("Aliased cross product differs at %d: %f vs %f", i, a.At(0, i), want.At(0, i))
		}
	}
}

func TestNormAndUnit(Te *testing.T) {
	v := NewVec(3, 4, 0)
	if math.Abs(v.Norm()-5) > appzero {
		Te.Errorf("Wrong norm: %f", v.Norm())
	}
	u := Zeros(1)
	u.Unit(v)
	if math.Abs(u.Norm()-1) > appzero {
		Te.Errorf("Unit vector has norm %f", u.Norm())
	}
	defer func() {
		if r := recover(); r == nil {
			Te.Error("Expected a panic when normalizing a zero vector")
		}
	}()
	u.Unit(Zeros(1))
}

//the arithmetic wrappers must keep working when the receiver is also an
//argument: the underlying gonum functions only allow that when they can
//see both sides are the very same Dense.
func TestAliasedArithmetic(Te *testing.T) {
	v := NewVec(1, 2, 3)
	v.Scale(2, v)
	if v.At(0, 0) != 2 || v.At(0, 2) != 6 {
		Te.Errorf("Aliased scale gave %v", v)
	}
	s := NewVec(3, 4, 0)
	s.Sub(s, NewVec(1, 1, 0))
	if s.At(0, 0) != 2 || s.At(0, 1) != 3 {
		Te.Errorf("Aliased subtraction gave %v", s)
	}
	a := NewVec(1, 1, 1)
	a.Add(a, a)
	if a.At(0, 0) != 2 || a.At(0, 2) != 2 {
		Te.Errorf("Aliased addition gave %v", a)
	}
	u := NewVec(0, 0, 5)
	u.Unit(u)
	if math.Abs(u.Norm()-1) > appzero || math.Abs(u.At(0, 2)-1) > appzero {
		Te.Errorf("Aliased normalization gave %v", u)
	}
}

func TestAddSubVec(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 1, 1, 2, 2, 2})
	v := NewVec(1, 0, -1)
	B := Zeros(2)
	B.AddVec(A, v)
	if B.At(0, 0) != 2 || B.At(1, 2) != 1 {
		Te.Errorf("AddVec gave %v", B)
	}
	C := Zeros(2)
	C.SubVec(B, v)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(C.At(i, j)-A.At(i, j)) > appzero {
				Te.Errorf("SubVec did not undo AddVec at (%d,%d)", i, j)
			}
		}
	}
	//SubVec restores its vec argument
	if v.At(0, 0) != 1 || v.At(0, 2) != -1 {
		Te.Errorf("SubVec corrupted its argument: %v", v)
	}
}

func TestSomeVecsSafe(Te *testing.T) {
	A, _ := NewMatrix([]float64{0, 0, 0, 1, 1, 1, 2, 2, 2})
	F := Zeros(2)
	if err := F.SomeVecsSafe(A, []int{2, 0}); err != nil {
		Te.Fatal(err)
	}
	if F.At(0, 0) != 2 || F.At(1, 0) != 0 {
		Te.Errorf("Wrong vecs extracted: %v", F)
	}
	if err := F.SomeVecsSafe(A, []int{0, 5}); err == nil {
		Te.Error("Expected an error for an out-of-range index")
	}
}

func TestVecView(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	v := A.VecView(1)
	v.Set(0, 0, 40)
	if A.At(1, 0) != 40 {
		Te.Error("Changing a view did not change the viewed matrix")
	}
}

func TestDet(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	if math.Abs(Det(A)-1) > appzero {
		Te.Errorf("Determinant of the identity is %f", Det(A))
	}
}
