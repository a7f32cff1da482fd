/*
 * equiv.go, part of goXtal.
 *
 *
 * Copyright 2024 The goXtal developers
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

package symop

// AreEquivalent returns true if the fractional points p and q differ by a
// lattice translation, up to a Euclidean distance tol in fractional units
// (the difference is first brought to its periodic image closest to zero).
func AreEquivalent(p, q Vec, tol float64) bool {
	return p.Sub(q).PBC().Norm() < tol
}

// Distance returns the Cartesian distance between the fractional points p
// and q in the lattice cell (rows are the cell vectors), taking the
// closest periodic image. The component-wise closest image is refined over
// the 27 neighbouring cells, so skewed cells are handled correctly.
func Distance(p, q Vec, cell Mat) float64 {
	return CartesianNorm(p.Sub(q), cell)
}

// CartesianNorm returns the length of the shortest lattice-equivalent image
// of the fractional displacement d.
func CartesianNorm(d Vec, cell Mat) float64 {
	d = d.PBC()
	best := -1.0
	ct := cell.T()
	for i := -1.0; i <= 1; i++ {
		for j := -1.0; j <= 1; j++ {
			for k := -1.0; k <= 1; k++ {
				n := ct.MulVec(d.Add(Vec{i, j, k})).Norm()
				if best < 0 || n < best {
					best = n
				}
			}
		}
	}
	return best
}

// AreEquivalentCart is the metric variant of AreEquivalent: tol is a
// Cartesian distance in the lattice cell.
func AreEquivalentCart(p, q Vec, cell Mat, tol float64) bool {
	return Distance(p, q, cell) < tol
}

// ToCartesian converts the fractional point f into Cartesian coordinates.
func ToCartesian(f Vec, cell Mat) Vec {
	return cell.T().MulVec(f)
}

// ToFractional converts a Cartesian point into fractional coordinates.
func ToFractional(c Vec, cell Mat) (Vec, error) {
	ci, err := cell.T().Inverse()
	if err != nil {
		return Vec{}, err
	}
	return ci.MulVec(c), nil
}
