/*
 * doc.go, part of goXtal.
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


//Package stf implements the simple trajectory format, used by goXtal to
//store transition paths between a structure and its supergroup.
//stf aims to produce reasonably small files and to be very easy to read and write, so readers/writers
//can be easily implemented in other programing languages, while
//also being reasonably fast to write and, especially, to read.
//
//An stf file is a compressed text file. The compression is chosen from the last
//letter of the file extension: 'l' for lzw, 'z' for gzip, 'r' for flate (deflate), and zstd
//for anything else (the recommended extension is .stf).
//The header has one key=value pair per line, followed by a line "** N" with the number
//of atoms per frame. Each frame has one line per atom, with the 3 coordinates stored
//as integers (the real value multiplied by 10^prec), followed by a line starting with '*'
//which can contain the 9 components of the cell vectors.
//
//Transition paths also record the keys "species" and "groups" in the header, with the
//element of every atom and the space group of each frame.
package stf
