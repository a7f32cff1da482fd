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


//Package chemjson implements serializacion and unserialization of
//goXtal structures and transition paths. It's planned use is the communication of goXtal
//programs with other, independent programs which can be written in
//languages other than Go, as long as those languages can read and write
//one JSON object per line.
//chemjson also implements the transmision of options, so an external
//program can transmit data an options for a job to a goXtal program
//and later collect the results, for instance, via UNIX pipes.
package chemjson
