// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import "github.com/pkg/errors"

// Queue is an unbounded FIFO of cells. The zero value is an empty queue ready
// to use.
type Queue struct {
	buf  []Cell // len(buf) is zero or a power of two
	head int
	n    int
}

// Len returns the number of values in the queue.
func (q *Queue) Len() int {
	return q.n
}

func (q *Queue) grow() {
	c := len(q.buf) * 2
	if c == 0 {
		c = 16
	}
	b := make([]Cell, c)
	q.copyTo(b)
	q.buf, q.head = b, 0
}

// copyTo copies the queue contents, in order, to b.
func (q *Queue) copyTo(b []Cell) {
	if q.n == 0 {
		return
	}
	if q.head+q.n <= len(q.buf) {
		copy(b, q.buf[q.head:q.head+q.n])
		return
	}
	k := copy(b, q.buf[q.head:])
	copy(b[k:], q.buf[:q.n-k])
}

// Push appends values to the back of the queue.
func (q *Queue) Push(v ...Cell) {
	for _, x := range v {
		if q.n == len(q.buf) {
			q.grow()
		}
		q.buf[(q.head+q.n)&(len(q.buf)-1)] = x
		q.n++
	}
}

// Pop removes and returns the value at the front of the queue.
func (q *Queue) Pop() (Cell, bool) {
	if q.n == 0 {
		return 0, false
	}
	v := q.buf[q.head]
	q.head = (q.head + 1) & (len(q.buf) - 1)
	q.n--
	return v, true
}

// PopBack removes and returns the value at the back of the queue.
func (q *Queue) PopBack() (Cell, bool) {
	if q.n == 0 {
		return 0, false
	}
	q.n--
	return q.buf[(q.head+q.n)&(len(q.buf)-1)], true
}

// Peek returns the value at the front of the queue without removing it.
func (q *Queue) Peek() (Cell, bool) {
	if q.n == 0 {
		return 0, false
	}
	return q.buf[q.head], true
}

// At returns the k-th value from the front of the queue. It panics with an
// error if k is out of range, so that misuse from an InputFunc is turned into a
// fatal error of the instance.
func (q *Queue) At(k int) Cell {
	if k < 0 || k >= q.n {
		panic(errors.Errorf("queue index %d out of range [0:%d]", k, q.n))
	}
	return q.buf[(q.head+k)&(len(q.buf)-1)]
}

// Values returns a copy of the queue contents, front first.
func (q *Queue) Values() []Cell {
	b := make([]Cell, q.n)
	q.copyTo(b)
	return b
}

// Drain empties the queue and returns its former contents, front first.
func (q *Queue) Drain() []Cell {
	b := q.Values()
	q.Reset()
	return b
}

// Reset empties the queue. Its storage is kept for reuse.
func (q *Queue) Reset() {
	q.head, q.n = 0, 0
}

func (q *Queue) clone() Queue {
	c := Queue{n: q.n}
	if q.buf != nil {
		c.buf = make([]Cell, len(q.buf))
		q.copyTo(c.buf)
	}
	return c
}
