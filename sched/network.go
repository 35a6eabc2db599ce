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

package sched

import (
	"context"
	"fmt"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// EmptyValue is the value read by a node whose packet queue is empty.
const EmptyValue vm.Cell = -1

// Packet is a message sent by a network node. A node sends a packet by
// outputting the destination address, followed by X and Y.
type Packet struct {
	Dest vm.Cell
	X, Y vm.Cell
}

func (p Packet) String() string {
	return fmt.Sprintf("%d:(%d,%d)", p.Dest, p.X, p.Y)
}

// A Monitor receives the packets sent to addresses outside of a network and
// decides when the network should stop.
type Monitor interface {
	// Deliver is called for every packet sent to an address outside the
	// network. If it returns true, the network stops and the packet is
	// returned by Network.Run.
	Deliver(p Packet) (stop bool)
	// Idle is called when all nodes are blocked on empty queues. It can return
	// a packet to be delivered to a node of the network (ok true) and request
	// that the network stops after that (stop true), in which case the packet
	// is returned by Network.Run. If ok is false, the network is deadlocked.
	Idle() (wake Packet, stop, ok bool)
}

// Network is a set of machines running the same program that exchange packets.
// Node k first reads its address k, then reads X and Y values of the packets
// sent to it, in order. When its queue is empty, it reads EmptyValue and its
// turn ends.
type Network struct {
	nodes  []*vm.Instance
	queues []vm.Queue
	inputs []vm.InputFunc
	idle   []bool
}

// NewNetwork creates a network of size nodes.
func NewNetwork(program []vm.Cell, size int, opts ...Option) (*Network, error) {
	if size <= 0 {
		return nil, errors.Errorf("network: invalid size %d", size)
	}
	s := newSettings(opts)
	n := &Network{
		nodes:  make([]*vm.Instance, size),
		queues: make([]vm.Queue, size),
		inputs: make([]vm.InputFunc, size),
		idle:   make([]bool, size),
	}
	for k := range n.nodes {
		i, err := vm.New(program, s.vmOpts...)
		if err != nil {
			return nil, errors.Wrapf(err, "network: node %d", k)
		}
		n.nodes[k] = i
		n.queues[k].Push(vm.Cell(k))
		n.inputs[k] = n.nodeInput(k)
	}
	return n, nil
}

func (n *Network) nodeInput(k int) vm.InputFunc {
	q := &n.queues[k]
	return func(*vm.Instance) (vm.Cell, bool) {
		if v, ok := q.Pop(); ok {
			return v, true
		}
		n.idle[k] = true
		return EmptyValue, true
	}
}

// Nodes returns the machines of the network, indexed by address.
func (n *Network) Nodes() []*vm.Instance {
	return n.nodes
}

// Send queues packet p at its destination node. It returns false if
// p.Dest is outside the network.
func (n *Network) Send(p Packet) bool {
	if p.Dest < 0 || p.Dest >= vm.Cell(len(n.nodes)) {
		return false
	}
	n.queues[p.Dest].Push(p.X, p.Y)
	return true
}

// run advances node k for one turn: until it halts or reads EmptyValue.
func (n *Network) run(ctx context.Context, k int) error {
	i := n.nodes[k]
	n.idle[k] = false
	for steps := 1; !n.idle[k]; steps++ {
		if steps%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		halted, err := i.Step(n.inputs[k])
		if err != nil {
			return errors.Wrapf(err, "network: node %d", k)
		}
		if halted {
			n.idle[k] = true
		}
	}
	return nil
}

// route sends the complete packets output by node k. It returns the first
// packet for which m requested a stop.
func (n *Network) route(k int, m Monitor) (p Packet, stop bool) {
	out := n.nodes[k].Output()
	for out.Len() >= 3 {
		p.Dest, _ = out.Pop()
		p.X, _ = out.Pop()
		p.Y, _ = out.Pop()
		if n.Send(p) {
			continue
		}
		if m.Deliver(p) {
			return p, true
		}
	}
	return Packet{}, false
}

// quiet returns true if no running node has pending input.
func (n *Network) quiet() bool {
	for k := range n.queues {
		if n.queues[k].Len() > 0 && !n.nodes[k].Halted() {
			return false
		}
	}
	return true
}

// Run runs the network until m requests a stop and returns the packet that
// triggered it. Nodes run in turn, in address order. Packets are routed at the
// end of each node's turn.
//
// When all nodes are blocked with empty queues, m.Idle is called. If it does
// not provide a packet, Run returns ErrDeadlock. Run also returns ErrDeadlock
// if all nodes have halted.
func (n *Network) Run(ctx context.Context, m Monitor) (Packet, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Packet{}, err
		}
		running := 0
		for k, i := range n.nodes {
			if i.Halted() {
				continue
			}
			running++
			if err := n.run(ctx, k); err != nil {
				return Packet{}, err
			}
			if p, stop := n.route(k, m); stop {
				return p, nil
			}
		}
		if running == 0 {
			log.Debugf("network: all %d nodes halted", len(n.nodes))
			return Packet{}, ErrDeadlock
		}
		if !n.quiet() {
			continue
		}
		wake, stop, ok := m.Idle()
		if !ok {
			log.Debugf("network: idle with no wake-up packet")
			return Packet{}, ErrDeadlock
		}
		if stop {
			return wake, nil
		}
		log.Debugf("network: idle, waking node %d with %v", wake.Dest, wake)
		if !n.Send(wake) {
			return Packet{}, errors.Errorf("network: wake-up packet %v sent outside the network", wake)
		}
	}
}

type firstPacket vm.Cell

// FirstPacket returns a Monitor that stops the network when a packet is sent
// to address addr. Other packets sent outside of the network are dropped.
func FirstPacket(addr vm.Cell) Monitor {
	return firstPacket(addr)
}

func (f firstPacket) Deliver(p Packet) bool { return p.Dest == vm.Cell(f) }
func (f firstPacket) Idle() (_ Packet, stop, ok bool) { return Packet{}, false, false }

// NAT is a Monitor that keeps the last packet sent to its address. When the
// network is idle, it sends the X and Y values of that packet to node 0. It
// stops the network when it is about to send the same Y value twice in a row.
type NAT struct {
	Addr vm.Cell

	first, last Packet
	received    bool
	prevY       vm.Cell
	sent        bool
	wakeUps     int
}

// NewNAT returns a NAT listening on address addr.
func NewNAT(addr vm.Cell) *NAT {
	return &NAT{Addr: addr}
}

// Deliver implements Monitor.
func (n *NAT) Deliver(p Packet) bool {
	if p.Dest != n.Addr {
		return false
	}
	if !n.received {
		n.first = p
		n.received = true
	}
	n.last = p
	return false
}

// Idle implements Monitor.
func (n *NAT) Idle() (wake Packet, stop, ok bool) {
	if !n.received {
		return Packet{}, false, false
	}
	wake = Packet{Dest: 0, X: n.last.X, Y: n.last.Y}
	stop = n.sent && n.prevY == wake.Y
	n.prevY, n.sent = wake.Y, true
	n.wakeUps++
	return wake, stop, true
}

// First returns the first packet received by the NAT.
func (n *NAT) First() (Packet, bool) {
	return n.first, n.received
}

// WakeUps returns the number of times the NAT was asked to wake up the network.
func (n *NAT) WakeUps() int {
	return n.wakeUps
}
