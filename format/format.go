// SPDX-FileCopyrightText: © 2021 The geo authors <https://github.com/golangee/geo/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package format implements the value-format conversion model from §4.4: a
// two-stack context tracking how a composite value is currently laid out on
// the imaginary intake/outgive buffer as methods call one another.
package format

// Layout is the two-valued enumeration from §3: StreamOfElements packs
// whole records one after another (xyzxyzxyz0); StreamOfValues packs each
// field's values together before moving to the next field (xxx0yyy0zzz0).
type Layout int

const (
	StreamOfElements Layout = iota
	StreamOfValues
)

func (l Layout) String() string {
	if l == StreamOfValues {
		return "StreamOfValues"
	}
	return "StreamOfElements"
}

// Frame pairs a class id with the layout it is currently in, on one side
// of the format context.
type Frame struct {
	ClassID uint16
	Layout  Layout
}

// Context holds the "in" stack (the format a callee will see) and the "out"
// stack (the format the current producer leaves behind). §9 calls these
// deliberately symmetric: every Enter is balanced by an Exit, so the two
// stacks stay the same depth across any well-formed method call.
type Context struct {
	in  []Frame
	out []Frame
}

// NewContext returns an empty format context, scoped to one compilation
// run per §9 ("no global state required").
func NewContext() *Context { return &Context{} }

// AlreadyInFormat reports whether the top of the out-stack already matches
// layout — the condition under which method entry emits a no-op alias
// instead of a conversion loop.
func (c *Context) AlreadyInFormat(layout Layout) bool {
	if len(c.out) == 0 {
		return false
	}
	return c.out[len(c.out)-1].Layout == layout
}

// OutClass returns the class id on top of the out-stack — the type
// CallMethod resolves its target method against. classRef's ThisAs
// annotation does not change which frame is consulted; it only documents
// that the subject is being viewed through an interface (see assemble.ClassRef).
func (c *Context) OutClass() (uint16, bool) {
	if len(c.out) == 0 {
		return 0, false
	}
	return c.out[len(c.out)-1].ClassID, true
}

// InClass mirrors OutClass for the in-stack.
func (c *Context) InClass() (uint16, bool) {
	if len(c.in) == 0 {
		return 0, false
	}
	return c.in[len(c.in)-1].ClassID, true
}

// Enter pushes (classID, consume) onto the in-stack and pops the out-stack,
// as §4.4 specifies happens "on method entry".
func (c *Context) Enter(classID uint16, consume Layout) {
	c.in = append(c.in, Frame{ClassID: classID, Layout: consume})
	if len(c.out) > 0 {
		c.out = c.out[:len(c.out)-1]
	}
}

// Exit pushes (classID, produce) onto the out-stack and pops the in-stack,
// as §4.4 specifies happens "on exit".
func (c *Context) Exit(classID uint16, produce Layout) {
	c.out = append(c.out, Frame{ClassID: classID, Layout: produce})
	if len(c.in) > 0 {
		c.in = c.in[:len(c.in)-1]
	}
}

// Depths returns the current (in, out) stack depths, used to verify the
// format-balance invariant from §8: after emitting any well-formed method,
// the stacks return to the depths they had on entry.
func (c *Context) Depths() (int, int) { return len(c.in), len(c.out) }
