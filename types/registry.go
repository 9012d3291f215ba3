// SPDX-FileCopyrightText: © 2021 The geo authors <https://github.com/golangee/geo/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package types implements the Type Registry (§4.3): a dense, append-only
// mapping from class_id to AssembledType, plus the name index used to
// resolve type identifiers seen while recording declarations.
package types

import "fmt"

// Reserved class ids, seeded by Registry.Bootstrap before any user type is
// recorded.
const (
	ClassIDVoid      uint16 = 0
	ClassIDPrintable uint16 = 1
	ClassIDInt       uint16 = 2
)

// Variant tags an AssembledType.
type Variant int

const (
	Composition Variant = iota
	Data
	Interface
)

// Member is one field of a Composition, referencing another class by id.
type Member struct {
	SourceName   string
	ClassID      uint16
	IndexInOwner int
}

// AssembledType is the tagged variant from §3: Composition(name, members),
// Data(name, {index_in_comp, byte_count}), Interface(name, {impl_class_id}).
type AssembledType struct {
	Variant Variant
	Name    string

	Members []Member // Composition

	Bytes uint16 // Data

	ImplClassID uint16 // Interface
}

// Registry is the class_id -> AssembledType table, dense from 0.
type Registry struct {
	types    []AssembledType
	nameToID map[string]uint16
}

// NewRegistry returns an empty registry. Call Bootstrap before recording
// user declarations.
func NewRegistry() *Registry {
	return &Registry{nameToID: map[string]uint16{}}
}

// Bootstrap seeds the three built-ins: () -> 0 (Interface), Printable -> 1
// (Interface), int -> 2 (Data, 4 bytes). Per §4.3 this must run before any
// user type is recorded so user ids start at 3.
func (r *Registry) Bootstrap() {
	r.insert(AssembledType{Variant: Interface, Name: "()", ImplClassID: ClassIDVoid})
	r.insert(AssembledType{Variant: Interface, Name: "Printable", ImplClassID: ClassIDPrintable})
	r.insert(AssembledType{Variant: Data, Name: "int", Bytes: 4})
}

func (r *Registry) insert(t AssembledType) uint16 {
	id := uint16(len(r.types))
	r.types = append(r.types, t)
	r.nameToID[t.Name] = id
	return id
}

// CreateType allocates the next dense class_id for a user Composition named
// name, with no members yet (they are filled in by AddVariable during the
// registry's second recording pass).
func (r *Registry) CreateType(name string) uint16 {
	return r.insert(AssembledType{Variant: Composition, Name: name})
}

// AddVariable appends a member to the Composition at ownerID. Returns an
// error if ownerID does not name a Composition (§7: attempt to add a
// variable to a non-composition type).
func (r *Registry) AddVariable(ownerID uint16, sourceName string, classID uint16) error {
	t := &r.types[ownerID]
	if t.Variant != Composition {
		return fmt.Errorf("types: cannot add variable %q to non-composition type %q", sourceName, t.Name)
	}
	t.Members = append(t.Members, Member{
		SourceName:   sourceName,
		ClassID:      classID,
		IndexInOwner: len(t.Members),
	})
	return nil
}

// GetType returns the type registered under id.
func (r *Registry) GetType(id uint16) (AssembledType, bool) {
	if int(id) >= len(r.types) {
		return AssembledType{}, false
	}
	return r.types[id], true
}

// GetTypeID resolves a type name to its class_id.
func (r *Registry) GetTypeID(name string) (uint16, bool) {
	id, ok := r.nameToID[name]
	return id, ok
}

// Len reports how many class ids have been allocated; with Bootstrap run
// first and every CreateType call recorded, this is the density invariant
// from §8: ids are a contiguous range starting at 0.
func (r *Registry) Len() int { return len(r.types) }

// Bytes reports a type's byte count: self-reported for Data, the sum of
// member bytes for Composition, zero for Interface.
func (r *Registry) Bytes(id uint16) uint16 {
	t, ok := r.GetType(id)
	if !ok {
		return 0
	}
	switch t.Variant {
	case Data:
		return t.Bytes
	case Composition:
		var total uint16
		for _, m := range t.Members {
			total += r.Bytes(m.ClassID)
		}
		return total
	default: // Interface
		return 0
	}
}
