// Package enref implements the enref/deref engine of spec §4.3: walking a
// VRS object graph depth-first post-order, replacing each identifiable
// sub-object with a bare identifier backed by an objectstore.Store
// (enref), and the inverse expansion (deref).
package enref

import (
	"encoding/json"
	"fmt"

	"github.com/inodb/vrs-go/internal/objectstore"
	"github.com/inodb/vrs-go/internal/vrs"
)

// Allele enrefs a into its reference form: its Location, if inlined, is
// identified, stored, and replaced with a bare reference. a's own ID/Digest
// are populated. enref never fails on well-formed input (spec §4.3).
func Allele(a vrs.Allele, store objectstore.Store) (vrs.Allele, error) {
	out := a
	if loc, ok := a.Location.Inlined(); ok {
		idLoc, err := loc.WithIdentifiers()
		if err != nil {
			return vrs.Allele{}, fmt.Errorf("enref allele location: %w", err)
		}
		if err := putJSON(store, idLoc.ID, idLoc); err != nil {
			return vrs.Allele{}, err
		}
		out.Location = vrs.Reference[vrs.SequenceLocation](idLoc.ID)
	}

	identified, err := out.WithIdentifiers()
	if err != nil {
		return vrs.Allele{}, fmt.Errorf("enref allele: %w", err)
	}
	return identified, nil
}

// DerefAllele expands a's Location reference, if any, against store.
func DerefAllele(a vrs.Allele, store objectstore.Store) (vrs.Allele, error) {
	out := a
	if id, ok := a.Location.ReferenceID(); ok {
		loc, err := getSequenceLocation(store, id)
		if err != nil {
			return vrs.Allele{}, fmt.Errorf("deref allele location: %w", err)
		}
		out.Location = vrs.Inline(loc)
	}
	return out, nil
}

// CopyNumberCount enrefs c into its reference form.
func CopyNumberCount(c vrs.CopyNumberCount, store objectstore.Store) (vrs.CopyNumberCount, error) {
	out := c
	if loc, ok := c.Location.Inlined(); ok {
		idLoc, err := loc.WithIdentifiers()
		if err != nil {
			return vrs.CopyNumberCount{}, fmt.Errorf("enref copy number count location: %w", err)
		}
		if err := putJSON(store, idLoc.ID, idLoc); err != nil {
			return vrs.CopyNumberCount{}, err
		}
		out.Location = vrs.Reference[vrs.SequenceLocation](idLoc.ID)
	}
	identified, err := out.WithIdentifiers()
	if err != nil {
		return vrs.CopyNumberCount{}, fmt.Errorf("enref copy number count: %w", err)
	}
	return identified, nil
}

// DerefCopyNumberCount expands c's Location reference, if any, against store.
func DerefCopyNumberCount(c vrs.CopyNumberCount, store objectstore.Store) (vrs.CopyNumberCount, error) {
	out := c
	if id, ok := c.Location.ReferenceID(); ok {
		loc, err := getSequenceLocation(store, id)
		if err != nil {
			return vrs.CopyNumberCount{}, fmt.Errorf("deref copy number count location: %w", err)
		}
		out.Location = vrs.Inline(loc)
	}
	return out, nil
}

// CopyNumberChange enrefs c into its reference form.
func CopyNumberChange(c vrs.CopyNumberChange, store objectstore.Store) (vrs.CopyNumberChange, error) {
	out := c
	if loc, ok := c.Location.Inlined(); ok {
		idLoc, err := loc.WithIdentifiers()
		if err != nil {
			return vrs.CopyNumberChange{}, fmt.Errorf("enref copy number change location: %w", err)
		}
		if err := putJSON(store, idLoc.ID, idLoc); err != nil {
			return vrs.CopyNumberChange{}, err
		}
		out.Location = vrs.Reference[vrs.SequenceLocation](idLoc.ID)
	}
	identified, err := out.WithIdentifiers()
	if err != nil {
		return vrs.CopyNumberChange{}, fmt.Errorf("enref copy number change: %w", err)
	}
	return identified, nil
}

// DerefCopyNumberChange expands c's Location reference, if any, against store.
func DerefCopyNumberChange(c vrs.CopyNumberChange, store objectstore.Store) (vrs.CopyNumberChange, error) {
	out := c
	if id, ok := c.Location.ReferenceID(); ok {
		loc, err := getSequenceLocation(store, id)
		if err != nil {
			return vrs.CopyNumberChange{}, fmt.Errorf("deref copy number change location: %w", err)
		}
		out.Location = vrs.Inline(loc)
	}
	return out, nil
}

// putJSON stores v (marshaled to its generic JSON shape) under id.
func putJSON(store objectstore.Store, id string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal object %s: %w", id, err)
	}
	var decoded any
	if err := json.Unmarshal(b, &decoded); err != nil {
		return fmt.Errorf("decode object %s: %w", id, err)
	}
	if err := store.Put(id, decoded); err != nil {
		return fmt.Errorf("store object %s: %w", id, err)
	}
	return nil
}

// getSequenceLocation fetches id from store and decodes it as a SequenceLocation.
func getSequenceLocation(store objectstore.Store, id string) (vrs.SequenceLocation, error) {
	obj, err := store.Get(id)
	if err != nil {
		if err == objectstore.ErrNotFound {
			return vrs.SequenceLocation{}, fmt.Errorf("%w: %s", vrs.ErrUnknownReference, id)
		}
		return vrs.SequenceLocation{}, fmt.Errorf("get object %s: %w", id, err)
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return vrs.SequenceLocation{}, fmt.Errorf("re-encode object %s: %w", id, err)
	}
	var loc vrs.SequenceLocation
	if err := json.Unmarshal(b, &loc); err != nil {
		return vrs.SequenceLocation{}, fmt.Errorf("decode sequence location %s: %w", id, err)
	}
	return loc, nil
}
