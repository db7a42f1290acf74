package core

import (
	"fmt"

	"porecore/pkg/network"
)

// ExportSnapshot renders the store as its persisted state layout: every
// leaf key mapped to an array record plus the ordered model records.
// Object-dtype arrays have no serialized form and are skipped.
func ExportSnapshot(d *Domain) (Snapshot, error) {
	snap := Snapshot{
		Name:   d.Name(),
		UUID:   d.UUID(),
		Arrays: make(map[string]ArrayRecord),
	}
	for _, key := range d.Keys() {
		arr, err := d.Store.GetArray(key)
		if err != nil {
			return Snapshot{}, err
		}
		if arr.DType() == network.Object {
			continue
		}
		rec, err := arr.Record()
		if err != nil {
			return Snapshot{}, fmt.Errorf("serialize %s: %w", key, err)
		}
		snap.Arrays[key] = rec
	}
	snap.Models = d.Models.Records()
	return snap, nil
}

// ImportSnapshot loads arrays from a snapshot into the store, seed keys
// first so counts are established before length-checked writes. Model
// records are metadata only; callables are re-registered by the caller.
func ImportSnapshot(d *Domain, snap Snapshot) error {
	if snap.Name != "" {
		if err := d.Rename(snap.Name); err != nil {
			return err
		}
	}
	seeds := []string{Pore.SeedKey(), Throat.SeedKey()}
	for _, key := range seeds {
		if rec, ok := snap.Arrays[key]; ok {
			arr, err := network.FromRecord(rec)
			if err != nil {
				return fmt.Errorf("decode %s: %w", key, err)
			}
			if err := d.Store.Set(key, arr); err != nil {
				return err
			}
		}
	}
	for key, rec := range snap.Arrays {
		if key == seeds[0] || key == seeds[1] {
			continue
		}
		arr, err := network.FromRecord(rec)
		if err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		if err := d.Store.Set(key, arr); err != nil {
			return err
		}
	}
	return nil
}
