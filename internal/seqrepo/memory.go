package seqrepo

import (
	"context"
	"fmt"
	"sync"
)

// sequenceEntry is one registered sequence and its known aliases.
type sequenceEntry struct {
	sequence string
	aliases  []string
	circular bool
}

// Memory is an in-memory Repository, the reference implementation used by
// tests and by normalize/translate fixtures that don't need a real FASTA
// file or HTTP backend.
type Memory struct {
	mu      sync.RWMutex
	byAlias map[string]string // any alias -> canonical refget accession
	entries map[string]sequenceEntry
}

// NewMemory creates an empty in-memory sequence repository.
func NewMemory() *Memory {
	return &Memory{
		byAlias: make(map[string]string),
		entries: make(map[string]sequenceEntry),
	}
}

// Register adds a sequence under its derived refget accession, with the
// given additional aliases (e.g. "refseq:NC_000005.10"), and returns that
// accession.
func (m *Memory) Register(sequence string, circular bool, aliases ...string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	accession := DeriveRefgetAccession(sequence)
	m.entries[accession] = sequenceEntry{sequence: sequence, aliases: aliases, circular: circular}
	m.byAlias[accession] = accession
	for _, a := range aliases {
		m.byAlias[a] = accession
	}
	return accession
}

func (m *Memory) resolve(identifier string) (string, sequenceEntry, bool) {
	accession, ok := m.byAlias[identifier]
	if !ok {
		return "", sequenceEntry{}, false
	}
	entry, ok := m.entries[accession]
	return accession, entry, ok
}

// GetSequence implements Repository.
func (m *Memory) GetSequence(ctx context.Context, accession string, start, end *uint64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, entry, ok := m.resolve(accession)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownReference, accession)
	}

	s := uint64(0)
	if start != nil {
		s = *start
	}
	e := uint64(len(entry.sequence))
	if end != nil {
		e = *end
	}
	if s > e || e > uint64(len(entry.sequence)) {
		return "", fmt.Errorf("%w: interval [%d, %d) out of bounds for %s", ErrUnknownReference, s, e, accession)
	}
	return entry.sequence[s:e], nil
}

// GetMetadata implements Repository.
func (m *Memory) GetMetadata(ctx context.Context, accession string) (Metadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	canonical, entry, ok := m.resolve(accession)
	if !ok {
		return Metadata{}, fmt.Errorf("%w: %s", ErrUnknownReference, accession)
	}
	aliases := append([]string{canonical}, entry.aliases...)
	return Metadata{
		Aliases:  aliases,
		Alphabet: "dna",
		Length:   uint64(len(entry.sequence)),
		Circular: entry.circular,
	}, nil
}

// TranslateIdentifier implements Repository.
func (m *Memory) TranslateIdentifier(ctx context.Context, identifier, targetNamespace string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	canonical, entry, ok := m.resolve(identifier)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReference, identifier)
	}
	all := append([]string{canonical}, entry.aliases...)
	if targetNamespace == "" {
		return all, nil
	}

	var filtered []string
	prefix := targetNamespace + ":"
	for _, a := range all {
		if targetNamespace == "ga4gh" && a == canonical {
			filtered = append(filtered, "ga4gh:"+a)
			continue
		}
		if len(a) >= len(prefix) && a[:len(prefix)] == prefix {
			filtered = append(filtered, a)
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no alias for %s in namespace %s", ErrUnknownReference, identifier, targetNamespace)
	}
	return filtered, nil
}

// DeriveRefgetAccession implements Repository.
func (m *Memory) DeriveRefgetAccession(ctx context.Context, identifier string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	canonical, _, ok := m.resolve(identifier)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownReference, identifier)
	}
	return canonical, nil
}
