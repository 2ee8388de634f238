package translate

import "errors"

// ErrInvalidInput is returned when an external expression does not parse
// under its format's grammar.
var ErrInvalidInput = errors.New("invalid input expression")

// ErrUnrepresentable is returned by ToSPDI and ToHGVSGenomic when the Allele cannot be
// expressed in the target grammar (e.g. a ReferenceLengthExpression that
// isn't decompressible to a concrete literal sequence).
var ErrUnrepresentable = errors.New("allele is not representable in the requested format")

// ErrTranslationUnsupported is returned for capability-set gaps named in
// spec §4.5's format table (gnomAD and Beacon expose translate_from only).
var ErrTranslationUnsupported = errors.New("translation direction not supported for this format")

// ErrRefMismatch is returned when require_validation is set and the parsed
// reference allele does not match the fetched reference residues.
var ErrRefMismatch = errors.New("reference allele does not match sequence repository")

// errNoCoveringExon is returned by transcriptToGenomic when no exon in the
// alignment covers the requested transcript interval (e.g. an intronic
// position for an intron-naive c. HGVS form).
var errNoCoveringExon = errors.New("no exon covers the requested transcript interval")
