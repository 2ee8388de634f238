package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vrs-go/internal/seqrepo"
	"github.com/inodb/vrs-go/internal/translate"
	"github.com/inodb/vrs-go/internal/vcf"
	"github.com/inodb/vrs-go/internal/vrs"
	"github.com/inodb/vrs-go/internal/vrslog"
)

func newAnnotateCmd() *cobra.Command {
	var (
		dataProxyURI      string
		assembly          string
		vrsAttributes     bool
		skipRef           bool
		requireValidation bool
		vcfOut            string
		ndjsonOut         string
	)

	cmd := &cobra.Command{
		Use:   "annotate <input.vcf>",
		Short: "Annotate a VCF file's records with VRS identifiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataProxyURI == "" {
				dataProxyURI = viper.GetString("GA4GH_VRS_DATAPROXY_URI")
			}
			if dataProxyURI == "" {
				return exitError(ExitUsage, fmt.Errorf("--dataproxy_uri (or GA4GH_VRS_DATAPROXY_URI) is required"))
			}
			if vcfOut == "" && ndjsonOut == "" {
				return exitError(ExitUsage, fmt.Errorf("at least one of --vcf_out or --ndjson_out is required"))
			}
			return runAnnotate(annotateOptions{
				inputPath:         args[0],
				dataProxyURI:      dataProxyURI,
				assembly:          assembly,
				vrsAttributes:     vrsAttributes,
				skipRef:           skipRef,
				requireValidation: requireValidation,
				vcfOut:            vcfOut,
				ndjsonOut:         ndjsonOut,
			})
		},
	}

	cmd.Flags().StringVar(&dataProxyURI, "dataproxy_uri", "", "sequence repository URI (env GA4GH_VRS_DATAPROXY_URI)")
	cmd.Flags().StringVar(&assembly, "assembly", "GRCh38", "genome assembly, informs reference alias resolution")
	cmd.Flags().BoolVar(&vrsAttributes, "vrs_attributes", false, "emit per-record VRS_Start, VRS_End, VRS_State INFO fields")
	cmd.Flags().BoolVar(&skipRef, "skip_ref", false, "do not compute identifiers for REF alleles, only ALT")
	cmd.Flags().BoolVar(&requireValidation, "require_validation", false, "reject records where REF disagrees with the repository")
	cmd.Flags().StringVar(&vcfOut, "vcf_out", "", "write annotated VCF to this path")
	cmd.Flags().StringVar(&ndjsonOut, "ndjson_out", "", "write one JSON Allele per line to this path")

	return cmd
}

type annotateOptions struct {
	inputPath         string
	dataProxyURI      string
	assembly          string
	vrsAttributes     bool
	skipRef           bool
	requireValidation bool
	vcfOut            string
	ndjsonOut         string
}

// annotatedRecord is one VCF record's VRS annotation outcome, destined for
// whichever of --vcf_out / --ndjson_out the caller requested.
type annotatedRecord struct {
	variant *vcf.Variant
	ref     vrs.Allele
	hasRef  bool
	alt     vrs.Allele
}

func runAnnotate(opts annotateOptions) error {
	logger, err := vrslog.New()
	if err != nil {
		return exitError(ExitUsage, fmt.Errorf("initialize logger: %w", err))
	}
	defer logger.Sync()
	log := logger.WithJob()

	repo, err := openDataProxy(opts.dataProxyURI)
	if err != nil {
		return exitError(ExitDataProxyDown, err)
	}

	parser, err := vcf.NewParser(opts.inputPath)
	if err != nil {
		return exitError(ExitUsage, fmt.Errorf("open %s: %w", opts.inputPath, err))
	}
	defer parser.Close()

	var ndjsonFile *os.File
	if opts.ndjsonOut != "" {
		ndjsonFile, err = os.Create(opts.ndjsonOut)
		if err != nil {
			return exitError(ExitUsage, fmt.Errorf("create %s: %w", opts.ndjsonOut, err))
		}
		defer ndjsonFile.Close()
	}

	var vcfWriter *vcfOutWriter
	if opts.vcfOut != "" {
		vcfFile, err := os.Create(opts.vcfOut)
		if err != nil {
			return exitError(ExitUsage, fmt.Errorf("create %s: %w", opts.vcfOut, err))
		}
		defer vcfFile.Close()
		vcfWriter = newVCFOutWriter(vcfFile, opts.vrsAttributes)
		if err := vcfWriter.WriteHeader(); err != nil {
			return exitError(ExitUsage, fmt.Errorf("write vcf header: %w", err))
		}
	}

	translateOpts := translate.DefaultOptions()
	translateOpts.DefaultAssembly = opts.assembly
	translateOpts.RequireValidation = opts.requireValidation

	ctx := context.Background()
	var total, failed int

	for {
		v, err := parser.Next()
		if err != nil {
			return exitError(ExitUsage, fmt.Errorf("read %s line %d: %w", opts.inputPath, parser.LineNumber(), err))
		}
		if v == nil {
			break
		}

		for _, split := range vcf.SplitMultiAllelic(v) {
			total++

			rec, err := annotateRecord(ctx, repo, split, opts, translateOpts)
			if err != nil {
				failed++
				log.Warnw("failed to annotate record", "chrom", split.Chrom, "pos", split.Pos, "error", err)
				continue
			}

			if ndjsonFile != nil {
				if err := writeNDJSON(ndjsonFile, rec); err != nil {
					return exitError(ExitUsage, fmt.Errorf("write ndjson: %w", err))
				}
			}
			if vcfWriter != nil {
				if err := vcfWriter.WriteRecord(rec); err != nil {
					return exitError(ExitUsage, fmt.Errorf("write vcf record: %w", err))
				}
			}
		}
	}

	if vcfWriter != nil {
		if err := vcfWriter.Flush(); err != nil {
			return exitError(ExitUsage, fmt.Errorf("flush %s: %w", opts.vcfOut, err))
		}
	}

	log.Infow("annotation complete", "total", total, "failed", failed)

	if total > 0 && failed*10 > total {
		return exitError(ExitToleranceExceeded, fmt.Errorf("per-record failures (%d/%d) exceeded tolerance", failed, total))
	}
	return nil
}

func annotateRecord(ctx context.Context, repo seqrepo.Repository, v *vcf.Variant, opts annotateOptions, translateOpts translate.Options) (annotatedRecord, error) {
	alt, err := translate.FromSPDI(ctx, repo, spdiExpr(v.Chrom, v.Pos, v.Ref, v.Alt), translateOpts)
	if err != nil {
		return annotatedRecord{}, fmt.Errorf("translate ALT: %w", err)
	}
	rec := annotatedRecord{variant: v, alt: alt}

	if !opts.skipRef {
		ref, err := translate.FromSPDI(ctx, repo, spdiExpr(v.Chrom, v.Pos, v.Ref, v.Ref), translateOpts)
		if err != nil {
			return annotatedRecord{}, fmt.Errorf("translate REF: %w", err)
		}
		rec.ref = ref
		rec.hasRef = true
	}

	return rec, nil
}

// spdiExpr renders a VCF record's REF/ALT pair at "del" as a SPDI
// expression, converting the VCF's 1-based position to SPDI's 0-based
// interbase position.
func spdiExpr(chrom string, pos1based int64, del, ins string) string {
	return fmt.Sprintf("%s:%d:%s:%s", chrom, pos1based-1, del, ins)
}

func writeNDJSON(w *os.File, rec annotatedRecord) error {
	type line struct {
		Chrom string      `json:"chrom"`
		Pos   int64       `json:"pos"`
		Ref   *vrs.Allele `json:"ref,omitempty"`
		Alt   vrs.Allele  `json:"alt"`
	}
	out := line{Chrom: rec.variant.Chrom, Pos: rec.variant.Pos, Alt: rec.alt}
	if rec.hasRef {
		out.Ref = &rec.ref
	}
	enc, err := json.Marshal(out)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(enc))
	return err
}
