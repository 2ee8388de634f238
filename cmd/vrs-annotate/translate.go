package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vrs-go/internal/seqrepo"
	"github.com/inodb/vrs-go/internal/transcriptalign"
	"github.com/inodb/vrs-go/internal/translate"
	"github.com/inodb/vrs-go/internal/vrs"
)

// newTranslateCmd exposes spec §4.5's translate_from/translate_to directly,
// for ad hoc conversion without a VCF file (spec §6.4).
func newTranslateCmd() *cobra.Command {
	var (
		dataProxyURI  string
		from          string
		to            string
		requireValid  bool
		transcriptGTF string
		copyChange    string
	)

	cmd := &cobra.Command{
		Use:   "translate <expression>",
		Short: "Translate a variant expression to or from GA4GH VRS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataProxyURI == "" {
				dataProxyURI = viper.GetString("GA4GH_VRS_DATAPROXY_URI")
			}
			if dataProxyURI == "" {
				return exitError(ExitUsage, fmt.Errorf("--dataproxy_uri (or GA4GH_VRS_DATAPROXY_URI) is required"))
			}
			if from == "" {
				return exitError(ExitUsage, fmt.Errorf("--from is required"))
			}

			repo, err := openDataProxy(dataProxyURI)
			if err != nil {
				return exitError(ExitDataProxyDown, err)
			}

			opts := translate.DefaultOptions()
			opts.RequireValidation = requireValid
			ctx := context.Background()

			if copyChange != "" {
				if from != "hgvs_g" {
					return exitError(ExitUsage, fmt.Errorf("--copy_change requires --from hgvs_g (a genomic region expression)"))
				}
				cn, err := translate.FromHGVSCopyNumberChange(ctx, repo, args[0], copyChange, opts)
				if err != nil {
					return exitError(ExitUsage, err)
				}
				enc, err := json.MarshalIndent(cn, "", "  ")
				if err != nil {
					return exitError(ExitUsage, fmt.Errorf("marshal copy number change: %w", err))
				}
				fmt.Println(string(enc))
				return nil
			}

			var talign translate.TranscriptAlignmentRepository
			if from == "hgvs_c" {
				if transcriptGTF == "" {
					return exitError(ExitUsage, fmt.Errorf("--from hgvs_c requires --transcript_gtf"))
				}
				registry := transcriptalign.NewRegistry()
				if err := transcriptalign.NewGTFLoader(transcriptGTF).Load(registry); err != nil {
					return exitError(ExitUsage, fmt.Errorf("load --transcript_gtf: %w", err))
				}
				talign = registry
			}

			allele, err := translateFromFormat(ctx, repo, talign, from, args[0], opts)
			if err != nil {
				return exitError(ExitUsage, err)
			}

			if to == "" {
				enc, err := json.MarshalIndent(allele, "", "  ")
				if err != nil {
					return exitError(ExitUsage, fmt.Errorf("marshal allele: %w", err))
				}
				fmt.Println(string(enc))
				return nil
			}

			out, err := translateToFormat(ctx, repo, to, allele)
			if err != nil {
				return exitError(ExitUsage, err)
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataProxyURI, "dataproxy_uri", "", "sequence repository URI (env GA4GH_VRS_DATAPROXY_URI)")
	cmd.Flags().StringVar(&from, "from", "", "source format: spdi, gnomad, beacon, hgvs_g, hgvs_c, hgvs_p")
	cmd.Flags().StringVar(&to, "to", "", "destination format: spdi, hgvs_g (default: print the Allele as JSON)")
	cmd.Flags().BoolVar(&requireValid, "require_validation", false, "reject expressions where REF disagrees with the repository")
	cmd.Flags().StringVar(&transcriptGTF, "transcript_gtf", "", "GENCODE-style GTF file providing transcript exon structure, required for --from hgvs_c")
	cmd.Flags().StringVar(&copyChange, "copy_change", "", "EFO copyChange label or CURIE (e.g. loss, efo:0030067); builds a CopyNumberChange from a --from hgvs_g region instead of an Allele")

	return cmd
}

func translateFromFormat(ctx context.Context, repo seqrepo.Repository, talign translate.TranscriptAlignmentRepository, format, expr string, opts translate.Options) (vrs.Allele, error) {
	switch format {
	case "spdi":
		return translate.FromSPDI(ctx, repo, expr, opts)
	case "gnomad":
		return translate.FromGnomAD(ctx, repo, expr, opts)
	case "beacon":
		return translate.FromBeacon(ctx, repo, expr, opts)
	case "hgvs_g":
		return translate.FromHGVSGenomic(ctx, repo, expr, opts)
	case "hgvs_c":
		if talign == nil {
			return vrs.Allele{}, fmt.Errorf("--from hgvs_c requires --transcript_gtf")
		}
		return translate.FromHGVSCoding(ctx, repo, talign, expr, opts)
	case "hgvs_p":
		return translate.FromHGVSProtein(ctx, repo, expr, opts)
	default:
		return vrs.Allele{}, fmt.Errorf("unsupported --from format %q (supported: spdi, gnomad, beacon, hgvs_g, hgvs_c, hgvs_p)", format)
	}
}

func translateToFormat(ctx context.Context, repo seqrepo.Repository, format string, allele vrs.Allele) (string, error) {
	switch format {
	case "spdi":
		return translate.ToSPDI(ctx, repo, allele)
	case "hgvs_g":
		exprs, err := translate.ToHGVSGenomic(ctx, repo, allele)
		if err != nil {
			return "", err
		}
		if len(exprs) == 0 {
			return "", fmt.Errorf("no hgvs_g expression could be formatted for this allele's reference")
		}
		return exprs[0], nil
	default:
		return "", fmt.Errorf("unsupported --to format %q (supported: spdi, hgvs_g)", format)
	}
}
