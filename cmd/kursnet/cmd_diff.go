package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kursnet-xml-tool/internal/errors"
	"kursnet-xml-tool/internal/export"
	"kursnet-xml-tool/internal/openqcat"
	"kursnet-xml-tool/internal/plan"
	"kursnet-xml-tool/internal/sftpclient"
)

var (
	diffPlan   string
	diffSeq    int
	diffOutDir string
	diffStdout bool
	diffUpload bool
)

var diffCmd = &cobra.Command{
	Use:   "diff <catalog>",
	Short: "Apply an edit plan and write the differential update file",
	Long: `Loads the catalog, applies the operations of the YAML edit plan in order
and writes every new or changed course plus the removed ids into
differenz_seq_<N>.xml. Full catalog exports are not produced.

The sequence number comes from --seq, the plan's seq_number or
KURSNET_SEQ_NUMBER, in that order, and must be positive.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVarP(&diffPlan, "plan", "p", "", "YAML edit plan")
	diffCmd.Flags().IntVar(&diffSeq, "seq", 0, "Sequence number of the update")
	diffCmd.Flags().StringVarP(&diffOutDir, "out", "o", "", "Output directory (default KURSNET_OUT_DIR)")
	diffCmd.Flags().BoolVar(&diffStdout, "stdout", false, "Print the document instead of writing a file")
	diffCmd.Flags().BoolVar(&diffUpload, "upload", false, "Upload the file to SFTP after writing it")
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	s, err := openSession(ctx, args[0])
	if err != nil {
		return err
	}

	seq := diffSeq
	if diffPlan != "" {
		p, err := plan.ParseFile(diffPlan)
		if err != nil {
			return err
		}
		res, err := p.Apply(s)
		if err != nil {
			return err
		}
		logger.Info("Applied plan",
			zap.Strings("added", res.Added),
			zap.Strings("updated", res.Updated),
			zap.Strings("removed", res.Removed),
		)
		if seq == 0 {
			seq = p.SeqNumber
		}
	}
	if seq == 0 {
		seq = cfg.SeqNumber
	}

	data, err := s.ExportDiff(seq)
	if errors.Is(err, errors.ErrNoChanges) {
		fmt.Fprintln(cmd.OutOrStdout(), "no changes, nothing to export")
		return nil
	}
	if err != nil {
		return err
	}

	if diffStdout {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	outDir := diffOutDir
	if outDir == "" {
		outDir = cfg.OutDir
	}
	path, err := export.WriteDiffFile(outDir, seq, data)
	if err != nil {
		return err
	}
	d := s.Diff()
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d changed (%d new), %d removed\n", path, len(d.Changed), d.New, len(d.DeletedIDs))

	if !diffUpload {
		return nil
	}
	remote, err := sftpclient.Upload(ctx, sftpclient.Config{
		Host:                  cfg.SFTPHost,
		Port:                  cfg.SFTPPort,
		User:                  cfg.SFTPUser,
		Pass:                  cfg.SFTPPass,
		RemoteDir:             cfg.SFTPDir,
		InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
		KnownHostsFile:        cfg.SFTPKnownHosts,
	}, openqcat.DiffFileName(seq), data)
	if err != nil {
		return err
	}
	logger.Info("Uploaded update", zap.String("remote", remote))
	fmt.Fprintf(cmd.OutOrStdout(), "uploaded to %s\n", remote)
	return nil
}
