package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zetsnotdead/hand-converter/config"
	"github.com/zetsnotdead/hand-converter/converter"
	"github.com/zetsnotdead/hand-converter/types"
)

func newConvertCmd(g *globalFlags) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert hand-history files (or stdin) to normalized stakes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(config.Overrides{OutputDir: outDir})
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel)
			conv := newConverter(cfg)

			if len(args) == 0 {
				return convertStream(cmd.Context(), conv, cfg.Workers, "stdin", cmd.InOrStdin(), cmd.OutOrStdout(), logger)
			}
			return convertFiles(cmd.Context(), conv, cfg, args, cmd.OutOrStdout(), logger)
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for converted files (default stdout)")
	return cmd
}

func convertStream(ctx context.Context, conv *converter.Converter, workers int, name string, r io.Reader, w io.Writer, logger *log.Logger) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	out, report, err := convertText(ctx, conv, workers, name, string(data), logger)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("Converted", "source", name, "hands", report.Hands, "unscaled", len(report.Unscaled))
	return nil
}

func convertFiles(ctx context.Context, conv *converter.Converter, cfg config.Config, files []string, stdout io.Writer, logger *log.Logger) error {
	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	total := types.ConversionReport{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		out, report, err := convertText(ctx, conv, cfg.Workers, file, string(data), logger)
		if err != nil {
			return err
		}

		if cfg.OutputDir == "" {
			if _, err := io.WriteString(stdout, out); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		} else {
			dst := filepath.Join(cfg.OutputDir, filepath.Base(file))
			if err := os.WriteFile(dst, []byte(out), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", dst, err)
			}
			report.OutputURI = dst
		}

		logger.Debug("Converted file", "file", file, "hands", report.Hands, "rewrites", report.Rewrites)
		total.Add(report)
	}

	logger.Info("Conversion finished", "files", len(total.Files), "hands", total.TotalHands, "unscaled", total.Unscaled)
	return nil
}

// convertText splits a hand-history file into hands, converts them and writes
// them back with the file's original blank-line layout
func convertText(ctx context.Context, conv *converter.Converter, workers int, name, text string, logger *log.Logger) (string, types.FileReport, error) {
	f := converter.ParseHandFile(text)
	out, report, err := convertHands(ctx, conv, workers, name, f.Hands, logger)
	if err != nil {
		return "", report, err
	}
	return f.WithHands(out).String(), report, nil
}

// convertHands converts the hands of one file. Hands without a stakes header
// are reported and left unchanged.
func convertHands(ctx context.Context, conv *converter.Converter, workers int, name string, hands []string, logger *log.Logger) ([]string, types.FileReport, error) {
	report := types.FileReport{Name: name, Hands: len(hands)}

	progress := func(done, total int) {
		logger.Debug("Progress", "source", name, "percent", done*100/total)
	}
	results, err := conv.ConvertHandsConcurrent(ctx, hands, workers, progress)
	if err != nil {
		return nil, report, fmt.Errorf("failed to convert %s: %w", name, err)
	}

	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Text
		report.Rewrites += r.Rewrites
		if !r.Scaled {
			report.Unscaled = append(report.Unscaled, i+1)
			logger.Warn("No stakes header, hand left unchanged", "source", name, "hand", i+1)
		}
	}
	return out, report, nil
}
