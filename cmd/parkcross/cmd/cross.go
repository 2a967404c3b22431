package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"parkcross/internal/model"
	"parkcross/internal/service/crossing"
	"parkcross/internal/service/excel"
)

type crossOptions struct {
	requests    string
	ledger      string
	assignments string
	out         string
}

func newCrossCommand(root *rootOptions) *cobra.Command {
	opts := &crossOptions{}

	cmd := &cobra.Command{
		Use:   "cross",
		Short: "执行一次交叉并写出结果工作簿",
		Example: `  parkcross cross --pqr PQR.xlsx --cartera CARTERA.xlsx --parq PARQ_ASIGNADOS.xlsx
  parkcross cross --pqr PQR.xlsx --cartera CARTERA.xlsx --parq PARQ_ASIGNADOS.xlsx --out cruce.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, logger, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			if opts.out == "" {
				opts.out = cfg.Export.FileName
			}

			var in crossing.Inputs
			for _, f := range []struct {
				path string
				dst  *io.Reader
			}{
				{opts.requests, &in.Requests},
				{opts.ledger, &in.Ledger},
				{opts.assignments, &in.Assignments},
			} {
				file, err := os.Open(f.path)
				if err != nil {
					return err
				}
				defer file.Close()
				*f.dst = file
			}

			result, err := crossing.Run(in, crossing.Options{
				AcceptedStatuses: cfg.Crossing.AcceptedStatuses,
				Logger:           &logger,
			})
			if err != nil {
				return err
			}

			f, err := excel.NewExporter(cfg.Export.SheetName).Export(result.Table)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := f.SaveAs(opts.out); err != nil {
				return fmt.Errorf("写出 %s 失败: %w", opts.out, err)
			}

			printReport(cmd.OutOrStdout(), result.Report, opts.out)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.requests, "pqr", "", "车位申请工作簿 (PQR.xlsx)")
	cmd.Flags().StringVar(&opts.ledger, "cartera", "", "账务工作簿 (CARTERA.xlsx)")
	cmd.Flags().StringVar(&opts.assignments, "parq", "", "车位分配工作簿 (PARQ_ASIGNADOS.xlsx)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "输出文件 (默认 export.file_name)")
	for _, name := range []string{"pqr", "cartera", "parq"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// printReport 输出简要报告
func printReport(w io.Writer, r *crossing.Report, out string) {
	fmt.Fprintf(w, "Run:        %s\n", r.RunID)
	fmt.Fprintf(w, "PQR:        %d 行，状态过滤后 %d 行\n", r.RequestRows, r.FilteredRows)
	fmt.Fprintf(w, "CARTERA:    %d 行，未匹配 %d，cal_cartera 置 0 %d\n", r.LedgerRows, r.LedgerJoin.Unmatched, r.RecoveredBalances)
	fmt.Fprintf(w, "PARQ:       %d 行，未匹配 %d\n", r.AssignmentRows, r.AssignmentJoin.Unmatched)
	fmt.Fprintf(w, "输出:       %d 行 -> %s\n", r.OutputRows, out)

	verdicts := make([]string, 0, len(r.Verdicts))
	for v := range r.Verdicts {
		verdicts = append(verdicts, string(v))
	}
	sort.Strings(verdicts)
	for _, v := range verdicts {
		fmt.Fprintf(w, "  %-22s %d\n", v, r.Verdicts[model.Verdict(v)])
	}
}
