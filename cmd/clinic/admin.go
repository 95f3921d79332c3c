package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Leganyst/clinic-desk/internal/auth"
	"github.com/Leganyst/clinic-desk/internal/calendar"
	"github.com/Leganyst/clinic-desk/internal/export"
	"github.com/Leganyst/clinic-desk/internal/model"
	"github.com/Leganyst/clinic-desk/internal/service"
)

func migrateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.migrate(); err != nil {
				return err
			}
			a.log.Info("schema migrated", "driver", a.db.Dialector.Name())
			return nil
		},
	}
}

func seedCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install demo departments, rooms and staff (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.migrate(); err != nil {
				return err
			}
			data := model.DefaultSeed()
			if err := model.Seed(a.db, data); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			a.log.Info("reference data seeded",
				"departments", len(data.Departments),
				"rooms", len(data.Rooms),
				"staff", len(data.Staff),
			)
			return nil
		},
	}
}

func tokenCmd(flags *globalFlags) *cobra.Command {
	var staffID int64

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator JWT for an active staff member",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			tokens, err := auth.NewTokens(a.cfg.Auth)
			if err != nil {
				return err
			}

			op, err := calendar.ValidateOperator(cmd.Context(), a.repos.Staff, staffID)
			if err != nil {
				return fmt.Errorf("staff %d: %w", staffID, err)
			}

			signed, exp, err := tokens.Issue(op.StaffID, op.Role)
			if err != nil {
				return err
			}
			a.log.Info("token issued", "staff_id", op.StaffID, "role", op.Role, "expires", exp)
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	cmd.Flags().Int64Var(&staffID, "staff-id", 0, "Staff member the token is issued to")
	_ = cmd.MarkFlagRequired("staff-id")
	return cmd
}

func reportCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Revenue reports",
	}

	var (
		req service.ReportRequest
		by  string
		out string
	)
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write a revenue report to an xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			req.By = model.ReportDimension(by)
			rep, err := a.clinic.Revenue(cmd.Context(), req)
			if err != nil {
				var ve *service.ValidationError
				if errors.As(err, &ve) {
					return fmt.Errorf("--%s: %s", ve.Field, ve.Reason)
				}
				return err
			}

			if out == "" {
				out = export.RevenueFilename(rep)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := export.WriteRevenue(f, rep); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", out, err)
			}

			a.log.Info("report exported",
				"file", out,
				"rows", len(rep.Rows),
				"visits", rep.TotalVisits,
				"revenue", rep.TotalRevenue,
			)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&req.From, "from", "", "First day, YYYY-MM-DD (default: first day of month)")
	exportCmd.Flags().StringVar(&req.To, "to", "", "Last day, YYYY-MM-DD (default: today)")
	exportCmd.Flags().StringVar(&by, "by", string(model.ReportByDepartment), "Dimension: department, doctor or date")
	exportCmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: revenue_<by>_<from>_<to>.xlsx)")

	cmd.AddCommand(exportCmd)
	return cmd
}
