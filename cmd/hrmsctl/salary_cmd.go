package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/prasadp25/protecther-hrms-sub001/internal/salarycalc"
	"github.com/prasadp25/protecther-hrms-sub001/internal/salaryeditor"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type salaryOptions struct {
	EmployeeID    string
	EffectiveFrom string
	BasicSalary   string
	Fields        map[string]string
	Remarks       string
}

func newSalaryCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salary",
		Short: "View and edit salary structures",
	}
	cmd.AddCommand(newSalaryShowCmd(c))
	cmd.AddCommand(newSalaryCreateCmd(c))
	cmd.AddCommand(newSalaryUpdateCmd(c))
	return cmd
}

func newSalaryShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a salary structure with its totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			editor := salaryeditor.New(c.client().Salaries())
			if err := editor.Load(cmd.Context(), args[0]); err != nil {
				return err
			}
			printForm(c, editor.Form(), editor.Totals())
			return nil
		},
	}
}

func newSalaryCreateCmd(c *cli) *cobra.Command {
	opts := salaryOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a salary structure; HRA, DA and PF derive from --basic",
		RunE: func(cmd *cobra.Command, _ []string) error {
			editor := salaryeditor.New(c.client().Salaries())
			if err := applySalaryOptions(cmd, editor, opts); err != nil {
				return err
			}
			if cmd.Flags().Changed("employee") {
				id, err := resolveEmployee(c, cmd, opts.EmployeeID)
				if err != nil {
					return err
				}
				editor.SetEmployee(id)
			}
			return submitSalary(c, cmd, editor)
		},
	}
	bindSalaryFlags(cmd, &opts)
	return cmd
}

// resolveEmployee accepts an employee code or id. A code matching one of the
// active employee options is replaced by that employee's id.
func resolveEmployee(c *cli, cmd *cobra.Command, ref string) (string, error) {
	options, err := c.client().Employees().Options(cmd.Context())
	if err != nil {
		return "", err
	}
	for _, o := range options {
		if strings.EqualFold(o.EmployeeCode, ref) {
			fmt.Fprintf(c.errOut, "Employee %s: %s\n", o.EmployeeCode, o.FullName)
			return o.ID, nil
		}
	}
	return ref, nil
}

func newSalaryUpdateCmd(c *cli) *cobra.Command {
	opts := salaryOptions{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an existing salary structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			editor := salaryeditor.New(c.client().Salaries())
			if err := editor.Load(cmd.Context(), args[0]); err != nil {
				return err
			}
			if err := applySalaryOptions(cmd, editor, opts); err != nil {
				return err
			}
			return submitSalary(c, cmd, editor)
		},
	}
	bindSalaryFlags(cmd, &opts)
	return cmd
}

func bindSalaryFlags(cmd *cobra.Command, opts *salaryOptions) {
	f := cmd.Flags()
	f.StringVar(&opts.EmployeeID, "employee", "", "employee id or employee code")
	f.StringVar(&opts.EffectiveFrom, "effective-from", "", "effective date, YYYY-MM-DD")
	f.StringVar(&opts.BasicSalary, "basic", "", "basic salary, e.g. 25000 or 25000.50")
	f.StringToStringVar(&opts.Fields, "set", nil, "other amounts, e.g. --set hra=5000,tds=300.50")
	f.StringVar(&opts.Remarks, "remarks", "", "free text remarks")
}

// applySalaryOptions applies only the flags the user passed, basic salary
// first so explicit hra/da values win over derived ones.
func applySalaryOptions(cmd *cobra.Command, editor *salaryeditor.Editor, opts salaryOptions) error {
	f := cmd.Flags()
	if f.Changed("employee") {
		editor.SetEmployee(opts.EmployeeID)
	}
	if f.Changed("effective-from") {
		editor.SetEffectiveFrom(opts.EffectiveFrom)
	}
	if f.Changed("remarks") {
		editor.SetRemarks(opts.Remarks)
	}
	if f.Changed("basic") {
		basic, err := parseAmount("basic", opts.BasicSalary)
		if err != nil {
			return err
		}
		editor.SetBasicSalary(basic)
	}

	names := make([]string, 0, len(opts.Fields))
	for name := range opts.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v, err := parseAmount(name, opts.Fields[name])
		if err != nil {
			return err
		}
		if err := editor.SetField(name, v); err != nil {
			return err
		}
	}
	return nil
}

func parseAmount(name, raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %q is not an amount", name, raw)
	}
	return v, nil
}

func submitSalary(c *cli, cmd *cobra.Command, editor *salaryeditor.Editor) error {
	saved, err := editor.Submit(cmd.Context())

	var ve *salarycalc.ValidationError
	if errors.As(err, &ve) {
		for _, fe := range ve.Fields {
			fmt.Fprintf(c.errOut, "%s: %s\n", fe.Field, fe.Message)
		}
		return errors.New("salary structure not saved")
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Saved salary structure %s\n\n", saved.ID)
	printForm(c, editor.Form(), editor.Totals())
	return nil
}

func printForm(c *cli, f salarycalc.Form, t salarycalc.Totals) {
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Employee\t%s\n", f.EmployeeID)
	fmt.Fprintf(w, "Effective from\t%s\n", f.EffectiveFrom)
	fmt.Fprintln(w, "\t")
	fmt.Fprintf(w, "Basic salary\t%s\n", f.BasicSalary)
	fmt.Fprintf(w, "HRA\t%s\n", f.HRA)
	fmt.Fprintf(w, "DA\t%s\n", f.DA)
	fmt.Fprintf(w, "Conveyance\t%s\n", f.ConveyanceAllowance)
	fmt.Fprintf(w, "Medical\t%s\n", f.MedicalAllowance)
	fmt.Fprintf(w, "Special\t%s\n", f.SpecialAllowance)
	fmt.Fprintf(w, "Other allowances\t%s\n", f.OtherAllowances)
	fmt.Fprintln(w, "\t")
	fmt.Fprintf(w, "PF\t%s\n", f.PFDeduction)
	fmt.Fprintf(w, "ESI\t%s\n", f.ESIDeduction)
	fmt.Fprintf(w, "Professional tax\t%s\n", f.ProfessionalTax)
	fmt.Fprintf(w, "TDS\t%s\n", f.TDS)
	fmt.Fprintf(w, "Loan\t%s\n", f.LoanDeduction)
	fmt.Fprintf(w, "Other deductions\t%s\n", f.OtherDeductions)
	fmt.Fprintln(w, "\t")
	fmt.Fprintf(w, "Gross\t%s\n", t.GrossSalary)
	fmt.Fprintf(w, "Deductions\t%s\n", t.TotalDeductions)
	fmt.Fprintf(w, "Net\t%s\n", t.NetSalary)
	if f.Remarks != "" {
		fmt.Fprintf(w, "Remarks\t%s\n", f.Remarks)
	}
	w.Flush()
}
