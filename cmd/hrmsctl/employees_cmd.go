package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/prasadp25/protecther-hrms-sub001/internal/document"
	"github.com/prasadp25/protecther-hrms-sub001/internal/listview"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/query"

	"github.com/spf13/cobra"
)

type listOptions struct {
	Page        int
	Limit       int
	Search      string
	SortBy      string
	SortOrder   string
	Status      string
	Department  string
	Designation string
	SiteID      string
}

func newEmployeesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"emp"},
		Short:   "List and manage employees",
	}
	cmd.AddCommand(newEmployeesListCmd(c))
	cmd.AddCommand(newEmployeesDeleteCmd(c))
	cmd.AddCommand(newEmployeesStatusCmd(c))
	cmd.AddCommand(newEmployeesDocCmd(c))
	return cmd
}

func newController(c *cli, term *terminal, opts ...listview.Option) *listview.Controller {
	api := c.client()
	opts = append([]listview.Option{
		listview.WithNotifier(term),
		listview.WithConfirmer(term),
		listview.WithUploadBaseURL(c.opts.UploadURL),
	}, opts...)
	return listview.New(api.Employees(), api.Sites(), opts...)
}

func newEmployeesListCmd(c *cli) *cobra.Command {
	opts := listOptions{Page: query.DefaultPage, Limit: query.DefaultLimit, Status: listview.StatusAll}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of employees",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status := strings.ToUpper(strings.TrimSpace(opts.Status))
			if !listview.ValidStatusFilter(status) {
				return fmt.Errorf("--status must be one of %s", strings.Join(listview.StatusFilters, ", "))
			}

			state := query.New(query.DefaultPage, opts.Limit).
				SetSearch(opts.Search).
				SetFilters(compactFilters(map[string]string{
					"department":  opts.Department,
					"designation": opts.Designation,
					"site_id":     opts.SiteID,
				}))
			if opts.SortBy != "" {
				state = state.SetSort(opts.SortBy, opts.SortOrder)
			}
			state = state.SetPage(opts.Page)

			term := newTerminal(c)
			ctrl := newController(c, term,
				listview.WithInitialState(state),
				listview.WithStatusFilter(status),
			)
			ctrl.Start(cmd.Context())
			if err := ctrl.View().Err; err != nil {
				return err
			}

			printEmployees(c, ctrl)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Page, "page", opts.Page, "page number")
	f.IntVar(&opts.Limit, "limit", opts.Limit, "rows per page (5, 10, 20, 50, 100)")
	f.StringVar(&opts.Search, "search", "", "match code, name, email or phone")
	f.StringVar(&opts.SortBy, "sort", "", "sort field")
	f.StringVar(&opts.SortOrder, "order", query.SortDESC, "ASC or DESC")
	f.StringVar(&opts.Status, "status", opts.Status, strings.Join(listview.StatusFilters, ", "))
	f.StringVar(&opts.Department, "department", "", "department filter")
	f.StringVar(&opts.Designation, "designation", "", "designation filter")
	f.StringVar(&opts.SiteID, "site", "", "site id filter")
	return cmd
}

func printEmployees(c *cli, ctrl *listview.Controller) {
	v := ctrl.View()
	if len(v.Records) == 0 {
		fmt.Fprintln(c.out, "No employees found")
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tNAME\tDESIGNATION\tSITE\tSTATUS")
	for _, e := range v.Records {
		name := e.FullName
		if name == "" {
			name = strings.TrimSpace(e.FirstName + " " + e.LastName)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.EmployeeCode, name, dash(e.Designation), ctrl.SiteLabel(e.SiteID), e.Status)
	}
	w.Flush()

	p := v.Pagination
	fmt.Fprintf(c.out, "\nPage %d of %d (%d employees)\n", p.CurrentPage, p.TotalPages, p.TotalItems)
}

func newEmployeesDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Soft delete an employee (marks them RESIGNED)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := newController(c, newTerminal(c))
			return declinedIsNotAnError(c, ctrl.Delete(cmd.Context(), args[0]))
		},
	}
}

func newEmployeesStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <ACTIVE|ON_LEAVE|RESIGNED|TERMINATED>",
		Short: "Change an employee's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := newController(c, newTerminal(c))
			err := ctrl.ChangeStatus(cmd.Context(), args[0], args[1])
			if errors.Is(err, listview.ErrInvalidStatus) {
				return fmt.Errorf("status must be one of %s", strings.Join(listview.StatusFilters[1:], ", "))
			}
			return declinedIsNotAnError(c, err)
		},
	}
}

func newEmployeesDocCmd(c *cli) *cobra.Command {
	var docType string

	cmd := &cobra.Command{
		Use:   "doc <stored-path>",
		Short: "Print the URL of a stored employee document",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if _, ok := document.ParseType(docType); !ok {
				return fmt.Errorf("--type must be one of %s, %s, %s",
					document.TypeOfferLetter, document.TypeAadhaar, document.TypePAN)
			}
			ctrl := listview.New(nil, nil, listview.WithUploadBaseURL(c.opts.UploadURL))
			url := ctrl.DocumentURL(args[0], docType)
			if url == "" {
				return errors.New("document path is empty")
			}
			fmt.Fprintln(c.out, url)
			return nil
		},
	}
	cmd.Flags().StringVar(&docType, "type", string(document.TypeOfferLetter), "offer-letter, aadhaar or pan")
	return cmd
}

// declinedIsNotAnError turns a declined prompt into a normal exit. Server
// failures were already reported by the notifier.
func declinedIsNotAnError(c *cli, err error) error {
	if errors.Is(err, listview.ErrDeclined) {
		fmt.Fprintln(c.out, "Cancelled")
		return nil
	}
	return err
}

func compactFilters(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out[k] = v
		}
	}
	return out
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
