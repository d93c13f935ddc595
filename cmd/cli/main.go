package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/goinvest/internal/adapter/http/dto"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	baseURL string
	token   string
	timeout time.Duration
	limit   int
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "goinvest-cli",
		Short:         "GoInvest CLI tool",
		Long:          `A command line interface for operating the GoInvest API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the GoInvest API")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("GOINVEST_TOKEN"), "Bearer token")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().IntVar(&opts.limit, "limit", 50, "Page size for list commands")

	var date string
	tickCmd := &cobra.Command{
		Use:   "tick",
		Short: "Run maturity and principal release processing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var res dto.TickResponse
			err := opts.do(cmd.Context(), http.MethodPost, "/api/v1/scheduler/tick", dto.TickRequest{Date: date}, &res)

			// A failed owner still reports what the rest of the run did.
			var apiErr *apiError
			if errors.As(err, &apiErr) && json.Unmarshal(apiErr.body, &res) == nil && res.Date != "" {
				err = fmt.Errorf("tick finished with errors: %s", res.Error)
			} else if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "date %s: %d investments advanced, %d releases completed\n",
				res.Date, res.InvestmentsAdvanced, res.ReleasesCompleted)
			return err
		},
	}
	tickCmd.Flags().StringVar(&date, "date", "", "Date to process (YYYY-MM-DD), defaults to today")

	balancesCmd := &cobra.Command{
		Use:   "balances <owner>",
		Short: "Show the balances of an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var l dto.LedgerResponse
			if err := opts.do(cmd.Context(), http.MethodGet, "/api/v1/ledgers/"+url.PathEscape(args[0]), nil, &l); err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "owner\t%s\n", l.OwnerID)
			fmt.Fprintf(w, "available\t%s\n", l.AvailableBalance.StringFixed(2))
			fmt.Fprintf(w, "invested\t%s\n", l.InvestedPrincipal.StringFixed(2))
			fmt.Fprintf(w, "returns\t%s\n", l.AccruedReturns.StringFixed(2))
			fmt.Fprintf(w, "referral\t%s\n", l.ReferralEarnings.StringFixed(2))
			fmt.Fprintf(w, "withdrawals blocked\t%t\n", l.WithdrawalBlocked)
			return w.Flush()
		},
	}

	investmentsCmd := &cobra.Command{
		Use:   "investments <owner>",
		Short: "List the investments of an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var page dto.ListResponse[dto.InvestmentResponse]
			if err := opts.do(cmd.Context(), http.MethodGet, opts.listPath(args[0], "investments"), nil, &page); err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRINCIPAL\tRATE\tSTATUS\tNEXT BOUNDARY\tPROGRESS")
			for _, inv := range page.Items {
				progress := "-"
				if inv.Cycle != nil {
					progress = fmt.Sprintf("%d%%", inv.Cycle.ProgressPct)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					inv.ID, inv.Principal.StringFixed(2), inv.MonthlyRate.String(), inv.Status, inv.NextCycleBoundary, progress)
			}
			return w.Flush()
		},
	}

	withdrawalsCmd := &cobra.Command{
		Use:   "withdrawals <owner>",
		Short: "List the withdrawals of an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var page dto.ListResponse[dto.WithdrawalResponse]
			if err := opts.do(cmd.Context(), http.MethodGet, opts.listPath(args[0], "withdrawals"), nil, &page); err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tAMOUNT\tSOURCE\tSTATUS\tATTEMPTS\tBLOCKED")
			for _, wd := range page.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%t\n",
					wd.ID, wd.Amount.StringFixed(2), wd.SourceBucket, wd.Status, wd.VerificationAttempts, wd.IsBlocked)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(tickCmd, balancesCmd, investmentsCmd, withdrawalsCmd)
	return rootCmd
}

func (o *options) listPath(owner, resource string) string {
	return fmt.Sprintf("/api/v1/ledgers/%s/%s?limit=%d", url.PathEscape(owner), resource, o.limit)
}

type apiError struct {
	status int
	body   []byte
}

func (e *apiError) Error() string {
	var resp dto.ErrorResponse
	if json.Unmarshal(e.body, &resp) == nil && resp.Error != "" {
		if resp.Message != "" {
			return fmt.Sprintf("%s (status %d): %s", resp.Error, e.status, resp.Message)
		}
		return fmt.Sprintf("%s (status %d)", resp.Error, e.status)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.status, string(e.body))
}

// do sends a JSON request and decodes a 2xx response into out.
func (o *options) do(ctx context.Context, method, path string, body, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, o.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if o.token != "" {
		req.Header.Set("Authorization", "Bearer "+o.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apiError{status: resp.StatusCode, body: raw}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
