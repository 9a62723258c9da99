package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vortex-fintech/go-iban/foundation/geo"
	"github.com/vortex-fintech/go-iban/foundation/iban"
	"github.com/vortex-fintech/go-iban/foundation/logger"
	"github.com/vortex-fintech/go-iban/foundation/logutil"
)

var errNoInput = errors.New("no IBAN given: pass it as an argument or on standard input")

type report struct {
	IBAN      string        `json:"iban"`
	Formatted string        `json:"formatted,omitempty"`
	Valid     bool          `json:"valid"`
	Reason    iban.Reason   `json:"reason"`
	Message   string        `json:"message"`
	Account   *iban.Account `json:"account,omitempty"`
}

func newRootCmd(stdin io.Reader, code *int) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("IBANCHECK")
	v.AutomaticEnv()
	v.SetDefault("env", "quiet")
	v.SetDefault("json", false)

	cmd := &cobra.Command{
		Use:           "ibancheck [IBAN]",
		Short:         "Validate an IBAN and print its bank, branch and account fields",
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New("ibancheck", v.GetString("env"), logger.WithOutput("stderr"))
			if err != nil {
				return err
			}
			defer log.SafeSync()

			raw, err := readInput(args, stdin)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "ibancheck:", err)
				*code = exitUsage
				return nil
			}

			rep := check(raw)
			log.Debugw("checked", logutil.RedactKV("iban", rep.IBAN, "reason", rep.Reason)...)

			if v.GetBool("json") {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(rep); err != nil {
					return err
				}
			} else {
				printText(cmd.OutOrStdout(), rep)
			}

			switch {
			case rep.Valid:
				*code = exitValid
			case rep.Reason == iban.ReasonEmpty:
				*code = exitUsage
			default:
				*code = exitInvalid
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "print the result as JSON")
	cmd.Flags().String("env", "quiet", "log preset: quiet, production, development or debug")
	_ = v.BindPFlag("json", cmd.Flags().Lookup("json"))
	_ = v.BindPFlag("env", cmd.Flags().Lookup("env"))

	return cmd
}

// readInput takes the argument if there is one, otherwise the first line
// of stdin.
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if stdin == nil {
		return "", errNoInput
	}
	sc := bufio.NewScanner(stdin)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return "", errNoInput
	}
	return sc.Text(), nil
}

func check(raw string) report {
	res := iban.Validate(raw)
	rep := report{
		IBAN:    res.IBAN,
		Valid:   res.Valid,
		Reason:  res.Reason,
		Message: res.Reason.Message(),
	}
	if res.Valid {
		acc := iban.DecomposeNormalized(res.IBAN)
		rep.Formatted = iban.Format(res.IBAN)
		rep.Account = &acc
	}
	return rep
}

func printText(w io.Writer, rep report) {
	fmt.Fprintf(w, "reason: %s\n", rep.Reason)
	if !rep.Valid {
		fmt.Fprintf(w, "message: %s\n", rep.Message)
		return
	}
	acc := rep.Account
	country := acc.Country
	if flag := geo.FlagEmoji(country); flag != "" {
		country += " " + flag
	}

	lines := [][2]string{
		{"iban", rep.Formatted},
		{"country", country},
		{"bank_code", acc.BankCode},
		{"branch_code", acc.BranchCode},
		{"account_number", acc.AccountNumber},
		{"status", acc.Status.String()},
	}
	for _, l := range lines {
		if l[1] == "" {
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", l[0], strings.TrimSpace(l[1]))
	}
}
