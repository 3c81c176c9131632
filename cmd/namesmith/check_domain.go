package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/namesmith/internal/domains"
	"github.com/jonathan/namesmith/internal/observability"
	rootschemas "github.com/jonathan/namesmith/schemas"
)

var checkDomainCmd = &cobra.Command{
	Use:   "check-domain <name>",
	Short: "Suggest domains for a business name",
	Long: `Suggest .com, .net, .org and .io domains for a business name with
simulated availability. Nothing is looked up; this is a demo.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheckDomain,
}

var (
	domainOutputFile string
	domainVerbose    bool
)

func init() {
	checkDomainCmd.Flags().StringVarP(&domainOutputFile, "out", "o", "", "Write the JSON result to this file")
	checkDomainCmd.Flags().BoolVarP(&domainVerbose, "verbose", "v", false, "Print a readable summary instead of JSON")

	rootCmd.AddCommand(checkDomainCmd)
}

func runCheckDomain(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return fmt.Errorf("business name is required")
	}

	res := domains.NewChecker(nil).Check(name)
	if domainVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintDomains(res)
		return nil
	}
	return writeResult(cmd.OutOrStdout(), domainOutputFile, res, rootschemas.DomainCheck)
}
