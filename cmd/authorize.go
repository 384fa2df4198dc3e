package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/d3s/internal/app"
	"github.com/oshokin/d3s/internal/logger"
	"github.com/oshokin/d3s/internal/threeds"
)

const (
	flagACSURL      = "acs-url"
	flagMD          = "md"
	flagPaReq       = "pareq"
	flagCReq        = "creq"
	flagSessionData = "session-data"
	flagCallbackURL = "callback-url"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	authorizeCmd = &cobra.Command{
		Use:   "authorize",
		Short: "Authorize with any protocol version",
		Long: `Opens the ACS page and waits for the cardholder to finish the challenge.

The protocol version follows from the parameters: a request with --creq
is 3-D Secure 2, otherwise it is 3-D Secure 1 and --pareq is required.`,
		Example: `d3s authorize --acs-url https://acs.bank.test/pareq --md MD123 --pareq eJzVWNe...
d3s authorize --acs-url https://acs.bank.test/creq --creq eyJ0aHJl... -f json`,
		Args: cobra.NoArgs,
		Run:  runAuthorize,
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	v1Cmd = &cobra.Command{
		Use:     "v1",
		Short:   "Authorize with 3-D Secure 1 (MD + PaReq)",
		Example: `d3s v1 --acs-url https://acs.bank.test/pareq --md MD123 --pareq eJzVWNe... -o result.yaml`,
		Args:    cobra.NoArgs,
		Run:     runAuthorize,
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	v2Cmd = &cobra.Command{
		Use:   "v2",
		Short: "Authorize with 3-D Secure 2 (CReq + threeDSSessionData)",
		Long: `Opens the ACS challenge page for a 3-D Secure 2 CReq.

--callback-url sets the notification URL the ACS redirects to when the
challenge is finished. It is only used to detect the end of the flow.`,
		Example: `d3s v2 --acs-url https://acs.bank.test/creq --creq eyJ0aHJl... --session-data ORDER-42`,
		Args:    cobra.NoArgs,
		Run:     runAuthorize,
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	addAuthorizeFlags(authorizeCmd.Flags())
	addV1Flags(v1Cmd.Flags())
	addV2Flags(v2Cmd.Flags())

	for _, c := range []*cobra.Command{authorizeCmd, v1Cmd, v2Cmd} {
		addOutputFlags(c.Flags())
		_ = c.MarkFlagRequired(flagACSURL)
		rootCmd.AddCommand(c)
	}

	_ = v1Cmd.MarkFlagRequired(flagPaReq)
	_ = v2Cmd.MarkFlagRequired(flagCReq)
}

// addAuthorizeFlags registers the parameters of both protocol versions.
func addAuthorizeFlags(flags *pflag.FlagSet) {
	addV1Flags(flags)
	flags.String(flagCReq, "", "3-D Secure 2 challenge request (base64url JSON).")
	flags.String(flagSessionData, "", "3-D Secure 2 threeDSSessionData echoed back by the ACS.")
	flags.String(flagCallbackURL, "", "3-D Secure 2 notification URL prefix that marks the end of the flow.")
}

// addV1Flags registers the 3-D Secure 1 parameters.
func addV1Flags(flags *pflag.FlagSet) {
	flags.String(flagACSURL, "", "ACS URL the request is sent to.")
	flags.String(flagMD, "", "3-D Secure 1 merchant data.")
	flags.String(flagPaReq, "", "3-D Secure 1 payer authentication request.")
}

// addV2Flags registers the 3-D Secure 2 parameters.
func addV2Flags(flags *pflag.FlagSet) {
	flags.String(flagACSURL, "", "ACS URL the request is sent to.")
	flags.String(flagCReq, "", "challenge request (base64url JSON).")
	flags.String(flagSessionData, "", "threeDSSessionData echoed back by the ACS.")
	flags.String(flagCallbackURL, "", "notification URL prefix that marks the end of the flow.")
}

// requestFromFlags builds an authorization request from the flags a command defines.
// Flags the command does not define stay empty.
func requestFromFlags(flags *pflag.FlagSet) threeds.Request {
	get := func(name string) string {
		if flags.Lookup(name) == nil {
			return ""
		}

		value, _ := flags.GetString(name)

		return value
	}

	return threeds.Request{
		ACSURL:             get(flagACSURL),
		MD:                 get(flagMD),
		PaReq:              get(flagPaReq),
		CReq:               get(flagCReq),
		ThreeDSSessionData: get(flagSessionData),
		CallbackURL:        get(flagCallbackURL),
	}
}

func runAuthorize(cmd *cobra.Command, _ []string) {
	prepareConfig(cmd)

	req := requestFromFlags(cmd.Flags())
	if err := req.Validate(); err != nil {
		logger.Fatalf(cmd.Context(), "Invalid request: %v", err)
	}

	app.ExecuteAuthorizeCommand(cmd.Context(), appConfig, req)
}
