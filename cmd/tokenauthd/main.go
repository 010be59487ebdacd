// tokenauthd is a demonstration daemon that mounts the soundcloud token
// strategy in front of a protected API. Clients authenticate by supplying a
// previously-obtained access token in the request body or query string.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/otterauth/tokenauth"
	cmdutil "github.com/otterauth/tokenauth/cmd"
	tokenauthhttp "github.com/otterauth/tokenauth/http"
	"github.com/otterauth/tokenauth/http/decode"
	"github.com/otterauth/tokenauth/logr"
	"github.com/otterauth/tokenauth/soundcloud"
)

const defaultAddress = ":8080"

func main() {
	// Configure ^C to terminate program
	ctx, cancel := context.WithCancel(context.Background())
	cmdutil.CatchCtrlC(cancel)

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		cmdutil.PrintError(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cmd := &cobra.Command{
		Use:           "tokenauthd",
		Short:         "tokenauth daemon",
		Long:          "tokenauthd authenticates API requests with soundcloud access tokens.",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Define run func in order to enable cobra's default help
		// functionality
		Run: func(cmd *cobra.Command, args []string) {},
	}
	cmd.SetOut(out)

	var (
		help, version  bool
		address        string
		requestLogging bool
		strategyCfg    soundcloud.Config
		loggerCfg      logr.Config
	)

	cmd.Flags().StringVar(&address, "address", defaultAddress, "Listening address")
	cmd.Flags().StringVar(&strategyCfg.ClientID, "client-id", "", "Soundcloud client ID")
	cmd.Flags().StringVar(&strategyCfg.ClientSecret, "client-secret", "", "Soundcloud client secret")
	cmd.Flags().StringVar(&strategyCfg.ProfileURL, "profile-url", "", "Override the soundcloud profile endpoint")
	cmd.Flags().StringVar(&strategyCfg.AccessTokenField, "access-token-field", "", "Request field carrying the access token")
	cmd.Flags().StringVar(&strategyCfg.RefreshTokenField, "refresh-token-field", "", "Request field carrying the refresh token")
	cmd.Flags().BoolVar(&requestLogging, "request-logging", false, "Log every request")
	cmd.Flags().BoolVarP(&version, "version", "V", false, "Print version of tokenauthd")
	cmd.Flags().BoolVarP(&help, "help", "h", false, "Print usage information")
	logr.LoadConfigFromFlags(cmd.Flags(), &loggerCfg)

	cmdutil.SetFlagsFromEnvVariables(cmd.Flags())

	if err := cmd.ParseFlags(args); err != nil {
		return err
	}

	if help {
		return cmd.Help()
	}

	if version {
		fmt.Fprintln(cmd.OutOrStdout(), tokenauth.Version)
		return nil
	}

	logger, err := logr.New(&loggerCfg)
	if err != nil {
		return err
	}

	// The demo verify function accepts any soundcloud identity and uses the
	// canonical profile as the application user.
	verify := func(ctx context.Context, v soundcloud.Verification) (any, tokenauth.Info, error) {
		return v.Profile, nil, nil
	}
	strategy, err := soundcloud.New(strategyCfg, verify)
	if err != nil {
		return fmt.Errorf("constructing soundcloud strategy: %w", err)
	}
	logger.Info("activated token strategy", "name", strategy.Name())

	server, err := tokenauthhttp.NewServer(logger, tokenauthhttp.ServerConfig{
		EnableRequestLogging: requestLogging,
		Middleware: []mux.MiddlewareFunc{
			tokenauthhttp.AuthenticateRequests(logger, strategy),
		},
		Handlers: []tokenauthhttp.Handlers{
			&apiHandlers{},
		},
	})
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(ctx, ln)
	})
	return g.Wait()
}

type apiHandlers struct{}

func (h *apiHandlers) AddHandlers(r *mux.Router) {
	r.HandleFunc("/api/me", h.me)
}

// me echoes the authenticated user's canonical profile.
func (h *apiHandlers) me(w http.ResponseWriter, r *http.Request) {
	subject, err := tokenauth.SubjectFromContext(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var opts struct {
		Pretty bool `schema:"pretty"`
	}
	if err := decode.Query(&opts, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	var payload []byte
	if opts.Pretty {
		payload, err = json.MarshalIndent(subject, "", "  ")
	} else {
		payload, err = json.Marshal(subject)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-type", "application/json")
	w.Write(payload)
}
