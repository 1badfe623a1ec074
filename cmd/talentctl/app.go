package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"text/tabwriter"

	"github.com/jrsteele09/go-talent-client/apiclient"
	"github.com/jrsteele09/go-talent-client/ats"
	"github.com/jrsteele09/go-talent-client/internal/config"
	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
	"github.com/jrsteele09/go-talent-client/sessions"
	"github.com/jrsteele09/go-talent-client/sessions/filestore"
	"github.com/jrsteele09/go-talent-client/sessions/redisstore"
	fakesessionstore "github.com/jrsteele09/go-talent-client/sessions/repofakes"
	"github.com/rs/zerolog/log"
)

const exitSessionExpired = 3

// errSessionExpired marks a run that ended because the session was signed out
var errSessionExpired = errors.New("session expired, run talentctl login again")

type app struct {
	store   sessions.Store
	api     *apiclient.Client
	ats     *ats.Client
	out     io.Writer
	expired atomic.Bool
	closer  func() error
}

func newApp(ctx context.Context, c config.Config) (*app, error) {
	store, closer, err := newStore(ctx, c)
	if err != nil {
		return nil, err
	}

	a := &app{store: store, out: os.Stdout, closer: closer}
	api, err := apiclient.NewFromConfig(c, store, apiclient.WithSessionExpiredHandler(a.sessionExpired))
	if err != nil {
		closer()
		return nil, err
	}
	a.api = api
	a.ats = ats.NewFromAPI(api, ats.WithLoginPath(c.GetTokenPath()))
	return a, nil
}

func newStore(ctx context.Context, c config.StorageConfig) (sessions.Store, func() error, error) {
	noop := func() error { return nil }
	switch c.GetSessionStore() {
	case config.StoreRedis:
		s, err := redisstore.New(ctx, c.GetRedisURL(), redisstore.WithKey(c.GetSessionKey()))
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return s, s.Close, nil
	case config.StoreMemory:
		log.Warn().Msg("Using an in-memory session store, the session ends with this process")
		return fakesessionstore.NewFakeSessionStore(), noop, nil
	default:
		s, err := filestore.New(c.GetSessionFile(), filestore.WithPassphrase(c.GetSessionPassphrase()))
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	}
}

// sessionExpired is the sign-in entry point of a CLI: tell the user and make
// the run fail with a distinct exit code
func (a *app) sessionExpired() {
	a.expired.Store(true)
	fmt.Fprintln(os.Stderr, "Your session has expired. Run `talentctl login` to sign in again.")
}

func (a *app) Close() error {
	return a.closer()
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	var err error
	switch command {
	case "login":
		err = a.login(ctx, args)
	case "logout":
		err = a.ats.Accounts.Logout(ctx)
	case "whoami":
		err = a.whoami(ctx)
	case "profile":
		err = a.profile(ctx)
	case "jobs":
		err = a.jobs(ctx)
	case "tasks":
		err = a.tasks(ctx, args)
	case "request":
		err = a.request(ctx, args)
	default:
		usage()
		return apperrors.Wrapf(apperrors.ErrUnsupported, "unknown command %q", command)
	}
	if a.expired.Load() {
		return errors.Join(errSessionExpired, err)
	}
	return err
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password (defaults to TALENT_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		*password = os.Getenv("TALENT_PASSWORD")
	}
	if *username == "" || *password == "" {
		return errors.New("login needs -u and a password")
	}

	identity, err := a.ats.Accounts.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as user %s (token valid until %s)\n", identity.Subject, identity.ExpiresAt.Local().Format("15:04:05"))
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	identity, err := a.ats.Accounts.Identity(ctx)
	if errors.Is(err, apperrors.ErrNoCredential) {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	if err != nil {
		return err
	}
	return writeJSON(a.out, identity)
}

func (a *app) profile(ctx context.Context) error {
	user, err := a.ats.Accounts.Profile(ctx)
	if err != nil {
		return err
	}
	return writeJSON(a.out, user)
}

func (a *app) jobs(ctx context.Context) error {
	jobs, err := a.ats.Jobs.List(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tLOCATION")
	for _, j := range jobs {
		fmt.Fprintf(w, "%d\t%s\t%s\n", j.ID, j.Title, j.Location)
	}
	return w.Flush()
}

func (a *app) tasks(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	done := fs.Int("done", 0, "mark the task with this id as completed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *done > 0 {
		if _, err := a.ats.Tasks.Complete(ctx, *done, true); err != nil {
			return err
		}
	}

	tasks, err := a.ats.Tasks.List(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tDUE\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(w, "%d\t%t\t%s\t%s\n", t.ID, t.IsCompleted, t.DueDate, t.Title)
	}
	return w.Flush()
}

func (a *app) request(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("request", flag.ContinueOnError)
	output := fs.String("o", "", "write the raw response body to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("request needs a METHOD and a PATH")
	}

	method := strings.ToUpper(fs.Arg(0))
	var body apiclient.Body
	if fs.NArg() > 2 {
		if !json.Valid([]byte(fs.Arg(2))) {
			return errors.New("request body must be valid JSON")
		}
		body = apiclient.Raw("application/json", []byte(fs.Arg(2)))
	}

	var opts []apiclient.RequestOption
	if *output != "" {
		opts = append(opts, apiclient.ExpectBinary())
	}

	resp, err := a.api.Request(ctx, method, fs.Arg(1), body, opts...)
	if err != nil {
		var requestErr *apiclient.RequestFailedError
		if errors.As(err, &requestErr) && len(requestErr.Body) > 0 {
			fmt.Fprintln(os.Stderr, string(requestErr.Body))
		}
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, resp.Body, 0o600); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%d: wrote %d bytes (%s) to %s\n", resp.Status, len(resp.Body), resp.ContentType(), *output)
		return nil
	}
	if resp.Status == http.StatusNoContent {
		fmt.Fprintln(a.out, resp.Status)
		return nil
	}
	_, err = a.out.Write(append(resp.Body, '\n'))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func exitCode(err error) int {
	if errors.Is(err, errSessionExpired) {
		return exitSessionExpired
	}
	return 1
}
