package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/aussiebroadwan/worklane/pkg/worklane"
	"github.com/spf13/pflag"
)

// Commands returns the worklane command table in help order.
func Commands() []*Command {
	return []*Command{
		{
			Name:    "login",
			Usage:   "login -u <username> [--password-stdin]",
			Summary: "Sign in and store the credential pair",
			Flags:   credentialFlags,
			Run:     runLogin,
		},
		{
			Name:    "register",
			Usage:   "register -u <username> -e <email> [--password-stdin]",
			Summary: "Create a backend account",
			Flags: func(fs *pflag.FlagSet) {
				credentialFlags(fs)
				fs.StringP("email", "e", "", "email address")
			},
			Run: runRegister,
		},
		{
			Name:    "logout",
			Usage:   "logout",
			Summary: "Clear stored credentials",
			Run:     runLogout,
		},
		{
			Name:    "status",
			Usage:   "status",
			Summary: "Report whether a usable session exists (exit 1 when not)",
			Run:     runStatus,
		},
		{
			Name:    "get",
			Usage:   "get <path>",
			Summary: "GET an arbitrary API path and print the JSON response",
			Session: true,
			Run:     runGet,
		},
		{
			Name:    "dashboard",
			Usage:   "dashboard [--json]",
			Summary: "Show dashboard counts and status breakdown",
			Flags:   jsonFlag,
			Session: true,
			Run:     runDashboard,
		},
		{
			Name:    "employees",
			Usage:   "employees [--json]",
			Summary: "List employees",
			Flags:   jsonFlag,
			Session: true,
			Run:     runEmployees,
		},
		{
			Name:    "projects",
			Usage:   "projects [--json]",
			Summary: "List projects",
			Flags:   jsonFlag,
			Session: true,
			Run:     runProjects,
		},
		{
			Name:    "posters",
			Usage:   "posters [--json]",
			Summary: "List marketing posters",
			Flags:   jsonFlag,
			Session: true,
			Run:     runPosters,
		},
		{
			Name:    "version",
			Usage:   "version",
			Summary: "Print the CLI version",
			Bare:    true,
			Run: func(_ context.Context, env *Env, _ *pflag.FlagSet, _ []string) error {
				_, err := fmt.Fprintf(env.Stdout, "worklane %s\n", env.Version)
				return err
			},
		},
	}
}

func credentialFlags(fs *pflag.FlagSet) {
	fs.StringP("username", "u", "", "account username")
	fs.StringP("password", "p", "", "account password (prefer --password-stdin)")
	fs.Bool("password-stdin", false, "read the password from the first line of stdin")
}

func jsonFlag(fs *pflag.FlagSet) {
	fs.Bool("json", false, "print the raw JSON payload")
}

func readPassword(env *Env, fs *pflag.FlagSet) (string, error) {
	password, _ := fs.GetString("password")

	if fromStdin, _ := fs.GetBool("password-stdin"); fromStdin {
		if env.Stdin == nil {
			return "", errors.New("--password-stdin given but stdin is unavailable")
		}
		line, err := bufio.NewReader(env.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if password == "" {
		return "", errors.New("a password is required (--password or --password-stdin)")
	}
	return password, nil
}

func requireUsername(fs *pflag.FlagSet) (string, error) {
	username, _ := fs.GetString("username")
	if username == "" {
		return "", errors.New("--username is required")
	}
	return username, nil
}

func runLogin(ctx context.Context, env *Env, fs *pflag.FlagSet, _ []string) error {
	username, err := requireUsername(fs)
	if err != nil {
		return err
	}
	password, err := readPassword(env, fs)
	if err != nil {
		return err
	}

	if err := env.Client.SignIn(ctx, username, password); err != nil {
		if errors.Is(err, worklane.ErrInvalidCredentials) {
			return errors.New("sign-in rejected: check the username and password")
		}
		return fmt.Errorf("sign-in failed: %w", err)
	}

	fmt.Fprintf(env.Stdout, "Signed in as %s\n", username)
	return nil
}

func runRegister(ctx context.Context, env *Env, fs *pflag.FlagSet, _ []string) error {
	username, err := requireUsername(fs)
	if err != nil {
		return err
	}
	email, _ := fs.GetString("email")
	if email == "" {
		return errors.New("--email is required")
	}
	password, err := readPassword(env, fs)
	if err != nil {
		return err
	}

	err = env.Client.Register(ctx, worklane.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Fprintf(env.Stdout, "Registered %s, run 'worklane login -u %s' to sign in\n", username, username)
	return nil
}

func runLogout(ctx context.Context, env *Env, _ *pflag.FlagSet, _ []string) error {
	if err := env.Client.Logout(ctx); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	fmt.Fprintln(env.Stdout, "Signed out")
	return nil
}

func runStatus(ctx context.Context, env *Env, _ *pflag.FlagSet, _ []string) error {
	state := worklane.NewSessionGate(env.Client).Check(ctx)
	fmt.Fprintln(env.Stdout, state.Status.String())

	if !state.Authenticated() {
		return &ExitError{Code: 1}
	}
	return nil
}

func runGet(ctx context.Context, env *Env, _ *pflag.FlagSet, args []string) error {
	if len(args) != 1 {
		return errors.New("get takes exactly one path argument")
	}
	path := args[0]
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var raw json.RawMessage
	if err := env.Client.DoJSON(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	return printJSON(env.Stdout, raw)
}

func runDashboard(ctx context.Context, env *Env, fs *pflag.FlagSet, _ []string) error {
	data, err := env.Client.Dashboard(ctx)
	if err != nil {
		return err
	}
	if wantJSON(fs) {
		return printJSON(env.Stdout, data)
	}

	tw := newTable(env.Stdout)
	fmt.Fprintf(tw, "Employees\t%d\n", data.Counts.Employees)
	fmt.Fprintf(tw, "Projects\t%d\n", data.Counts.Projects)
	fmt.Fprintf(tw, "Tasks\t%d\n", data.Counts.Tasks)
	fmt.Fprintf(tw, "Posters\t%d\n", data.Counts.Posters)
	for _, s := range data.StatusStats {
		fmt.Fprintf(tw, "%s\t%d\n", s.Label, s.Count)
	}
	return tw.Flush()
}

func runEmployees(ctx context.Context, env *Env, fs *pflag.FlagSet, _ []string) error {
	employees, err := env.Client.ListEmployees(ctx)
	if err != nil {
		return err
	}
	if wantJSON(fs) {
		return printJSON(env.Stdout, employees)
	}

	tw := newTable(env.Stdout)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPOSITION\tDEPARTMENT")
	for _, e := range employees {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Email, e.Position, e.Department)
	}
	return tw.Flush()
}

func runProjects(ctx context.Context, env *Env, fs *pflag.FlagSet, _ []string) error {
	projects, err := env.Client.ListProjects(ctx)
	if err != nil {
		return err
	}
	if wantJSON(fs) {
		return printJSON(env.Stdout, projects)
	}

	tw := newTable(env.Stdout)
	fmt.Fprintln(tw, "ID\tNAME\tDEADLINE\tPROGRESS\tMEMBERS\tTASKS")
	for _, p := range projects {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d%%\t%d\t%d\n", p.ID, p.Name, p.Deadline, p.Progress, len(p.Employees), len(p.Tasks))
	}
	return tw.Flush()
}

func runPosters(ctx context.Context, env *Env, fs *pflag.FlagSet, _ []string) error {
	posters, err := env.Client.ListPosters(ctx)
	if err != nil {
		return err
	}
	if wantJSON(fs) {
		return printJSON(env.Stdout, posters)
	}

	tw := newTable(env.Stdout)
	fmt.Fprintln(tw, "ID\tPROMPT\tIMAGE")
	for _, p := range posters {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Prompt, p.Image)
	}
	return tw.Flush()
}

func wantJSON(fs *pflag.FlagSet) bool {
	v, _ := fs.GetBool("json")
	return v
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}
