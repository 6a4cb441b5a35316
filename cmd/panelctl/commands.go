package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/admin-panel/internal/adapter"
	"github.com/MKhiriev/admin-panel/internal/logger"
	"github.com/MKhiriev/admin-panel/internal/service"
	"github.com/MKhiriev/admin-panel/models"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

var (
	errUnknownCommand   = errors.New("unknown command")
	errMissingFlag      = errors.New("missing required flag")
	errPasswordMismatch = errors.New("passwords do not match")
)

const usage = `usage: panelctl <command> [flags]

commands:
  bootstrap -username NAME -email EMAIL   create the first admin master in the local store
  login     -username NAME                log in and print the issued tokens
  refresh   [-refresh-token TOKEN]        exchange a refresh token for a new access token
  profile                                 show the token owner's profile
  register  -username NAME -email EMAIL -role ROLE
                                          create an account (admin master only)
  passwd                                  change the token owner's password
  health                                  show server status
  version                                 show panelctl build information

remote commands read PANEL_SERVER, PANEL_TOKEN, PANEL_REFRESH_TOKEN and
PANEL_TIMEOUT from the environment; -server, -token and -timeout override them.
`

// settings are the remote connection defaults taken from the environment.
type settings struct {
	Server       string        `env:"PANEL_SERVER" envDefault:"http://localhost:8080"`
	Token        string        `env:"PANEL_TOKEN"`
	RefreshToken string        `env:"PANEL_REFRESH_TOKEN"`
	Timeout      time.Duration `env:"PANEL_TIMEOUT" envDefault:"10s"`
}

// prompter reads secrets from the operator.
type prompter interface {
	Password(label string) (string, error)
}

type cli struct {
	out       io.Writer
	prompt    prompter
	environ   map[string]string
	buildInfo models.AppBuildInfo

	newAdapter      func(s settings) (adapter.APIAdapter, error)
	openAuthService func(ctx context.Context) (service.AuthService, func() error, error)

	logger *logger.Logger
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(c.out, usage)
		return flag.ErrHelp
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "bootstrap":
		return c.bootstrap(ctx, rest)
	case "login":
		return c.login(ctx, rest)
	case "refresh":
		return c.refresh(ctx, rest)
	case "profile":
		return c.profile(ctx, rest)
	case "register":
		return c.register(ctx, rest)
	case "passwd":
		return c.passwd(ctx, rest)
	case "health":
		return c.health(ctx, rest)
	case "version":
		return c.print(map[string]string{
			"version":    c.buildInfo.BuildVersion(),
			"build_date": c.buildInfo.BuildDate(),
			"commit":     c.buildInfo.BuildCommit(),
		})
	case "help", "-h", "-help", "--help":
		fmt.Fprint(c.out, usage)
		return nil
	default:
		return fmt.Errorf("%w %q", errUnknownCommand, cmd)
	}
}

func (c *cli) bootstrap(ctx context.Context, args []string) error {
	fs := c.flagSet("bootstrap")
	username := fs.String("username", "", "admin username")
	email := fs.String("email", "", "admin email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(fs, "username", "email"); err != nil {
		return err
	}

	password, err := c.newPassword("Password")
	if err != nil {
		return err
	}

	auth, closeStore, err := c.openAuthService(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			c.logger.Warn().Err(cerr).Msg("error closing user store")
		}
	}()

	id, err := auth.CreateAdmin(ctx, *username, *email, password)
	if err != nil {
		return err
	}

	c.logger.Info().Str("username", *username).Int64("user_id", id).Msg("admin master created")
	return c.print(models.RegisterResponse{Msg: "admin master created", UserID: id})
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs, s := c.remoteFlagSet("login")
	username := fs.String("username", "", "username")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(fs, "username"); err != nil {
		return err
	}

	api, err := c.connect(*s)
	if err != nil {
		return err
	}

	password, err := c.prompt.Password("Password")
	if err != nil {
		return err
	}

	resp, err := api.Login(ctx, *username, password)
	if err != nil {
		return err
	}
	return c.print(resp)
}

func (c *cli) refresh(ctx context.Context, args []string) error {
	fs, s := c.remoteFlagSet("refresh")
	fs.StringVar(&s.RefreshToken, "refresh-token", s.RefreshToken, "refresh token (env PANEL_REFRESH_TOKEN)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if s.RefreshToken == "" {
		return fmt.Errorf("%w: -refresh-token", errMissingFlag)
	}

	api, err := c.connect(*s)
	if err != nil {
		return err
	}

	resp, err := api.Refresh(ctx, s.RefreshToken)
	if err != nil {
		return err
	}
	return c.print(resp)
}

func (c *cli) profile(ctx context.Context, args []string) error {
	fs, s := c.remoteFlagSet("profile")
	if err := fs.Parse(args); err != nil {
		return err
	}

	api, err := c.connect(*s)
	if err != nil {
		return err
	}

	resp, err := api.Profile(ctx)
	if err != nil {
		return err
	}
	return c.print(resp)
}

func (c *cli) register(ctx context.Context, args []string) error {
	fs, s := c.remoteFlagSet("register")
	var req models.RegisterRequest
	fs.StringVar(&req.Username, "username", "", "new username")
	fs.StringVar(&req.Email, "email", "", "new user's email")
	fs.StringVar(&req.Role, "role", "", "admin_master, admin_tecnico or visualizador")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(fs, "username", "email", "role"); err != nil {
		return err
	}

	api, err := c.connect(*s)
	if err != nil {
		return err
	}

	if req.Password, err = c.newPassword("New user's password"); err != nil {
		return err
	}

	resp, err := api.Register(ctx, req)
	if err != nil {
		return err
	}
	return c.print(resp)
}

func (c *cli) passwd(ctx context.Context, args []string) error {
	fs, s := c.remoteFlagSet("passwd")
	if err := fs.Parse(args); err != nil {
		return err
	}

	api, err := c.connect(*s)
	if err != nil {
		return err
	}

	oldPassword, err := c.prompt.Password("Current password")
	if err != nil {
		return err
	}
	newPassword, err := c.newPassword("New password")
	if err != nil {
		return err
	}

	if err = api.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return err
	}
	return c.print(models.MessageResponse{Msg: "password changed"})
}

func (c *cli) health(ctx context.Context, args []string) error {
	fs, s := c.remoteFlagSet("health")
	if err := fs.Parse(args); err != nil {
		return err
	}

	api, err := c.connect(*s)
	if err != nil {
		return err
	}

	resp, err := api.Health(ctx)
	if err != nil {
		return err
	}
	return c.print(resp)
}

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("panelctl "+name, flag.ContinueOnError)
	fs.SetOutput(c.out)
	return fs
}

// remoteFlagSet returns a flag set preloaded with the connection flags,
// defaulted from the environment.
func (c *cli) remoteFlagSet(name string) (*flag.FlagSet, *settings) {
	s := &settings{}
	if err := env.ParseWithOptions(s, env.Options{Environment: c.environ}); err != nil {
		c.logger.Warn().Err(err).Msg("ignoring malformed PANEL_* environment")
		s = &settings{Server: "http://localhost:8080", Timeout: 10 * time.Second}
	}

	fs := c.flagSet(name)
	fs.StringVar(&s.Server, "server", s.Server, "server address (env PANEL_SERVER)")
	fs.StringVar(&s.Token, "token", s.Token, "access token (env PANEL_TOKEN)")
	fs.DurationVar(&s.Timeout, "timeout", s.Timeout, "request timeout (env PANEL_TIMEOUT)")
	return fs, s
}

func (c *cli) connect(s settings) (adapter.APIAdapter, error) {
	api, err := c.newAdapter(s)
	if err != nil {
		return nil, err
	}
	if s.Token != "" {
		api.SetToken(s.Token)
	}
	return api, nil
}

// newPassword asks twice and requires both answers to match.
func (c *cli) newPassword(label string) (string, error) {
	first, err := c.prompt.Password(label)
	if err != nil {
		return "", err
	}
	second, err := c.prompt.Password("Repeat " + strings.ToLower(label[:1]) + label[1:])
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errPasswordMismatch
	}
	return first, nil
}

func (c *cli) print(v any) error {
	enc := yaml.NewEncoder(c.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	return enc.Close()
}

func requireFlags(fs *flag.FlagSet, names ...string) error {
	for _, name := range names {
		if f := fs.Lookup(name); f == nil || f.Value.String() == "" {
			return fmt.Errorf("%w: -%s", errMissingFlag, name)
		}
	}
	return nil
}

// describeError adds the operator-facing hints carried by API and service
// errors.
func describeError(err error) string {
	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		return fmt.Sprintf("%v (retry in %s)", err, apiErr.RetryAfter)
	}

	var svcErr *service.Error
	if errors.As(err, &svcErr) && len(svcErr.Violations) > 0 {
		violations := make([]string, 0, len(svcErr.Violations))
		for _, v := range svcErr.Violations {
			violations = append(violations, string(v))
		}
		return fmt.Sprintf("%v [%s]", err, strings.Join(violations, ", "))
	}

	return err.Error()
}
