package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/text/message"

	"github.com/julianstephens/keepmoving/internal/api"
	"github.com/julianstephens/keepmoving/internal/locale"
	"github.com/julianstephens/keepmoving/internal/logger"
	"github.com/julianstephens/keepmoving/internal/query"
	"github.com/julianstephens/keepmoving/internal/tui"
)

// Root is the command tree and its global flags
type Root struct {
	Version kong.VersionFlag `help:"Print the version and exit."`
	Config  kong.ConfigFlag  `help:"YAML config file." placeholder:"PATH"`
	APIURL  string           `name:"api-url" help:"Goals API base URL." env:"KEEPMOVING_API_URL" default:"${api_url}"`
	Debug   bool             `help:"Mirror logs to stderr and log at debug level." env:"KEEPMOVING_DEBUG"`
	Locale  string           `help:"Display language (e.g. en, pt_BR)." env:"LANG"`
	Timeout time.Duration    `help:"Per-request timeout, 0 disables it." default:"0s"`

	Tui  TuiCmd `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Goal struct {
		Create GoalCreateCmd `cmd:"" help:"Create a weekly goal."`
	} `cmd:"" help:"Manage goals."`
	Pending PendingCmd `cmd:"" help:"List goals still pending this week."`
	Summary SummaryCmd `cmd:"" help:"Show this week's progress."`
}

// Context is passed to every command's Run method
type Context struct {
	Ctx     context.Context
	API     tui.GoalsAPI
	Cache   *query.Client
	Printer *message.Printer
	Out     io.Writer
}

// NewContext builds the shared command context from the parsed global flags
func (r *Root) NewContext(ctx context.Context, out io.Writer) (*Context, error) {
	var opts []api.Option
	if r.Timeout > 0 {
		opts = append(opts, api.WithTimeout(r.Timeout))
	}

	client, err := api.New(r.APIURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid --api-url: %w", err)
	}
	logger.Debug("goals api configured", "base_url", client.BaseURL(), "timeout", r.Timeout)

	return &Context{
		Ctx:     ctx,
		API:     client,
		Cache:   query.NewClient(),
		Printer: locale.Printer(locale.Match(r.Locale)),
		Out:     out,
	}, nil
}
