package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/igolaizola/musicprompt/pkg/cmd/admin"
	"github.com/igolaizola/musicprompt/pkg/cmd/batch"
	"github.com/igolaizola/musicprompt/pkg/cmd/checkout"
	"github.com/igolaizola/musicprompt/pkg/cmd/export"
	"github.com/igolaizola/musicprompt/pkg/cmd/format"
	"github.com/igolaizola/musicprompt/pkg/cmd/maintenance"
	"github.com/igolaizola/musicprompt/pkg/cmd/migrate"
	"github.com/igolaizola/musicprompt/pkg/cmd/notify"
	"github.com/igolaizola/musicprompt/pkg/cmd/options"
	"github.com/igolaizola/musicprompt/pkg/cmd/random"
	"github.com/igolaizola/musicprompt/pkg/cmd/suggest"
	"github.com/igolaizola/musicprompt/pkg/cmd/token"
	"github.com/igolaizola/musicprompt/pkg/cmd/web"
	"github.com/igolaizola/musicprompt/pkg/quota"
	"github.com/peterbourgon/ff/ffyaml"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

const envPrefix = "MUSICPROMPT"

func New(version, commit, date string) *ffcli.Command {
	fs := flag.NewFlagSet("musicprompt", flag.ExitOnError)

	return &ffcli.Command{
		ShortUsage: "musicprompt [flags] <subcommand>",
		FlagSet:    fs,
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
		Subcommands: []*ffcli.Command{
			newVersionCommand(version, commit, date),
			newMigrateCommand(),
			newOptionsCommand(),
			newFormatCommand(),
			newSuggestCommand(),
			newRandomCommand(),
			newIdeasCommand(),
			newBatchCommand(),
			newWebCommand(version),
			newNotifyCommand(),
			newScheduleCommand(),
			newAdminCommand(),
			newMaintenanceCommand(),
			newExportCommand(),
			newCheckoutCommand(),
			newTokenCommand(),
		},
	}
}

func newVersionCommand(version, commit, date string) *ffcli.Command {
	return &ffcli.Command{
		Name:       "version",
		ShortUsage: "musicprompt version",
		ShortHelp:  "print version",
		Exec: func(ctx context.Context, args []string) error {
			fmt.Println(versionString(version, commit, date))
			return nil
		},
	}
}

func versionString(version, commit, date string) string {
	v := version
	if v == "" {
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			v = buildInfo.Main.Version
		}
	}
	if v == "" || v == "(devel)" {
		v = "dev"
	}
	versionFields := []string{v}
	if commit != "" {
		versionFields = append(versionFields, commit)
	}
	if date != "" {
		versionFields = append(versionFields, date)
	}
	return strings.Join(versionFields, " ")
}

func ffOptions() []ff.Option {
	return []ff.Option{
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ffyaml.Parser),
		ff.WithEnvVarPrefix(envPrefix),
	}
}

func dbFlags(fs *flag.FlagSet, dbType, dbConn *string) {
	fs.StringVar(dbType, "db-type", "", "db type (local, sqlite, mysql, postgres)")
	fs.StringVar(dbConn, "db-conn", "", "path for sqlite, dsn for mysql or postgres")
}

func newMigrateCommand() *ffcli.Command {
	cmd := "migrate"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &migrate.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	dbFlags(fs, &cfg.DBType, &cfg.DBConn)

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicprompt %s [flags]", cmd),
		Options:    ffOptions(),
		ShortHelp:  "create or upgrade the database schema",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return migrate.Run(ctx, cfg)
		},
	}
}

func newOptionsCommand() *ffcli.Command {
	cmd := "options"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &options.Config{}

	fs.StringVar(&cfg.Field, "field", "", "print only this field (e.g. mood, key_scale)")
	fs.StringVar(&cfg.Output, "output", "", "output format (text, json, yaml)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicprompt %s [flags]", cmd),
		Options:    ffOptions(),
		ShortHelp:  "print the option catalog",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return options.Run(ctx, cfg)
		},
	}
}

func newFormatCommand() *ffcli.Command {
	cmd := "format"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &format.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.Input, "input", "", "json or yaml file with the record (replaces the field flags)")
	fs.BoolVar(&cfg.Strict, "strict", false, "fail on values that aren't in the catalog")
	fs.StringVar(&cfg.Output, "output", "", "output format (text, json, yaml)")

	d := &cfg.Data
	fs.StringVar(&d.Subject, "subject", "", "what the track is about")
	fsListVar(fs, &d.GenresPrimary, "genres", "primary genres (comma separated)")
	fsListVar(fs, &d.GenresElectronic, "electronic", "electronic genres (comma separated)")
	fsListVar(fs, &d.Mood, "mood", "moods (comma separated)")
	fs.StringVar(&d.TempoBPM, "bpm", "", "tempo in bpm")
	fs.StringVar(&d.KeyScale, "key", "", "key and scale, e.g. A Minor")
	fs.StringVar(&d.Energy, "energy", "", "energy (low, medium, high, very_high)")
	fsListVar(fs, &d.Beat, "beat", "beat styles (comma separated)")
	fsListVar(fs, &d.Bass, "bass", "bass characteristics (comma separated)")
	fsListVar(fs, &d.Instruments, "instruments", "instruments (comma separated)")
	fs.StringVar(&d.GrooveSwing, "groove", "", "groove or swing")
	fs.StringVar(&d.VocalGender, "vocal-gender", "", "vocal gender (male, female, duet, none)")
	fs.StringVar(&d.VocalDelivery, "vocal-delivery", "", "vocal delivery")
	fs.StringVar(&d.Era, "era", "", "era of inspiration")
	fs.StringVar(&d.MasterNotes, "master-notes", "", "mixing and mastering notes")
	fs.StringVar(&d.GeneralFreeform, "freeform", "", "free text appended to the prompt")
	fs.StringVar(&d.Length, "length", "", "length (short, medium, long)")
	fs.StringVar(&d.WeirdnessLevel, "weirdness", "", "weirdness level")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicprompt %s [flags]", cmd),
		Options:    ffOptions(),
		ShortHelp:  "build a prompt from the selected fields",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return format.Run(ctx, cfg)
		},
	}
}

func newSuggestCommand() *ffcli.Command {
	cmd := "suggest"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &suggest.Config{}

	fsListVar(fs, &cfg.Genres, "genres", "selected genres (comma separated)")
	fsListVar(fs, &cfg.Moods, "moods", "selected moods (comma separated)")
	fs.StringVar(&cfg.Output, "output", "json", "output format (json, yaml)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicprompt %s [flags]", cmd),
		Options:    ffOptions(),
		ShortHelp:  "suggest bpm, keys, beats, bass and era for genres and moods",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return suggest.Run(ctx, cfg)
		},
	}
}

func newRandomCommand() *ffcli.Command {
	cmd := "random"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &random.Config{}

	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed (0 for a random one)")
	fs.IntVar(&cfg.Count, "count", 1, "number of tracks")
	fs.StringVar(&cfg.Output, "output", "", "output format (text, json, yaml)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicprompt %s [flags]", cmd),
		Options:    ffOptions(),
		ShortHelp:  "generate random tracks",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return random.Run(ctx, cfg)
		},
	}
}

func newIdeasCommand() *ffcli.Command {
	cmd := "ideas"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &random.Config{Ideas: true}

	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed (0 for a random one)")
	fs.IntVar(&cfg.Count, "count", 5, "number of ideas (max 20)")
	fs.StringVar(&cfg.Output, "output", "", "output format (text, json, yaml)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicprompt %s [flags]", cmd),
		Options:    ffOptions(),
		ShortHelp:  "generate random track ideas",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return random.Run(ctx, cfg)
		},
	}
}

func newBatchCommand() *ffcli.Command {
	cmd := "batch"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &batch.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	dbFlags(fs, &cfg.DBType, &cfg.DBConn)
	fs.StringVar(&cfg.Input, "input", "", "csv, json or yaml file with records")
	fs.StringVar(&cfg.Output, "output", "", "output format (text, json, yaml)")
	fs.IntVar(&cfg.Limit, "limit", 0, "maximum number of records (0 for all)")
	fs.BoolVar(&cfg.Strict, "strict", false, "fail on values that aren't in the catalog")
	fs.BoolVar(&cfg.Save, "save", false, "save the prompts to the database")
	fs.StringVar(&cfg.User, "user", "", "user id to save the prompts for")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicprompt %s [flags]", cmd),
		Options:    ffOptions(),
		ShortHelp:  "build prompts for every record of a file",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return batch.Run(ctx, cfg)
		},
	}
}

func newWebCommand(version string) *ffcli.Command {
	cmd := "web"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &web.Config{Release: version}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	dbFlags(fs, &cfg.DBType, &cfg.DBConn)

	fs.StringVar(&cfg.Addr, "addr", ":1337", "address to listen on")
	fsMapVar(fs, &cfg.Credentials, "creds", nil, "basic auth credentials for the web page (semicolon separated) Example: user1:pass1;user2:pass2")

	fs.StringVar(&cfg.AuthSecret, "auth-secret", "", "jwt secret of the auth provider")
	fs.StringVar(&cfg.AuthIssuer, "auth-issuer", "", "expected jwt issuer (optional)")
	fsListVar(fs, &cfg.Admins, "admins", "admin emails (comma separated)")
	fs.IntVar(&cfg.FreeLimit, "free-limit", quota.DefaultFreeLimit, "prompts per day on the free plan")

	fs.StringVar(&cfg.PaymentLink, "payment-link", "", "hosted payment link (empty disables checkout)")
	fs.StringVar(&cfg.CheckoutSecret, "checkout-secret", "", "secret to sign checkout states")
	fs.DurationVar(&cfg.CheckoutTTL, "checkout-ttl", time.Hour, "checkout state lifetime")
	fs.StringVar(&cfg.StripeKey, "stripe-key", "", "stripe secret key to verify checkout sessions")

	fs.StringVar(&cfg.SentryDSN, "sentry-dsn", "", "sentry dsn (optional)")
	fs.StringVar(&cfg.Environment, "environment", "development", "environment name for error reports")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicprompt %s [flags]", cmd),
		Options:    ffOptions(),
		ShortHelp:  "serve the api and the web page",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return web.Serve(ctx, cfg)
		},
	}
}

func newNotifyCommand() *ffcli.Command {
	cmd := "notify"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &notify.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	dbFlags(fs, &cfg.DBType, &cfg.DBConn)
	fs.StringVar(&cfg.Proxy, "proxy", "", "proxy to use")
	fs.StringVar(&cfg.Sender, "sender", "log", "sender type (log, telegram)")
	fs.StringVar(&cfg.SenderConn, "sender-conn", "", "token@chat for telegram")
	fs.DurationVar(&cfg.Interval, "interval", 30*time.Second, "polling interval")
	fs.IntVar(&cfg.MaxAttempts, "max-attempts", 3, "delivery attempts before giving up")
	fs.BoolVar(&cfg.Once, "once", false, "send the due notifications and exit")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicprompt %s [flags]", cmd),
		Options:    ffOptions(),
		ShortHelp:  "deliver scheduled notifications",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return notify.Run(ctx, cfg)
		},
	}
}

func newScheduleCommand() *ffcli.Command {
	cmd := "schedule"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &notify.ScheduleConfig{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	dbFlags(fs, &cfg.DBType, &cfg.DBConn)
	fs.StringVar(&cfg.User, "user", "", "user id")
	fs.StringVar(&cfg.Title, "title", "", "notification title")
	fs.StringVar(&cfg.Body, "body", "", "notification body")
	fs.StringVar(&cfg.At, "at", "", "send time in RFC3339 (optional)")
	fs.DurationVar(&cfg.After, "after", 0, "send after this delay")
	fs.DurationVar(&cfg.Every, "every", 0, "repeat interval (0 to send once)")
	fs.StringVar(&cfg.Cancel, "cancel", "", "cancel the notification with this id")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicprompt %s [flags]", cmd),
		Options:    ffOptions(),
		ShortHelp:  "schedule or cancel a notification",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return notify.Schedule(ctx, cfg)
		},
	}
}

func newAdminCommand() *ffcli.Command {
	cmd := "admin"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &admin.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	dbFlags(fs, &cfg.DBType, &cfg.DBConn)
	fs.StringVar(&cfg.Output, "output", "", "output format (text, json, yaml)")
	fs.IntVar(&cfg.Page, "page", 1, "page when listing users")
	fs.IntVar(&cfg.Size, "size", 100, "page size when listing users")
	fs.StringVar(&cfg.User, "user", "", "user id to update (lists users when empty)")
	fs.StringVar(&cfg.Role, "role", "", "role to set (user, beta, admin) or to filter by")
	fs.BoolVar(&cfg.Disable, "disable", false, "disable the user")
	fs.BoolVar(&cfg.Enable, "enable", false, "enable the user")
	fs.BoolVar(&cfg.Premium, "premium", false, "mark the user as premium")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicprompt %s [flags]", cmd),
		Options:    ffOptions(),
		ShortHelp:  "list and manage users",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return admin.Run(ctx, cfg)
		},
	}
}

func newMaintenanceCommand() *ffcli.Command {
	cmd := "maintenance"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &maintenance.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	dbFlags(fs, &cfg.DBType, &cfg.DBConn)
	fs.StringVar(&cfg.Output, "output", "", "output format (text, json, yaml)")
	fs.BoolVar(&cfg.Enable, "enable", false, "turn maintenance mode on")
	fs.BoolVar(&cfg.Disable, "disable", false, "turn maintenance mode off")
	fs.StringVar(&cfg.Message, "message", "", "message shown to users")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicprompt %s [flags]", cmd),
		Options:    ffOptions(),
		ShortHelp:  "show or toggle maintenance mode",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return maintenance.Run(ctx, cfg)
		},
	}
}

func newExportCommand() *ffcli.Command {
	cmd := "export"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &export.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	dbFlags(fs, &cfg.DBType, &cfg.DBConn)
	fs.StringVar(&cfg.FSType, "fs-type", "", "fs type (local, s3)")
	fs.StringVar(&cfg.FSConn, "fs-conn", "", "path for local, key:secret@bucket.region for s3")
	fs.StringVar(&cfg.Format, "format", "csv", "export format (csv, json)")
	fs.StringVar(&cfg.User, "user", "", "export only the prompts of this user")
	fs.StringVar(&cfg.Output, "output", "", "output file")
	fs.BoolVar(&cfg.Upload, "upload", false, "upload the export to the file storage")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicprompt %s [flags]", cmd),
		Options:    ffOptions(),
		ShortHelp:  "export saved prompts",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return export.Run(ctx, cfg)
		},
	}
}

func newCheckoutCommand() *ffcli.Command {
	cmd := "checkout"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &checkout.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.PaymentLink, "payment-link", "", "hosted payment link")
	fs.StringVar(&cfg.Secret, "checkout-secret", "", "secret to sign checkout states")
	fs.DurationVar(&cfg.TTL, "checkout-ttl", time.Hour, "checkout state lifetime")
	fs.StringVar(&cfg.Output, "output", "", "output format (text, json, yaml)")
	fs.StringVar(&cfg.User, "user", "", "user id")
	fs.StringVar(&cfg.Email, "email", "", "email to prefill")
	fs.BoolVar(&cfg.Open, "open", false, "open the payment page in the browser")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicprompt %s [flags]", cmd),
		Options:    ffOptions(),
		ShortHelp:  "start a premium checkout for a user",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return checkout.Run(ctx, cfg)
		},
	}
}

func newTokenCommand() *ffcli.Command {
	cmd := "token"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &token.Config{}

	fs.StringVar(&cfg.Secret, "auth-secret", "", "jwt secret of the auth provider")
	fs.StringVar(&cfg.Issuer, "auth-issuer", "", "jwt issuer (optional)")
	fs.StringVar(&cfg.Subject, "subject", "", "user id")
	fs.StringVar(&cfg.Email, "email", "", "user email")
	fs.DurationVar(&cfg.TTL, "ttl", 24*time.Hour, "token lifetime")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("musicprompt %s [flags]", cmd),
		Options:    ffOptions(),
		ShortHelp:  "issue an access token for local development",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return token.Run(ctx, cfg)
		},
	}
}

type mapValue struct {
	v *map[string]string
}

func (m *mapValue) String() string {
	if m.v == nil {
		return ""
	}
	return fmt.Sprintf("%v", map[string]string(*m.v))
}

func (m *mapValue) Set(value string) error {
	if m.v == nil {
		return errors.New("nil map reference")
	}
	pairs := strings.Split(value, ";")
	for _, pair := range pairs {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid map entry: %s", pair)
		}
		(*m.v)[parts[0]] = parts[1]
	}
	return nil
}

func fsMapVar(fs *flag.FlagSet, p *map[string]string, name string, value map[string]string, usage string) {
	if value == nil {
		value = make(map[string]string)
	}
	*p = value
	fs.Var(&mapValue{p}, name, usage)
}

// listValue accumulates comma separated values. Repeating the flag appends.
type listValue struct {
	v *[]string
}

func (l *listValue) String() string {
	if l.v == nil {
		return ""
	}
	return strings.Join(*l.v, ",")
}

func (l *listValue) Set(value string) error {
	if l.v == nil {
		return errors.New("nil list reference")
	}
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*l.v = append(*l.v, v)
		}
	}
	return nil
}

func fsListVar(fs *flag.FlagSet, p *[]string, name string, usage string) {
	fs.Var(&listValue{p}, name, usage)
}
