// gotruectl is a small command-line driver for a GoTrue-compatible identity
// service, useful for poking at an instance during development. Each
// invocation is a fresh client; commands that need a session adopt one from a
// refresh token.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/harborauth/gotrue-go/pkg/gotrue"
	"github.com/harborauth/gotrue-go/pkg/slogx"
)

type config struct {
	URL       string        `env:"GOTRUE_URL" envDefault:"http://localhost:9998"`
	Timeout   time.Duration `env:"GOTRUE_TIMEOUT" envDefault:"30s"`
	LogLevel  string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string        `env:"LOG_FORMAT" envDefault:"text"`
}

func main() {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		log.Fatalf("failed to parse environment: %v", err)
	}

	logger := slogx.New(slogx.Config{
		Tool:   "gotruectl",
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	client := gotrue.NewClient(cfg.URL)
	if err := run(ctx, client, logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: gotruectl <command> [flags]

commands:
  signup    register an account        (--email|--phone, --password)
  signin    authenticate               (--email|--phone, --password)
  otp       send a one-time passcode   (--email|--phone [--create-user])
  verify    verify a passcode          (--type, --email, --token)
  recover   send a recovery email      (--email)
  refresh   adopt/refresh a session    (--refresh-token)
  signout   revoke a session           (--refresh-token)
  user      fetch the account snapshot (--refresh-token)

environment: GOTRUE_URL, GOTRUE_TIMEOUT, LOG_LEVEL, LOG_FORMAT`)
}

func run(ctx context.Context, client *gotrue.Client, logger *slog.Logger, command string, args []string) error {
	switch command {
	case "signup":
		id, password, err := credentialFlags(command, args)
		if err != nil {
			return err
		}
		res, err := client.SignUp(ctx, id, password)
		if err != nil {
			return err
		}
		if res.Session == nil {
			logger.Info("account created, confirmation required before a session is granted")
		}
		return printJSON(res)

	case "signin":
		id, password, err := credentialFlags(command, args)
		if err != nil {
			return err
		}
		res, err := client.SignIn(ctx, id, password)
		if err != nil {
			return err
		}
		return printJSON(res)

	case "otp":
		id, createUser, err := otpFlags(command, args)
		if err != nil {
			return err
		}
		return client.SendOTP(ctx, id, createUser)

	case "verify":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		typ := fs.String("type", "signup", "verification type (signup, sms, recovery, ...)")
		email := fs.String("email", "", "email address")
		token := fs.String("token", "", "one-time passcode")
		if err := fs.Parse(args); err != nil {
			return err
		}
		params := map[string]any{"type": *typ, "email": *email, "token": *token}
		return client.VerifyOTP(ctx, params)

	case "recover":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		email := fs.String("email", "", "email address")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return client.ResetPasswordForEmail(ctx, *email)

	case "refresh":
		session, err := adoptSession(ctx, client, command, args)
		if err != nil {
			return err
		}
		return printJSON(session)

	case "signout":
		if _, err := adoptSession(ctx, client, command, args); err != nil {
			return err
		}
		return client.SignOut(ctx)

	case "user":
		if _, err := adoptSession(ctx, client, command, args); err != nil {
			return err
		}
		user, err := client.FetchUser(ctx)
		if err != nil {
			return err
		}
		return printJSON(user)

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func credentialFlags(command string, args []string) (gotrue.EmailOrPhone, string, error) {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return gotrue.EmailOrPhone{}, "", err
	}

	id, err := identifier(*email, *phone)
	if err != nil {
		return gotrue.EmailOrPhone{}, "", err
	}
	if *password == "" {
		return gotrue.EmailOrPhone{}, "", errors.New("--password is required")
	}
	return id, *password, nil
}

// otpFlags parses the otp command's flags. create-user is tri-state: it is
// forwarded only when given on the command line, so an omitted flag leaves
// the service's default for unknown identifiers in place.
func otpFlags(command string, args []string) (gotrue.EmailOrPhone, *bool, error) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	createUser := fs.Bool("create-user", false, "create an account for unknown identifiers")
	if err := fs.Parse(args); err != nil {
		return gotrue.EmailOrPhone{}, nil, err
	}

	id, err := identifier(*email, *phone)
	if err != nil {
		return gotrue.EmailOrPhone{}, nil, err
	}

	var createUserArg *bool
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "create-user" {
			createUserArg = createUser
		}
	})

	return id, createUserArg, nil
}

func identifier(email, phone string) (gotrue.EmailOrPhone, error) {
	switch {
	case email != "" && phone != "":
		return gotrue.EmailOrPhone{}, errors.New("--email and --phone are mutually exclusive")
	case email != "":
		return gotrue.Email(email), nil
	case phone != "":
		return gotrue.Phone(phone), nil
	default:
		return gotrue.EmailOrPhone{}, errors.New("one of --email or --phone is required")
	}
}

func adoptSession(ctx context.Context, client *gotrue.Client, command string, args []string) (*gotrue.Session, error) {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	refreshToken := fs.String("refresh-token", "", "refresh token of the session")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return client.SetSession(ctx, *refreshToken)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
