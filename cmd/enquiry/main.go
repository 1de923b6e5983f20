// Command enquiry fills the enquiry form from flags and submits it once to a
// running enquiryd.
//
//	enquiry -first Jane -last Doe -email jane@example.com -phone 9876543210 -message "Hello"
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/infinityconsultancy/enquiry/pkg/config"
	"github.com/infinityconsultancy/enquiry/pkg/formclient"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// printer writes notifications the way a toast would show them.
type printer struct {
	out, errOut io.Writer
}

func (p printer) Success(msg string) { fmt.Fprintln(p.out, msg) }
func (p printer) Error(msg string)   { fmt.Fprintln(p.errOut, msg) }

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cfg formclient.Config
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	fs := flag.NewFlagSet("enquiry", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "relay base URL")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")
	fs.StringVar(&cfg.EmailPolicy, "email-policy", cfg.EmailPolicy, "email policy: any or gmail")
	fs.IntVar(&cfg.MessageMinLen, "message-min", cfg.MessageMinLen, "minimum message length")
	fs.IntVar(&cfg.MessageMaxLen, "message-max", cfg.MessageMaxLen, "maximum message length, 0 for none")

	fields := map[string]*string{
		"firstName":   fs.String("first", "", "first name"),
		"lastName":    fs.String("last", "", "last name"),
		"email":       fs.String("email", "", "email address"),
		"phone":       fs.String("phone", "", "10-digit phone number"),
		"userMessage": fs.String("message", "", "message"),
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctl, err := formclient.New(cfg, formclient.WithNotifier(printer{out: stdout, errOut: stderr}))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	for name, value := range fields {
		if err := ctl.Set(name, *value); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	}

	if out := ctl.Submit(ctx); out.Status != formclient.StatusSent {
		return 1
	}
	return 0
}
