package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/quotekeeper/internal/client/models"
)

// errUsage marks a malformed command line.
var errUsage = errors.New("usage")

func usage(format string) error {
	return fmt.Errorf("%w: %s", errUsage, format)
}

// Exec runs one command.
func (a *App) Exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list", "l":
		return a.list(ctx, args)
	case "show":
		return a.show(ctx, args)
	case "create-quote":
		return a.create(ctx, models.KindQuote, args, "create-quote <title>")
	case "create-template":
		return a.create(ctx, models.KindTemplate, args, "create-template <name>")
	case "create-profile":
		return a.createProfile(ctx, args)
	case "rename-template":
		return a.renameTemplate(ctx, args)
	case "attach-pdf":
		return a.attachPDF(ctx, args)
	case "delete":
		return a.delete(ctx, args)
	case "edit-profile":
		return a.editProfile(ctx, args)
	case "set":
		return a.setProfileField(args)
	case "save":
		return a.saveProfile(ctx)
	case "status":
		return a.profileStatus()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	force := fs.Bool("force", false, "bypass the cache")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return usage("list [-force] <kind>")
	}
	kind, err := models.ParseKind(fs.Arg(0))
	if err != nil {
		return err
	}

	recs, err := a.service.LoadList(ctx, kind, *force)
	// A failed refresh still returns whatever the cache held.
	printRecords(a.out, recs)
	return err
}

func printRecords(w io.Writer, recs []models.Record) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Name, r.UpdatedAt.Local().Format(time.DateTime))
	}
	_ = tw.Flush()
}

func (a *App) show(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("show <kind> <id>")
	}
	kind, err := models.ParseKind(args[0])
	if err != nil {
		return err
	}
	rec, err := a.service.LoadOne(ctx, kind, args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "ID:      %s\n", rec.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", rec.Name)
	fmt.Fprintf(a.out, "Created: %s\n", rec.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(a.out, "Updated: %s\n", rec.UpdatedAt.Local().Format(time.DateTime))
	if rec.PDFURL != "" {
		fmt.Fprintf(a.out, "PDF:     %s\n", rec.PDFURL)
	}
	if len(rec.Payload) > 0 {
		b, err := json.MarshalIndent(rec.Payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s\n", b)
	}
	return nil
}

func (a *App) create(ctx context.Context, kind models.Kind, args []string, form string) error {
	if len(args) == 0 {
		return usage(form)
	}
	rec, err := a.service.Create(ctx, kind, models.Record{Name: strings.Join(args, " ")})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created %s %s\n", kind, rec.ID)
	return nil
}

func (a *App) createProfile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("create-profile <name>")
	}
	name := strings.Join(args, " ")
	cfg := models.DefaultConfiguration()
	cfg.CompanyName = name
	payload, err := models.EncodePayload(cfg)
	if err != nil {
		return err
	}
	rec, err := a.service.Create(ctx, models.KindProfile, models.Record{Name: name, Payload: payload})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created profile %s\n", rec.ID)
	return nil
}

func (a *App) renameTemplate(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("rename-template <id> <name>")
	}
	rec, err := a.service.RenameTemplate(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "renamed template %s to %q\n", rec.ID, rec.Name)
	return nil
}

func (a *App) attachPDF(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("attach-pdf <quote-id> <url>")
	}
	url := args[1]
	if _, err := a.service.Update(ctx, models.KindQuote, args[0], models.Patch{PDFURL: &url}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "attached document to quote %s\n", args[0])
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("delete <kind> <id>")
	}
	kind, err := models.ParseKind(args[0])
	if err != nil {
		return err
	}

	if err := a.service.Delete(ctx, kind, args[1]); err != nil {
		return err
	}

	// The editor stays open with its pending changes when the delete fails.
	a.mu.Lock()
	editing := kind == models.KindProfile && a.profileID == args[1]
	a.mu.Unlock()
	if editing {
		a.closeProfile()
	}
	fmt.Fprintf(a.out, "deleted %s %s\n", kind, args[1])
	return nil
}
