package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/quotekeeper/internal/client/autosave"
	"github.com/dmitrijs2005/quotekeeper/internal/client/models"
)

var errNoProfile = errors.New("no profile is being edited, run edit-profile <id> first")

// editProfile loads a profile and starts an auto-save engine for its
// branding. A profile already being edited is closed first.
func (a *App) editProfile(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("edit-profile <id>")
	}
	rec, err := a.service.LoadOne(ctx, models.KindProfile, args[0])
	if err != nil {
		return err
	}
	cfg, err := models.DecodePayload[models.Configuration](rec.Payload)
	if err != nil {
		return fmt.Errorf("decode configuration: %w", err)
	}

	a.closeProfile()

	id := rec.ID
	engine := autosave.New(cfg, func(ctx context.Context, v models.Configuration, auto bool) error {
		if _, err := a.service.SaveProfile(ctx, id, v); err != nil {
			return err
		}
		if auto {
			a.logger.Info(ctx, "profile auto-saved", "profile_id", id)
		}
		return nil
	}, autosave.Options[models.Configuration]{Delay: a.config.AutosaveDelay, Logger: a.logger})

	a.mu.Lock()
	a.profileID = id
	a.profile = engine
	a.mu.Unlock()

	fmt.Fprintf(a.out, "editing profile %s (%s)\n", id, rec.Name)
	a.printConfiguration(cfg)
	return nil
}

func (a *App) closeProfile() {
	a.mu.Lock()
	engine := a.profile
	a.profile = nil
	a.profileID = ""
	a.mu.Unlock()
	if engine != nil {
		engine.Close()
	}
}

func (a *App) editing() (*autosave.Engine[models.Configuration], error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.profile == nil {
		return nil, errNoProfile
	}
	return a.profile, nil
}

// setProfileField applies one change; the engine decides whether and when
// to write it.
func (a *App) setProfileField(args []string) error {
	if len(args) < 1 {
		return usage("set <field> [value]")
	}
	engine, err := a.editing()
	if err != nil {
		return err
	}
	value := ""
	if len(args) > 1 {
		value = strings.Join(args[1:], " ")
	}
	cfg := engine.Value()
	if err := setField(&cfg, args[0], value); err != nil {
		return err
	}
	engine.Observe(cfg)
	return nil
}

func (a *App) saveProfile(ctx context.Context) error {
	engine, err := a.editing()
	if err != nil {
		return err
	}
	if err := engine.ManualSave(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "profile saved")
	return nil
}

func (a *App) profileStatus() error {
	engine, err := a.editing()
	if err != nil {
		return err
	}
	st := engine.Status()
	fmt.Fprintf(a.out, "state:     %s\n", st.State)
	fmt.Fprintf(a.out, "unsaved:   %t\n", st.HasUnsavedChanges)
	if !st.LastSaved.IsZero() {
		fmt.Fprintf(a.out, "saved at:  %s\n", st.LastSaved.Local().Format(time.DateTime))
	}
	if st.Degraded {
		fmt.Fprintf(a.out, "last auto-save failed: %v\n", st.LastError)
	}
	a.printConfiguration(engine.Value())
	return nil
}

func (a *App) printConfiguration(cfg models.Configuration) {
	for _, f := range configFields {
		fmt.Fprintf(a.out, "  %-16s %s\n", f, *fieldPtr(&cfg, f))
	}
}

var configFields = []string{
	"company_name", "primary_color", "secondary_color",
	"contact_email", "contact_phone", "website",
}

func fieldPtr(cfg *models.Configuration, field string) *string {
	switch field {
	case "company_name":
		return &cfg.CompanyName
	case "primary_color":
		return &cfg.PrimaryColor
	case "secondary_color":
		return &cfg.SecondaryColor
	case "contact_email":
		return &cfg.ContactEmail
	case "contact_phone":
		return &cfg.ContactPhone
	case "website":
		return &cfg.Website
	}
	return nil
}

func setField(cfg *models.Configuration, field, value string) error {
	p := fieldPtr(cfg, field)
	if p == nil {
		return fmt.Errorf("unknown field %q", field)
	}
	*p = value
	return nil
}
