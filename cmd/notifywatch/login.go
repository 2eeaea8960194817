package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nhle/notifywatch/internal/credential"
	"github.com/nhle/notifywatch/internal/logger"
	"github.com/nhle/notifywatch/internal/model"
	"github.com/nhle/notifywatch/internal/source"
	"github.com/nhle/notifywatch/internal/source/portal"
	"github.com/nhle/notifywatch/internal/ui/config"
)

const loginCheckTimeout = 10 * time.Second

// runLogin asks for the portal URL and session cookie, checks them with a
// single fetch, and stores them.
func runLogin(
	cfg *model.AppConfig,
	configPath string,
	sessions *credential.Sessions,
	log *logger.Logger,
) error {
	l := config.Login{BaseURL: cfg.Server.BaseURL}
	if err := config.NewLoginForm(&l, cfg.Server.CookieName).Run(); err != nil {
		return fmt.Errorf("login form: %w", err)
	}
	l.Normalize()

	ctx, cancel := context.WithTimeout(context.Background(), loginCheckTimeout)
	defer cancel()

	return storeLogin(ctx, os.Stdout, l, cfg, configPath, sessions, log)
}

// storeLogin verifies l against the portal and persists it. A cookie the
// portal rejects also clears whatever session was stored for that host.
func storeLogin(
	ctx context.Context,
	w io.Writer,
	l config.Login,
	cfg *model.AppConfig,
	configPath string,
	sessions *credential.Sessions,
	log *logger.Logger,
) error {
	client, err := portal.NewClient(l.BaseURL, cfg.Server.CookieName, l.Cookie)
	if err != nil {
		return err
	}

	_, err = portal.NewAdapter(client, cfg.Server.Endpoint).FetchSummary(ctx)
	switch {
	case source.IsAuthError(err):
		if ferr := sessions.Forget(l.BaseURL); ferr != nil {
			log.Warn("could not clear stored session", "error", ferr)
		}
		return fmt.Errorf("the portal rejected the session cookie: %w", err)
	case err != nil:
		log.Warn("could not verify session, storing it anyway", "error", err)
		fmt.Fprintf(w, "warning: could not reach %s (%v); session stored unverified\n", l.BaseURL, err)
	}

	if err := sessions.Save(l.BaseURL, l.Cookie); err != nil {
		return err
	}

	cfg.Server.BaseURL = l.BaseURL
	if err := model.SaveConfig(configPath, cfg); err != nil {
		return err
	}

	log.Info("session stored", "base_url", l.BaseURL)
	fmt.Fprintf(w, "Session for %s stored.\n", l.BaseURL)
	return nil
}
