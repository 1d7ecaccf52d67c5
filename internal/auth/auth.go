// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package auth obtains an authorized HTTP client for the Docs API.
//
// Credentials come from an OAuth client secrets file. The first run walks
// the user through a local-callback consent flow and caches the resulting
// token on disk with mode 0600; later runs reuse the cached token and
// refresh it through the refresh token when it expires.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"

	"github.com/pdiddy/docpress/pkg/types"
)

// Client returns an HTTP client that attaches Docs API credentials to every
// request. Status messages for the interactive consent flow go to status.
func Client(ctx context.Context, cfg types.AuthConfig, status io.Writer) (*http.Client, error) {
	config, err := configFromFile(cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}

	tok, err := tokenFromFile(cfg.TokenFile)
	if err != nil || (!tok.Valid() && tok.RefreshToken == "") {
		tok, err = newToken(ctx, config, cfg.CallbackPort, status)
		if err != nil {
			return nil, fmt.Errorf("authorizing: %w", err)
		}
		if err := saveToken(cfg.TokenFile, tok); err != nil {
			return nil, fmt.Errorf("caching token: %w", err)
		}
		fmt.Fprintf(status, "Token cached in %s\n", cfg.TokenFile)
	}

	return config.Client(ctx, tok), nil
}

func configFromFile(path string) (*oauth2.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(b, docs.DocumentsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials file %s: %w", path, err)
	}
	return config, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tok oauth2.Token
	if err := json.NewDecoder(f).Decode(&tok); err != nil {
		return nil, fmt.Errorf("decoding token file %s: %w", path, err)
	}
	return &tok, nil
}

// saveToken writes the token with owner-only permissions.
func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
