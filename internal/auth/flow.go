// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"golang.org/x/oauth2"
)

// newToken runs the consent flow, listening for the provider redirect on the
// configured local port. Port 0 picks a free port.
func newToken(ctx context.Context, config *oauth2.Config, port int, status io.Writer) (*oauth2.Token, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		return nil, fmt.Errorf("listening for oauth callback: %w", err)
	}
	return Authorize(ctx, config, lis, status)
}

// Authorize walks the user through the OAuth consent flow. The consent URL
// is written to status for the user to open in a browser; lis accepts the
// redirect back from the provider. Authorize takes ownership of lis and
// closes it before returning.
func Authorize(ctx context.Context, config *oauth2.Config, lis net.Listener, status io.Writer) (*oauth2.Token, error) {
	state, err := randomState()
	if err != nil {
		return nil, err
	}

	conf := *config
	conf.RedirectURL = fmt.Sprintf("http://localhost:%d/", lis.Addr().(*net.TCPAddr).Port)

	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Fprintf(status, "Open the following link in your browser to authorize access:\n%s\n", authURL)

	type result struct {
		code string
		err  error
	}
	results := make(chan result, 1)
	report := func(res result) {
		select {
		case results <- res:
		default:
		}
	}

	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Browsers also request /favicon.ico against the callback host.
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		q := r.URL.Query()
		switch {
		case q.Get("error") != "":
			http.Error(w, "authorization declined", http.StatusBadRequest)
			report(result{err: fmt.Errorf("authorization declined: %s", q.Get("error"))})
		case q.Get("state") != state:
			http.Error(w, "state mismatch", http.StatusBadRequest)
			report(result{err: errors.New("oauth callback state mismatch")})
		case q.Get("code") == "":
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			report(result{err: errors.New("oauth callback missing authorization code")})
		default:
			fmt.Fprintln(w, "Authorization received. You can close this tab and return to the terminal.")
			report(result{code: q.Get("code")})
		}
	})}
	go srv.Serve(lis)
	defer srv.Shutdown(context.Background())

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		if res.err != nil {
			return nil, res.err
		}
		tok, err := conf.Exchange(ctx, res.code)
		if err != nil {
			return nil, fmt.Errorf("exchanging authorization code: %w", err)
		}
		return tok, nil
	}
}

// randomState returns an unguessable value binding the callback to this run.
func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating oauth state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
