/*
Package worklane is a client SDK for the Worklane Control REST backend.

# Overview

The backend issues a short-lived access token and a longer-lived refresh
token. The SDK keeps both in a credstore.Store and takes care of the
session protocol around them:

  - SignIn exchanges a username and password for the pair and stores it.
  - Do attaches the access token as a bearer credential. On a 401 it refreshes
    once and retries once.
  - Refresh trades the refresh token for a new access token. Any failure
    clears the store, which is how the rest of the application learns that
    the user is signed out.
  - SessionGate runs the bootstrap check exactly once per application load and
    caches the {loading, authenticated} state for route guards.

# Usage

	store := credstore.NewFileStore(path)
	client := worklane.New("http://localhost:8000", store)

	if err := client.SignIn(ctx, "alice", "secret"); err != nil {
		if errors.Is(err, worklane.ErrInvalidCredentials) {
			// wrong username or password
		}
		return err
	}

	gate := worklane.NewSessionGate(client)
	if !gate.Check(ctx).Authenticated() {
		// send the user to sign in
	}

	projects, err := client.ListProjects(ctx)

# Errors

Non-2xx responses from resource endpoints are returned as *APIError:

	var apiErr *worklane.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		// ...
	}

Refresh returns ErrNoRefreshToken when there is nothing to refresh with and
an error wrapping ErrRefreshFailed for every other failure.

# Thread Safety

A Client is safe for concurrent use. Concurrent refreshes are coalesced into a
single exchange with the backend and every waiter sees the same outcome.
*/
package worklane
