package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bumiauto/web-api/pkg/database"
)

// Scope selects the credential the store is accessed with.
type Scope int

const (
	// Anonymous connects with the restricted role used for public reads.
	Anonymous Scope = iota
	// Elevated connects with the service role that bypasses row-level
	// policy. Server-side only, never exposed to the browser.
	Elevated
)

func (s Scope) String() string {
	if s == Elevated {
		return "elevated"
	}
	return "anonymous"
}

// Provider owns one connection pool per credential scope and hands out
// scoped Clients. Clients are cheap and are constructed at the call site
// that needs them, so the scope of every access is explicit; there is no
// package-level default.
type Provider struct {
	anon     *pgxpool.Pool
	elevated *pgxpool.Pool
}

func NewProvider(ctx context.Context, anonURL, serviceURL string) (*Provider, error) {
	elevated, err := database.Connect(ctx, serviceURL)
	if err != nil {
		return nil, err
	}

	anon := elevated
	if anonURL != "" && anonURL != serviceURL {
		anon, err = database.Connect(ctx, anonURL)
		if err != nil {
			elevated.Close()
			return nil, err
		}
	}

	return &Provider{anon: anon, elevated: elevated}, nil
}

func (p *Provider) Close() {
	if p.anon != p.elevated {
		p.anon.Close()
	}
	p.elevated.Close()
}

func (p *Provider) Client(scope Scope) *Client {
	if scope == Elevated {
		return &Client{pool: p.elevated, scope: scope}
	}
	return &Client{pool: p.anon, scope: scope}
}

func (p *Provider) Ping(ctx context.Context) error {
	return p.elevated.Ping(ctx)
}

// ElevatedPool exposes the service-role pool for infrastructure that
// needs raw statements outside the builder, like the rate limiter.
func (p *Provider) ElevatedPool() *pgxpool.Pool {
	return p.elevated
}

// Client is a thin, scope-bound wrapper over a connection pool. Table
// yields the query builder; the raw passthroughs exist for the atomic
// single-statement operations the builder does not cover.
type Client struct {
	pool  *pgxpool.Pool
	scope Scope
}

func (c *Client) Scope() Scope {
	return c.scope
}

func (c *Client) Table(name string) *Query {
	return &Query{client: c, table: name}
}

func (c *Client) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return c.pool.Exec(ctx, sql, args...)
}

func (c *Client) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return c.pool.Query(ctx, sql, args...)
}

func (c *Client) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return c.pool.QueryRow(ctx, sql, args...)
}
