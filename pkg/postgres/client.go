package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
)

// Client wraps a single pgx connection shared by every statement of a run
type Client struct {
	conn *pgx.Conn
}

// Config holds PostgreSQL connection configuration
type Config struct {
	Name     string
	User     string
	Password string
	Host     string
	Port     string
	SSLMode  string
}

// ConnString renders cfg as a postgres:// URL
func (cfg Config) ConnString() string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == "" {
		port = "5432"
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + cfg.Name,
	}
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	} else if cfg.User != "" {
		u.User = url.User(cfg.User)
	}
	if cfg.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
	}
	return u.String()
}

// NewClient opens and pings a connection
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	return Connect(ctx, cfg.ConnString())
}

// Connect opens and pings a connection from a raw connection string
func Connect(ctx context.Context, connString string) (*Client, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := conn.Ping(pingCtx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return &Client{conn: conn}, nil
}

// Conn returns the underlying connection for store use
func (c *Client) Conn() *pgx.Conn {
	return c.conn
}

// Close closes the connection
func (c *Client) Close(ctx context.Context) error {
	if c.conn != nil {
		return c.conn.Close(ctx)
	}
	return nil
}
