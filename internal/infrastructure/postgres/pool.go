package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"

	"github.com/jhoicas/invorya-insights/pkg/config"
)

// QueryObserver recibe la duración y el error de cada consulta (lo implementa observability.Metrics).
type QueryObserver interface {
	ObserveQuery(statement string, d time.Duration, err error)
}

// PoolOption ajusta la configuración del pool antes de crearlo.
type PoolOption func(*pgxpool.Config)

// WithQueryObserver instala un tracer que reporta cada consulta al observer.
func WithQueryObserver(obs QueryObserver) PoolOption {
	return func(c *pgxpool.Config) {
		c.ConnConfig.Tracer = &queryTracer{obs: obs}
	}
}

// NewPool crea el pool de solo lectura para Insights.
// DATABASE_URL tiene prioridad sobre DB_HOST/DB_PORT/...; en ambos casos el host se
// reescribe a IPv4 cuando se puede (contenedores sin IPv6, Supabase con solo AAAA).
func NewPool(ctx context.Context, cfg config.DBConfig, opts ...PoolOption) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(ipv4DSN(cfg.ConnectionString()))
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	poolConfig.ConnConfig.DialFunc = dialIPv4

	poolConfig.MaxConns = 10
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 15 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// NUMERIC -> shopspring/decimal en todas las conexiones.
	poolConfig.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	for _, o := range opts {
		o(poolConfig)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// dialIPv4 marca tcp4 cuando el host tiene registro A; si no, dial normal.
func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	if ip, err := lookupIPv4(ctx, host); err == nil {
		return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
	}
	return d.DialContext(ctx, network, addr)
}

// ipv4DSN reemplaza el host del DSN por su IPv4; deja el DSN intacto si no se puede.
func ipv4DSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Hostname() == "" {
		return dsn
	}
	ip, err := lookupIPv4(context.Background(), u.Hostname())
	if err != nil {
		return dsn
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}

func lookupIPv4(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return "", fmt.Errorf("%s es IPv6", host)
		}
		return host, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("%s sin registro A", host)
	}
	return ips[0].String(), nil
}

type traceKey struct{}

type traceStart struct {
	sql   string
	start time.Time
}

// queryTracer implementa pgx.QueryTracer.
type queryTracer struct {
	obs QueryObserver
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: data.SQL, start: time.Now()})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	s, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	t.obs.ObserveQuery(statementKind(s.sql), time.Since(s.start), data.Err)
}

// statementKind primera palabra del SQL en minúsculas (select, with, insert, delete...).
func statementKind(sql string) string {
	f := strings.Fields(sql)
	if len(f) == 0 {
		return "unknown"
	}
	return strings.ToLower(f[0])
}
