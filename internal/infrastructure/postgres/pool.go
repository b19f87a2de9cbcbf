package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/ecoplaza/ecoplaza-api/pkg/config"
)

// Puerto del pooler de Supabase en modo transacción (pgbouncer).
const supabasePoolerPort = "6543"

const defaultMaxConns = 25

// NewPool abre el pool contra Supabase/PostgreSQL y espera a que responda.
// El primer ping se reintenta con backoff: en despliegues el contenedor suele
// arrancar antes que la red.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	err = backoff.RetryNotify(func() error { return pool.Ping(ctx) }, b, func(err error, espera time.Duration) {
		log.Warn().Err(err).Dur("espera", espera).Msg("postgres: ping fallido, reintentando")
	})
	if err != nil {
		pool.Close()
		log.Error().Str("dsn", redactDSN(cfg.ConnectionString())).Msg("postgres: sin respuesta")
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	log.Info().
		Int32("max_conns", pc.MaxConns).
		Str("host", pc.ConnConfig.Host).
		Bool("pooler", usaPooler(pc)).
		Msg("postgres: pool listo")
	return pool, nil
}

// poolConfig arma la configuración sin abrir conexiones.
func poolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	pc.MaxConns = int32(cfg.MaxConns)
	if pc.MaxConns <= 0 {
		pc.MaxConns = defaultMaxConns
	}
	pc.MinConns = 2
	pc.MaxConnLifetime = time.Hour
	pc.MaxConnIdleTime = 30 * time.Minute
	pc.HealthCheckPeriod = time.Minute

	// pgbouncer en modo transacción no soporta prepared statements con nombre
	if usaPooler(pc) {
		pc.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec
	}

	// Docker suele no tener IPv6 y Supabase puede resolver solo AAAA.
	pc.ConnConfig.DialFunc = dialIPv4

	pc.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return pc, nil
}

func usaPooler(pc *pgxpool.Config) bool {
	if fmt.Sprint(pc.ConnConfig.Port) == supabasePoolerPort {
		return true
	}
	return strings.Contains(pc.ConnConfig.Host, "pooler.supabase.com")
}

// dialIPv4 conecta por tcp4 cuando el host tiene A; si no, dial normal.
func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ip, err := lookupIPv4(ctx, host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
}

// lookupIPv4 prueba el resolver del sistema y luego un DNS público, porque
// dentro de algunos contenedores el resolver solo devuelve IPv6.
func lookupIPv4(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s es IPv6", host)
	}
	publico := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "udp", "8.8.8.8:53")
		},
	}
	var ultimo error
	for _, r := range []*net.Resolver{net.DefaultResolver, publico} {
		ips, err := r.LookupIP(ctx, "ip4", host)
		if err != nil {
			ultimo = err
			continue
		}
		for _, ip := range ips {
			if ip.To4() != nil {
				return ip.String(), nil
			}
		}
	}
	if ultimo == nil {
		ultimo = fmt.Errorf("%s sin registro A", host)
	}
	return "", ultimo
}

// redactDSN oculta la contraseña para logs.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
