package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/corretor-landing-api/pkg/config"
)

// publicDNS resolver alternativo cuando el DNS del contenedor solo devuelve IPv6.
const publicDNS = "8.8.8.8:53"

// NewPool abre el pool de PostgreSQL y verifica la conexión con un ping.
// NUMERIC se decodifica como shopspring/decimal en todas las conexiones (precio de planes).
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolCfg, err := poolConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// poolConfig arma la configuración sin abrir conexiones.
func poolConfig(ctx context.Context, cfg config.DBConfig) (*pgxpool.Config, error) {
	dsn := cfg.ConnectionString()
	if cfg.ForceIPv4 {
		dsn = dsnWithIPv4(ctx, cfg)
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if cfg.ForceIPv4 {
		poolCfg.ConnConfig.DialFunc = dialIPv4
	}

	p := cfg.Pool
	poolCfg.MaxConns = p.MaxConns
	poolCfg.MinConns = p.MinConns
	poolCfg.MaxConnLifetime = p.MaxConnLifetime
	poolCfg.MaxConnIdleTime = p.MaxConnIdleTime
	poolCfg.HealthCheckPeriod = p.HealthCheckPeriod

	poolCfg.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolCfg, nil
}

// dsnWithIPv4 sustituye el host del DSN por su IPv4. Si no la hay, deja el DSN como está.
func dsnWithIPv4(ctx context.Context, cfg config.DBConfig) string {
	if cfg.DatabaseURL == "" {
		if ip, err := lookupIPv4(ctx, cfg.Host); err == nil {
			cfg.Host = ip
		}
		return cfg.DSN()
	}

	u, err := url.Parse(cfg.DatabaseURL)
	if err != nil {
		return cfg.DatabaseURL
	}
	ip, err := lookupIPv4(ctx, u.Hostname())
	if err != nil {
		return cfg.DatabaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}

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

// lookupIPv4 prueba el resolver del sistema y después el DNS público.
func lookupIPv4(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return "", fmt.Errorf("%s es IPv6", host)
		}
		return host, nil
	}
	public := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "udp", publicDNS)
		},
	}
	var lastErr error
	for _, r := range []*net.Resolver{net.DefaultResolver, public} {
		ips, err := r.LookupIP(ctx, "ip4", host)
		if err != nil {
			lastErr = err
			continue
		}
		for _, ip := range ips {
			if v4 := ip.To4(); v4 != nil {
				return v4.String(), nil
			}
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%s sin IPv4", host)
	}
	return "", lastErr
}
