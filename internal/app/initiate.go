package app

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/nsqio/go-nsq"
	libOTP "github.com/pquerna/otp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/segmentio/kafka-go"
	"github.com/shandysiswandi/gomotor/internal/pkg/clock"
	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/goroutine"
	"github.com/shandysiswandi/gomotor/internal/pkg/hash"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/shandysiswandi/gomotor/internal/pkg/mail"
	"github.com/shandysiswandi/gomotor/internal/pkg/messaging"
	"github.com/shandysiswandi/gomotor/internal/pkg/mfa"
	"github.com/shandysiswandi/gomotor/internal/pkg/otp"
	"github.com/shandysiswandi/gomotor/internal/pkg/pgxcasbin"
	"github.com/shandysiswandi/gomotor/internal/pkg/router"
	"github.com/shandysiswandi/gomotor/internal/pkg/session"
	"github.com/shandysiswandi/gomotor/internal/pkg/storage"
	"github.com/shandysiswandi/gomotor/internal/pkg/uid"
	"github.com/shandysiswandi/gomotor/internal/pkg/validator"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// ConfigPath resolves the config file: CONFIG_PATH, else the container
// path, or the repo-local file when LOCAL=true.
func ConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	if os.Getenv("LOCAL") == "true" {
		return "./config/config.yaml"
	}
	return "/config/config.yaml"
}

func (a *App) initConfig() {
	cfg, err := config.NewViper(ConfigPath())
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
	a.onClose("config", func(context.Context) error { return cfg.Close() })
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
	a.onClose("instrument", ins.Shutdown)
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))
	a.argon2id = hash.NewArgon2id(a.config.GetString("hash.argon2id.pepper"))
	a.bcrypt = hash.NewBcrypt(a.config.GetInt("hash.bcrypt.cost"), a.config.GetString("hash.bcrypt.pepper"))

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator

	snow, err := uid.NewSnowflake()
	if err != nil {
		slog.Error("failed to init uid number snowflake", "error", err)
		os.Exit(1)
	}
	a.uid = snow

	a.totp = otp.NewTOTP(
		a.config.GetString("mfa.totp.issuer"),
		a.config.GetUint("mfa.totp.period"),
		a.config.GetUint("mfa.totp.skew"),
		libOTP.DigitsSix,
	)

	ring, err := a.mfaKeyRing()
	if err != nil {
		slog.Error("failed to read mfa keys", "error", err)
		os.Exit(1)
	}
	enc, err := mfa.NewAESGCM(ring)
	if err != nil {
		slog.Error("failed to init mfa encryptor", "error", err)
		os.Exit(1)
	}
	a.mfaEncryptor = enc
	a.mfaRecoveryCode = mfa.NewRecoveryCode()

	a.cookie = session.Cookie{
		Name:     a.config.GetString("auth.cookie.name"),
		Domain:   a.config.GetString("auth.cookie.domain"),
		Path:     a.config.GetString("auth.cookie.path"),
		Secure:   a.config.GetBool("auth.cookie.secure"),
		SameSite: session.ParseSameSite(a.config.GetString("auth.cookie.same_site")),
	}
	if a.cookie.Name == "" {
		a.cookie.Name = "session"
	}
}

// mfaKeyRing reads mfa.keys as "version:base64key" pairs. mfa.current_key
// picks the version new secrets are sealed with.
func (a *App) mfaKeyRing() (mfa.KeyRing, error) {
	ring := mfa.KeyRing{
		Current: byte(a.config.GetUint("mfa.current_key")),
		Keys:    map[byte][]byte{},
	}

	for version, encoded := range a.config.GetMap("mfa.keys") {
		v, err := strconv.ParseUint(version, 10, 8)
		if err != nil {
			return ring, err
		}
		key, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return ring, err
		}
		ring.Keys[byte(v)] = key
	}

	return ring, nil
}

func (a *App) initJWT() {
	signer, err := jwt.NewHS512(jwt.Config{
		Secret:     []byte(a.config.GetString("auth.jwt.secret")),
		Issuer:     a.config.GetString("auth.jwt.issuer"),
		Audiences:  a.config.GetArray("auth.jwt.audiences"),
		DefaultTTL: a.config.GetMinute("auth.jwt.ttl_minutes"),
		Clock:      a.clock,
		UUID:       a.uuid,
	})
	if err != nil {
		slog.Error("failed to init jwt token", "error", err)
		os.Exit(1)
	}
	a.jwt = signer
}

func (a *App) initDatabase() {
	cfg, err := pgxpool.ParseConfig(a.config.GetString("database.url"))
	if err != nil {
		slog.Error("failed to parse database url", "error", err)
		os.Exit(1)
	}

	cfg.MaxConns = a.config.GetInt32("database.pool.max_conns")
	cfg.MinConns = a.config.GetInt32("database.pool.min_conns")
	cfg.MaxConnLifetime = a.config.GetSecond("database.pool.max_conn_lifetime_seconds")
	cfg.MaxConnIdleTime = a.config.GetSecond("database.pool.max_conn_idle_seconds")
	cfg.HealthCheckPeriod = a.config.GetSecond("database.pool.health_check_period_seconds")

	pool, err := pgxpool.NewWithConfig(a.ctx, cfg)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	a.mustPing("database", pool.Ping)

	a.dbConn = pool
	a.onClose("database", func(context.Context) error {
		pool.Close()
		return nil
	})
}

// mustPing exits when a backing service is unreachable at boot.
func (a *App) mustPing(name string, ping func(context.Context) error) {
	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	if err := ping(ctx); err != nil {
		slog.Error("backing service unreachable", "service", name, "error", err)
		os.Exit(1)
	}
}

// onClose registers a release step. Stop runs them last-in first-out.
func (a *App) onClose(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

func (a *App) initCache() {
	opt, err := redis.ParseURL(a.config.GetString("redis.url"))
	if err != nil {
		slog.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(opt)
	a.mustPing("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })

	a.cacheConn = rdb
	a.denylist = session.NewDenylist(rdb, a.clock)
	a.onClose("redis", func(context.Context) error { return rdb.Close() })
}

// initMail picks the SMTP relay, or the log driver for local runs where
// messages are only written to the log.
func (a *App) initMail() {
	from := a.config.GetString("mail.from")
	if strings.EqualFold(strings.TrimSpace(a.config.GetString("mail.driver")), "log") {
		a.mail = mail.NewLog(from)
		a.onClose("mail", func(context.Context) error { return a.mail.Close() })
		return
	}

	smtp, err := mail.NewSMTP(mail.SMTPConfig{
		Host:     a.config.GetString("mail.host"),
		Port:     a.config.GetInt("mail.port"),
		Username: a.config.GetString("mail.username"),
		Password: a.config.GetString("mail.password"),
		From:     from,
	})
	if err != nil {
		slog.Error("failed to init mail", "error", err)
		os.Exit(1)
	}

	a.mail = smtp
	a.onClose("mail", func(context.Context) error { return smtp.Close() })
}

// googleCredentials returns the service account key under prefix, read
// from credentials_json or else from the credentials_file path. Empty means
// Application Default Credentials.
func (a *App) googleCredentials(prefix string) []byte {
	if v := a.config.GetBinary(prefix + ".credentials_json"); len(v) > 0 {
		return v
	}

	path := a.str(prefix + ".credentials_file")
	if path == "" {
		return nil
	}
	// #nosec G304 -- path is from trusted config file.
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("failed to read google credentials file", "prefix", prefix, "error", err)
		os.Exit(1)
	}
	return data
}

// pubsubOptions builds the Pub/Sub client options from messaging.pubsub.
func (a *App) pubsubOptions() []option.ClientOption {
	const prefix = "messaging.pubsub"

	var opts []option.ClientOption
	if a.config.GetBool(prefix + ".without_auth") {
		opts = append(opts, option.WithoutAuthentication())
	} else if data := a.googleCredentials(prefix); len(data) > 0 {
		creds, err := google.CredentialsFromJSON(a.ctx, data, "https://www.googleapis.com/auth/pubsub")
		if err != nil {
			slog.Error("failed to parse google credentials", "prefix", prefix, "error", err)
			os.Exit(1)
		}
		opts = append(opts, option.WithCredentials(creds))
	}
	if v := a.str(prefix + ".endpoint"); v != "" {
		opts = append(opts, option.WithEndpoint(v))
	}
	if v := a.str(prefix + ".user_agent"); v != "" {
		opts = append(opts, option.WithUserAgent(v))
	}
	return opts
}

// str reads a config string without surrounding blanks.
func (a *App) str(key string) string {
	return strings.TrimSpace(a.config.GetString(key))
}

func (a *App) initStorage() {
	driver := a.str("storage.driver")

	opts := storage.FactoryOptions{
		S3: storage.S3Options{
			Region:       a.str("storage.s3.region"),
			Endpoint:     a.str("storage.s3.endpoint"),
			AccessKey:    a.str("storage.s3.access_key"),
			SecretKey:    a.str("storage.s3.secret_key"),
			SessionToken: a.str("storage.s3.session_token"),
			UsePathStyle: a.config.GetBool("storage.s3.use_path_style"),
		},
		MinIO: storage.MinIOOptions{
			Region:       a.str("storage.minio.region"),
			Endpoint:     a.str("storage.minio.endpoint"),
			AccessKey:    a.str("storage.minio.access_key"),
			SecretKey:    a.str("storage.minio.secret_key"),
			SessionToken: a.str("storage.minio.session_token"),
			UseSSL:       a.config.GetBool("storage.minio.use_ssl"),
		},
		GCS: storage.GCSOptions{
			Endpoint:    a.str("storage.gcs.endpoint"),
			WithoutAuth: a.config.GetBool("storage.gcs.without_auth"),
		},
	}
	if driver == storage.DriverGCS {
		opts.GCS.CredentialsJSON = a.googleCredentials("storage.gcs")
	}

	stg, err := storage.NewFromDriver(a.ctx, driver, opts)
	if err != nil {
		slog.Error("failed to init storage", "error", err, "driver", driver)
		os.Exit(1)
	}

	a.storage = stg
	a.onClose("storage", func(context.Context) error { return stg.Close() })
}

// nsqConfig reads one producer or consumer block. Zero values keep the
// go-nsq defaults.
func (a *App) nsqConfig(prefix string) *nsq.Config {
	cfg := nsq.NewConfig()
	if v := a.config.GetInt(prefix + ".max_in_flight"); v > 0 {
		cfg.MaxInFlight = v
	}
	if v := a.config.GetUint16(prefix + ".max_attempts"); v > 0 {
		cfg.MaxAttempts = v
	}

	durations := map[string]*time.Duration{
		"dial_timeout_seconds":          &cfg.DialTimeout,
		"read_timeout_seconds":          &cfg.ReadTimeout,
		"write_timeout_seconds":         &cfg.WriteTimeout,
		"lookupd_poll_interval_seconds": &cfg.LookupdPollInterval,
		"default_requeue_delay_seconds": &cfg.DefaultRequeueDelay,
		"max_requeue_delay_seconds":     &cfg.MaxRequeueDelay,
	}
	for key, dst := range durations {
		if v := a.config.GetSecond(prefix + "." + key); v > 0 {
			*dst = v
		}
	}

	return cfg
}

func (a *App) natsOptions() []nats.Option {
	opts := []nats.Option{
		nats.Name(a.str("messaging.nats.name")),
		nats.MaxReconnects(a.config.GetInt("messaging.nats.max_reconnects")),
		nats.Timeout(a.config.GetSecond("messaging.nats.timeout_seconds")),
		nats.ReconnectWait(a.config.GetSecond("messaging.nats.reconnect_wait_seconds")),
		nats.PingInterval(a.config.GetSecond("messaging.nats.ping_interval_seconds")),
		nats.MaxPingsOutstanding(a.config.GetInt("messaging.nats.max_pings_outstanding")),
		nats.RetryOnFailedConnect(a.config.GetBool("messaging.nats.retry_on_failed_connect")),
	}
	if a.config.GetBool("messaging.nats.no_echo") {
		opts = append(opts, nats.NoEcho())
	}
	return opts
}

func (a *App) initMessaging() {
	driver := a.str("messaging.driver")

	opts := messaging.FactoryOptions{
		NATS: messaging.NATSConfig{
			URL:     a.str("messaging.nats.url"),
			Options: a.natsOptions(),
		},
		NSQ: messaging.NSQConfig{
			ProducerAddr:   a.str("messaging.nsq.producer_addr"),
			NSQDAddrs:      a.config.GetArray("messaging.nsq.consumer_nsqd_addrs"),
			LookupdAddrs:   a.config.GetArray("messaging.nsq.consumer_lookupd_addrs"),
			ProducerConfig: a.nsqConfig("messaging.nsq.producer_config"),
			ConsumerConfig: a.nsqConfig("messaging.nsq.consumer_config"),
		},
		Kafka: messaging.KafkaConfig{
			Brokers: a.config.GetArray("messaging.kafka.brokers"),
			Dialer: &kafka.Dialer{
				ClientID:  a.str("messaging.kafka.client_id"),
				Timeout:   a.config.GetSecond("messaging.kafka.dial_timeout_seconds"),
				DualStack: true,
			},
			MinBytes: a.config.GetInt("messaging.kafka.min_bytes"),
			MaxBytes: a.config.GetInt("messaging.kafka.max_bytes"),
		},
		PubSub: messaging.PubSubConfig{
			ProjectID:          a.str("messaging.pubsub.project_id"),
			SubscriptionPrefix: a.str("messaging.pubsub.subscription_prefix"),
		},
	}
	if driver == messaging.DriverPubSub {
		opts.PubSub.ClientOptions = a.pubsubOptions()
	}

	client, err := messaging.NewFromDriver(a.ctx, driver, opts)
	if err != nil {
		slog.Error("failed to init messaging", "error", err, "driver", driver)
		os.Exit(1)
	}

	a.messaging = client
	a.onClose("messaging", func(context.Context) error { return client.Close() })
}

func (a *App) initCasbin() {
	adapter := pgxcasbin.NewAdapter(a.dbConn, pgxcasbin.WithTableName(a.config.GetString("casbin.table")))

	e, err := pgxcasbin.NewEnforcer(adapter)
	if err != nil {
		slog.Error("failed to init casbin", "error", err)
		os.Exit(1)
	}

	watcher, err := pgxcasbin.NewWatcher(a.ctx, a.dbConn, a.config.GetString("casbin.watcher_channel"))
	if err != nil {
		slog.Error("failed to create watcher casbin", "error", err)
		os.Exit(1)
	}

	if err := watcher.SetUpdateCallback(func(string) {
		if err := e.LoadPolicy(); err != nil {
			slog.Error("failed to reload casbin policy", "error", err)
		}
	}); err != nil {
		slog.Error("failed to set watcher callback casbin", "error", err)
		os.Exit(1)
	}

	if err := e.SetWatcher(watcher); err != nil {
		slog.Error("failed to set watcher casbin", "error", err)
		os.Exit(1)
	}

	e.EnableAutoSave(true)
	e.EnableAutoNotifyWatcher(true)

	a.casbin = e
	a.onClose("casbin watcher", func(context.Context) error {
		watcher.Close()
		return nil
	})
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		JWT:        a.jwt,
		Revocation: a.denylist,
		Instrument: a.ins,
		CookieName: a.cookie.Name,
	})

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{router.HeaderCorrelationID},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}
