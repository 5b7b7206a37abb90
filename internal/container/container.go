// Package container holds the process-wide singletons built in main and
// consumed by the router when it wires handler modules. Everything here is
// set once during startup, before the first request is served, so access
// needs no locking.
package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/scentlog/scentlog/config"
	"github.com/scentlog/scentlog/pkg/helpers"
	"github.com/scentlog/scentlog/pkg/mailer"
)

var (
	// core infrastructure, always present
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	jwtManager  *helpers.JWTManager

	// optional collaborators, nil when unconfigured
	gcsClient     *storage.Client
	esClient      *elasticsearch.Client
	mailgunClient *mailer.Mailgun
	rabbitPub     *helpers.RabbitPublisher
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

func SetPGPool(p *pgxpool.Pool) { pgPool = p }
func GetPGPool() *pgxpool.Pool  { return pgPool }

func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }

func SetJWT(m *helpers.JWTManager) { jwtManager = m }

// GetJWT never returns nil in a booted process; the fallback covers tests
// that construct modules without going through main.
func GetJWT() *helpers.JWTManager {
	if jwtManager == nil {
		return helpers.DefaultJWT()
	}
	return jwtManager
}

func SetGCS(s *storage.Client) { gcsClient = s }
func GetGCS() *storage.Client  { return gcsClient }

func SetES(c *elasticsearch.Client) { esClient = c }
func GetES() *elasticsearch.Client  { return esClient }

func SetMailgun(m *mailer.Mailgun) { mailgunClient = m }
func GetMailgun() *mailer.Mailgun  { return mailgunClient }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
