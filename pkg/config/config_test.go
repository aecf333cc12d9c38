package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "dev_admin_key", cfg.Auth.SuperAdminKey)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "lab-portal", cfg.Cache.Namespace)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("JWT_EXPIRATION", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	v.Set("ENABLE_CACHE", true)
	v.Set("CACHE_TTL", "30s")
	v.Set("REDIS_URL", "redis://cache:6379/1")

	cfg := fromViper(v)

	assert.Equal(t, 7*24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URL)
}

func TestDatabaseURL(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "labs", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/labs?sslmode=disable", db.URL())

	db.Password = "p@ss/word"
	assert.Equal(t, "postgres://u:p%40ss%2Fword@db:5432/labs?sslmode=disable", db.URL())

	db.DSN = "postgres://override/labs"
	assert.Equal(t, "postgres://override/labs", db.URL())
}
