package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := configFromEnv()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 15, cfg.DefaultPerPage)
	assert.Equal(t, 100, cfg.MaxPerPage)
	assert.Equal(t, SinkLog, cfg.NotificationSink)
	assert.Equal(t, "@every 1h", cfg.TokenPurgeSchedule)
	assert.NotEmpty(t, cfg.JWTSecret, "local runs get a development secret")
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL_MINUTES", "30")
	t.Setenv("PAGINATION_DEFAULT_PER_PAGE", "10")
	t.Setenv("NOTIFICATION_SINK", "Kafka")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("TEMPORAL_DISABLED", "true")

	cfg, err := configFromEnv()

	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.DefaultPerPage)
	assert.Equal(t, SinkKafka, cfg.NotificationSink)
	assert.True(t, cfg.TemporalDisabled)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestConfigFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "secret_required_outside_local", env: map[string]string{"APP_ENV": "production", "JWT_SECRET": ""}, want: "JWT_SECRET"},
		{name: "non_numeric_ttl", env: map[string]string{"JWT_TTL_MINUTES": "soon"}, want: "JWT_TTL_MINUTES"},
		{name: "default_above_max", env: map[string]string{"PAGINATION_DEFAULT_PER_PAGE": "50", "PAGINATION_MAX_PER_PAGE": "20"}, want: "PAGINATION_DEFAULT_PER_PAGE"},
		{name: "rabbitmq_without_url", env: map[string]string{"NOTIFICATION_SINK": "rabbitmq", "RABBITMQ_URL": ""}, want: "RABBITMQ_URL"},
		{name: "unknown_sink", env: map[string]string{"NOTIFICATION_SINK": "smtp"}, want: "NOTIFICATION_SINK"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := configFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
