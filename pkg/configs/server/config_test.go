package server_test

import (
	"testing"
	"time"

	kcs "github.com/uw-gac/phenotag/pkg/configs/server"
)

func TestLoadServerConfig(t *testing.T) {

	t.Run("it can be created from a config file", func(t *testing.T) {
		result, err := kcs.LoadServerConfig("./testdata/config.yaml")

		if err != nil {
			t.Fatalf("failed to parse config.: %v", err)
		}
		expectedURI := "postgres://phenotag-test-pgdb-svc:32555/phenotag"
		if result.DBURI != expectedURI {
			t.Errorf("unmatch dbURI:%s, expected:%s", result.DBURI, expectedURI)
		}
		expectedServerPort := "8080"
		if result.ServerPort != expectedServerPort {
			t.Errorf("unmatch serverport:%s, expected:%s", result.ServerPort, expectedServerPort)
		}
		expectedRepository := "/opt/phenotag/schema"
		if result.SchemaRepository != expectedRepository {
			t.Errorf("unmatch schemaRepository:%s, expected:%s", result.SchemaRepository, expectedRepository)
		}
		if ttl := result.Session.EffectiveTTL(); ttl != 45*time.Minute {
			t.Errorf("unmatch session ttl:%v, expected:%v", ttl, 45*time.Minute)
		}
		expectedRedis := "127.0.0.1:6379"
		if result.Session.Redis != expectedRedis {
			t.Errorf("unmatch session redis:%s, expected:%s", result.Session.Redis, expectedRedis)
		}
		expectedSignKey := "test-sign-key"
		if result.Auth.SignKey != expectedSignKey {
			t.Errorf("unmatch auth signKey:%s, expected:%s", result.Auth.SignKey, expectedSignKey)
		}
	})

	t.Run("session ttl falls back to the default when omitted", func(t *testing.T) {
		result, err := kcs.Unmarshal([]byte("port: \"8080\"\ndbURI: \"postgres://localhost/phenotag\"\n"))
		if err != nil {
			t.Fatalf("failed to parse config.: %v", err)
		}
		if ttl := result.Session.EffectiveTTL(); ttl != kcs.DefaultSessionTTL {
			t.Errorf("unmatch session ttl:%v, expected:%v", ttl, kcs.DefaultSessionTTL)
		}
	})

	t.Run("a malformed ttl is an error", func(t *testing.T) {
		_, err := kcs.Unmarshal([]byte("session:\n    ttl: \"soon\"\n"))
		if err == nil {
			t.Error("no error for malformed ttl")
		}
	})
}
