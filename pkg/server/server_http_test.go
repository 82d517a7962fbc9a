package server_test

import (
	"testing"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/server"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestServerHTTP_ShouldExposeOperationalEndpoints(t *testing.T) {
	tests := map[string]string{
		"liveness probe":  "/livez",
		"readiness probe": "/readyz",
		"metrics":         "/metrics",
	}

	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			// given:
			fixture := server.NewServerTestFixture(t)

			// when:
			res, _ := fixture.Client().R().Get(path)

			// then:
			require.Equal(t, fiber.StatusOK, res.StatusCode())
		})
	}
}

func TestServerHTTP_ShouldRejectEverything_WhenNoEngineIsConfigured(t *testing.T) {
	// given:
	fixture := server.NewServerTestFixture(t)

	// when:
	topics, _ := fixture.Client().R().Get("/api/v1/listTopicManagers")
	lookup, _ := fixture.Client().
		R().
		SetHeader(fiber.HeaderContentType, fiber.MIMEApplicationJSON).
		SetBody(map[string]any{"service": "ls_helloworld"}).
		Post("/api/v1/lookup")
	docs, _ := fixture.Client().R().Get("/api/v1/getDocumentationForTopicManager?topicManager=tm_helloworld")

	// then:
	require.Equal(t, fiber.StatusOK, topics.StatusCode())
	require.JSONEq(t, `{}`, topics.String())
	require.Equal(t, fiber.StatusBadRequest, lookup.StatusCode())
	require.Equal(t, fiber.StatusNotFound, docs.StatusCode())
}

func TestServerHTTP_ShouldReturnNotFound_ForUnknownRoute(t *testing.T) {
	// given:
	fixture := server.NewServerTestFixture(t)

	// when:
	res, _ := fixture.Client().R().Get("/api/v1/unknown")

	// then:
	require.Equal(t, fiber.StatusNotFound, res.StatusCode())
}

func TestServerHTTP_SocketAddr(t *testing.T) {
	// given:
	cfg := server.DefaultConfig
	cfg.Addr = "0.0.0.0"
	cfg.Port = 3100

	// when:
	srv := server.New(server.WithConfig(cfg))

	// then:
	require.Equal(t, "0.0.0.0:3100", srv.SocketAddr())
}
