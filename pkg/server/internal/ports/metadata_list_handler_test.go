package ports_test

import (
	"testing"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/server"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/ports/openapi"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/testabilities"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestMetadataListHandlers(t *testing.T) {
	expectedResponse := openapi.MetadataListResponse{
		"service1": {
			Name:             "service1",
			ShortDescription: "Description 1",
			IconURL:          ptr.To("https://example.com/icon.png"),
			Version:          ptr.To("1.0.0"),
			InformationURL:   ptr.To("https://example.com/info"),
		},
		"service2": {Name: "service2", ShortDescription: "No description available"},
		"service3": {Name: "service3", ShortDescription: "No description available"},
	}

	endpoints := []string{
		"/api/v1/listTopicManagers",
		"/api/v1/listLookupServiceProviders",
	}

	for _, endpoint := range endpoints {
		t.Run(endpoint, func(t *testing.T) {
			// given:
			mock := testabilities.NewMetadataListProviderMock(t, testabilities.MetadataListProviderMockExpectations{
				MetadataList: testabilities.DefaultMetadata,
				ListCall:     true,
			})
			stub := testabilities.NewTestOverlayEngineStub(t, testabilities.WithMetadataListProvider(mock))
			fixture := server.NewServerTestFixture(t, server.WithEngine(stub))

			// when:
			var actualResponse openapi.MetadataListResponse
			res, _ := fixture.Client().
				R().
				SetResult(&actualResponse).
				Get(endpoint)

			// then:
			require.Equal(t, fiber.StatusOK, res.StatusCode())
			require.Equal(t, expectedResponse, actualResponse)
			stub.AssertProvidersState()
		})
	}
}
