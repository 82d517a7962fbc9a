package ports_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/app"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/ports"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/ports/middleware"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/ports/openapi"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/testabilities"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestSubmitTransactionHandler_ValidCase(t *testing.T) {
	// given:
	mock := testabilities.NewSubmitTransactionProviderMock(t, testabilities.DefaultSubmitTransactionProviderMockExpectations)
	stub := testabilities.NewTestOverlayEngineStub(t, testabilities.WithSubmitTransactionProvider(mock))
	fixture := server.NewServerTestFixture(t, server.WithEngine(stub))

	expectedResponse := openapi.SubmitTransactionResponse{
		STEAK: openapi.STEAK{
			"tm_helloworld": {
				OutputsToAdmit: []uint32{0},
				CoinsToRetain:  []uint32{},
				CoinsRemoved:   []uint32{1},
			},
		},
	}

	// when:
	var actualResponse openapi.SubmitTransactionResponse
	res, _ := fixture.Client().
		R().
		SetHeader(fiber.HeaderContentType, fiber.MIMEOctetStream).
		SetHeader(ports.XTopicsHeader, `["tm_helloworld"]`).
		SetBody([]byte{0x01, 0x02, 0x03}).
		SetResult(&actualResponse).
		Post("/api/v1/submit")

	// then:
	require.Equal(t, fiber.StatusOK, res.StatusCode())
	require.Equal(t, expectedResponse, actualResponse)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, mock.CalledTaggedBEEF.Beef)
	require.Equal(t, []string{"tm_helloworld"}, mock.CalledTaggedBEEF.Topics)
	stub.AssertProvidersState()
}

func TestSubmitTransactionHandler_InvalidCases(t *testing.T) {
	unknownTopic := fmt.Errorf("%w: tm_other", engine.ErrUnknownTopic)

	tests := map[string]struct {
		headers            map[string]string
		body               []byte
		expectations       testabilities.SubmitTransactionProviderMockExpectations
		expectedStatusCode int
		expectedResponse   openapi.Error
	}{
		"missing x-topics header": {
			headers:            map[string]string{fiber.HeaderContentType: fiber.MIMEOctetStream},
			body:               []byte{0x01},
			expectedStatusCode: fiber.StatusBadRequest,
			expectedResponse:   testabilities.NewTestOpenapiErrorResponse(t, ports.NewMissingTopicsHeaderError()),
		},
		"malformed x-topics header": {
			headers: map[string]string{
				fiber.HeaderContentType: fiber.MIMEOctetStream,
				ports.XTopicsHeader:     "tm_helloworld",
			},
			body:               []byte{0x01},
			expectedStatusCode: fiber.StatusBadRequest,
			expectedResponse:   testabilities.NewTestOpenapiErrorResponse(t, ports.NewInvalidTopicsHeaderError(errors.New("invalid"))),
		},
		"empty topics array": {
			headers: map[string]string{
				fiber.HeaderContentType: fiber.MIMEOctetStream,
				ports.XTopicsHeader:     "[]",
			},
			body:               []byte{0x01},
			expectedStatusCode: fiber.StatusBadRequest,
			expectedResponse:   testabilities.NewTestOpenapiErrorResponse(t, app.NewEmptyTransactionTopicsError()),
		},
		"unsupported content type": {
			headers: map[string]string{
				fiber.HeaderContentType: fiber.MIMEApplicationJSON,
				ports.XTopicsHeader:     `["tm_helloworld"]`,
			},
			body:               []byte(`{}`),
			expectedStatusCode: fiber.StatusBadRequest,
			expectedResponse:   testabilities.NewTestOpenapiErrorResponse(t, ports.NewUnsupportedContentTypeError(fiber.MIMEOctetStream)),
		},
		"empty body": {
			headers: map[string]string{
				fiber.HeaderContentType: fiber.MIMEOctetStream,
				ports.XTopicsHeader:     `["tm_helloworld"]`,
			},
			expectedStatusCode: fiber.StatusBadRequest,
			expectedResponse:   testabilities.NewTestOpenapiErrorResponse(t, middleware.NewEmptyRequestBodyError()),
		},
		"unknown topic": {
			headers: map[string]string{
				fiber.HeaderContentType: fiber.MIMEOctetStream,
				ports.XTopicsHeader:     `["tm_other"]`,
			},
			body:               []byte{0x01},
			expectations:       testabilities.SubmitTransactionProviderMockExpectations{SubmitCall: true, Error: unknownTopic},
			expectedStatusCode: fiber.StatusBadRequest,
			expectedResponse:   testabilities.NewTestOpenapiErrorResponse(t, app.NewUnknownTopicError(unknownTopic)),
		},
		"provider failure": {
			headers: map[string]string{
				fiber.HeaderContentType: fiber.MIMEOctetStream,
				ports.XTopicsHeader:     `["tm_helloworld"]`,
			},
			body:               []byte{0x01},
			expectations:       testabilities.SubmitTransactionProviderMockExpectations{SubmitCall: true, Error: testabilities.ErrTestNoopOpFailure},
			expectedStatusCode: fiber.StatusInternalServerError,
			expectedResponse:   testabilities.NewTestOpenapiErrorResponse(t, app.NewSubmitTransactionProviderError(testabilities.ErrTestNoopOpFailure)),
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			// given:
			stub := testabilities.NewTestOverlayEngineStub(t, testabilities.WithSubmitTransactionProvider(testabilities.NewSubmitTransactionProviderMock(t, tc.expectations)))
			fixture := server.NewServerTestFixture(t, server.WithEngine(stub))

			// when:
			var actualResponse openapi.Error
			res, _ := fixture.Client().
				R().
				SetHeaders(tc.headers).
				SetBody(tc.body).
				SetError(&actualResponse).
				Post("/api/v1/submit")

			// then:
			require.Equal(t, tc.expectedStatusCode, res.StatusCode())
			require.Equal(t, tc.expectedResponse, actualResponse)
			stub.AssertProvidersState()
		})
	}
}
