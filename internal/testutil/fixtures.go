// Package testutil provides shared OpenAPI fixtures and helpers for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/clientdocs/parser"
)

// MarketDataJSON is a market data API modeled on a real quotes/trades
// service. It contains:
//   - getLastQuote: a path parameter and a response object whose single-letter
//     keys clash (P/p, S/s, T/t, X/x)
//   - listTrades: path and query parameters covering every value branch, and
//     a paginated response declaring next_url through allOf
//   - getMarketStatus: no parameters, not paginated
//   - an operation without operationId whose response clashes (A/a)
//   - a component schema whose clash has an entry without description
const MarketDataJSON = `{
  "openapi": "3.0.3",
  "info": {"title": "Market Data", "version": "1.0.0"},
  "paths": {
    "/v2/last/nbbo/{ticker}": {
      "get": {
        "operationId": "getLastQuote",
        "summary": "Last Quote",
        "parameters": [
          {"name": "ticker", "in": "path", "required": true, "example": "AAPL", "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {
            "description": "The last NBBO tick.",
            "content": {
              "application/json": {
                "schema": {
                  "type": "object",
                  "properties": {
                    "request_id": {"type": "string"},
                    "results": {
                      "type": "object",
                      "properties": {
                        "P": {"type": "number", "description": "The ask price."},
                        "S": {"type": "integer", "description": "The ask size."},
                        "T": {"type": "string", "description": "The exchange symbol."},
                        "X": {"type": "integer", "description": "The ask exchange ID."},
                        "p": {"type": "number", "description": "The bid price."},
                        "s": {"type": "integer", "description": "The bid size."},
                        "t": {"type": "integer", "description": "The SIP timestamp."},
                        "x": {"type": "integer", "description": "The bid exchange ID."},
                        "y": {"type": "integer", "description": "The participant timestamp."}
                      }
                    },
                    "status": {"type": "string"}
                  }
                }
              }
            }
          }
        }
      }
    },
    "/v3/trades/{stockTicker}": {
      "get": {
        "operationId": "listTrades",
        "parameters": [
          {"name": "stockTicker", "in": "path", "required": true, "schema": {"type": "string"}, "example": "AAPL"},
          {"name": "timestamp", "in": "query", "schema": {"type": "string"}},
          {"name": "timestamp.gte", "in": "query", "schema": {"type": "string", "example": "2024-01-01"}},
          {"name": "order", "in": "query", "schema": {"type": "string", "enum": ["asc", "desc"], "default": "asc"}},
          {"name": "sort", "in": "query", "schema": {"$ref": "#/components/schemas/SortField"}},
          {"name": "direction", "in": "query", "schema": {"type": "string", "enum": ["up", "down"]}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "default": 1000}},
          {"name": "adjusted", "in": "query", "schema": {"type": "boolean"}},
          {"name": "multiplier", "in": "query", "schema": {"type": "number"}}
        ],
        "responses": {
          "200": {
            "description": "A list of trades.",
            "content": {
              "application/json": {
                "schema": {
                  "allOf": [
                    {"type": "object", "properties": {"next_url": {"type": "string"}}},
                    {
                      "type": "object",
                      "properties": {
                        "results": {
                          "type": "array",
                          "items": {
                            "type": "object",
                            "properties": {
                              "i": {"type": "string", "description": "The trade ID."},
                              "I": {"type": "integer", "description": "The trade correction indicator."}
                            }
                          }
                        }
                      }
                    }
                  ]
                }
              }
            }
          },
          "default": {"description": "Unexpected error."}
        }
      }
    },
    "/v1/marketstatus/now": {
      "get": {
        "operationId": "getMarketStatus",
        "responses": {
          "200": {
            "description": "Status of the market.",
            "content": {
              "application/json": {
                "schema": {
                  "type": "object",
                  "properties": {
                    "market": {"type": "string"},
                    "serverTime": {"type": "string"}
                  }
                }
              }
            }
          }
        }
      }
    },
    "/v1/legacy/status": {
      "get": {
        "responses": {
          "200": {
            "description": "Legacy status.",
            "content": {
              "application/json": {
                "schema": {
                  "properties": {
                    "a": {"type": "string", "description": "Lower a."},
                    "A": {"type": "string", "description": "Upper A."}
                  }
                }
              }
            }
          }
        }
      }
    }
  },
  "components": {
    "schemas": {
      "SortField": {"type": "string", "enum": ["timestamp", "price"]},
      "Trade": {
        "type": "object",
        "properties": {
          "p": {"type": "number", "description": "The price."},
          "P": {"type": "number"},
          "q": {"type": "integer", "description": "The sequence number."}
        }
      }
    }
  }
}`

// CleanYAML is a YAML document with no single-letter clashes. The response
// schema is an explicit type list to exercise OpenAPI 3.1 syntax.
const CleanYAML = `openapi: 3.1.0
info:
  title: Clean
  version: "2"
paths:
  /v1/tickers:
    get:
      operationId: list_tickers
      parameters:
        - name: active
          in: query
          example: true
          schema:
            type: boolean
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: [object, "null"]
                properties:
                  next_url:
                    type: string
                  count:
                    type: integer
components:
  schemas:
    Ticker:
      type: object
      properties:
        ticker:
          type: string
        name:
          type: string
`

// CyclicYAML uses a YAML anchor inside its own definition so the Node schema
// refers back to itself through "children.items".
const CyclicYAML = `openapi: 3.0.0
info:
  title: Cyclic
  version: "1"
paths: {}
components:
  schemas:
    Node: &node
      type: object
      properties:
        a:
          type: string
        children:
          type: array
          items: *node
`

// WriteFile writes content to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// MustParse loads content with default settings and fails the test on error.
func MustParse(t *testing.T, content string) *parser.Document {
	t.Helper()
	doc, err := parser.ParseWithOptions(parser.WithBytes([]byte(content)))
	require.NoError(t, err)
	return doc
}
