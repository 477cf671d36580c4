package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/staffbook/staffql/internal/credential"
	"github.com/staffbook/staffql/internal/graph"
	"github.com/staffbook/staffql/internal/store/filestore"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func setupTestRouter(t *testing.T, pinger Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := filestore.Open(context.Background(), filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close(context.Background()) })

	hasher, err := credential.NewBcryptHasher(4)
	if err != nil {
		t.Fatal(err)
	}

	es := graph.NewExecutableSchema(graph.Config{
		Resolvers: &graph.Resolver{Store: s, Hasher: hasher},
	})
	if pinger == nil {
		pinger = s
	}
	return NewRouter(es, pinger, nil)
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func postGraphQL(t *testing.T, router http.Handler, query string) gqlResponse {
	t.Helper()
	body, _ := json.Marshal(map[string]any{"query": query})
	req := httptest.NewRequest(http.MethodPost, GraphQLPath, strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /graphql status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp gqlResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return resp
}

func TestGraphQLPost(t *testing.T) {
	router := setupTestRouter(t, nil)

	resp := postGraphQL(t, router, `mutation { addEmployee(first_name: "Ada", department: "Engineering") { id first_name } }`)
	if len(resp.Errors) > 0 {
		t.Fatalf("errors: %+v", resp.Errors)
	}

	resp = postGraphQL(t, router, `{ employees { first_name department } }`)
	if len(resp.Errors) > 0 {
		t.Fatalf("errors: %+v", resp.Errors)
	}
	if string(resp.Data) != `{"employees":[{"first_name":"Ada","department":"Engineering"}]}` {
		t.Errorf("data = %s", resp.Data)
	}
}

func TestGraphQLErrorsAreReported(t *testing.T) {
	router := setupTestRouter(t, nil)

	resp := postGraphQL(t, router, `{ employee(id: "missing") { id } }`)
	if len(resp.Errors) != 1 || resp.Errors[0].Message != "Employee not found" {
		t.Errorf("errors = %+v", resp.Errors)
	}
}

func TestIntrospectionEnabledOverHTTP(t *testing.T) {
	router := setupTestRouter(t, nil)

	resp := postGraphQL(t, router, `{ __schema { queryType { name } } }`)
	if len(resp.Errors) > 0 {
		t.Fatalf("errors: %+v", resp.Errors)
	}
	if !strings.Contains(string(resp.Data), `"Query"`) {
		t.Errorf("data = %s", resp.Data)
	}
}

func TestGraphQLGetServesPlayground(t *testing.T) {
	router := setupTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, GraphQLPath, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}

func TestGraphQLGetQuery(t *testing.T) {
	router := setupTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, GraphQLPath+"?query="+url.QueryEscape("{ employees { id } }"), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"employees":[]`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		pinger     Pinger
		wantStatus int
		wantBody   string
	}{
		{"healthy", fakePinger{}, http.StatusOK, `"status":"ok"`},
		{"unreachable", fakePinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter(t, tt.pinger)

			req := httptest.NewRequest(http.MethodGet, HealthPath, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestNewHTTPServer(t *testing.T) {
	srv := NewHTTPServer(5000, http.NotFoundHandler())
	if srv.Addr != ":5000" {
		t.Errorf("Addr = %q, want :5000", srv.Addr)
	}
	if srv.ReadTimeout == 0 || srv.WriteTimeout == 0 {
		t.Error("timeouts should be set")
	}
}
