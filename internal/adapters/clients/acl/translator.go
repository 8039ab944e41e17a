package acl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jsamuelsen/quotedash/internal/adapters/clients"
	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/ports"
)

// Request describes one call through the Gateway.
type Request struct {
	Method    string
	Path      string
	Body      any // JSON encoded when non-nil
	Operation string

	// Entity and EntityID name the target for 404 errors.
	Entity   string
	EntityID string

	// Public calls (login, register) are sent without a session.
	Public bool
}

// Gateway is the single path every remote call takes. It
//   - refuses authenticated calls when no token is held, before any I/O
//   - sends each request exactly once
//   - on 401 or 403 from any endpoint, public ones included, invalidates the
//     session, then reports domain.ErrUnauthorized
//   - maps every other failure to a domain error
//
// The bearer header itself is added by the client's AuthFunc (see BearerAuth).
// Public calls never carry it.
type Gateway struct {
	client      *clients.Client
	session     ports.SessionHolder
	serviceName string
	logger      *slog.Logger
}

// NewGateway creates a gateway over client. session may be nil only for
// tests that issue public calls.
func NewGateway(client *clients.Client, session ports.SessionHolder, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		client:      client,
		session:     session,
		serviceName: client.ServiceName(),
		logger:      logger.With(slog.String("component", "acl.Gateway")),
	}
}

type publicCallKey struct{}

func withPublicCall(ctx context.Context) context.Context {
	return context.WithValue(ctx, publicCallKey{}, true)
}

func isPublicCall(ctx context.Context) bool {
	public, _ := ctx.Value(publicCallKey{}).(bool)

	return public
}

// BearerAuth returns a clients.Config.AuthFunc that sets the Authorization
// header from the holder's current token, if any. Requests sent through
// Gateway as Public are left untouched.
func BearerAuth(session ports.SessionHolder) func(*http.Request) {
	return func(r *http.Request) {
		if isPublicCall(r.Context()) {
			return
		}

		if token := session.Token(); token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// ServiceName returns the name of the remote service.
func (g *Gateway) ServiceName() string {
	return g.serviceName
}

// Do sends the request and returns the success body, which the caller closes.
func (g *Gateway) Do(ctx context.Context, r Request) (io.ReadCloser, error) {
	if !r.Public && (g.session == nil || g.session.Token() == "") {
		return nil, domain.NewUnauthorizedError(r.Operation, 0)
	}

	var body io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: encoding request: %w", r.Operation, err)
		}

		body = bytes.NewReader(payload)
	}

	if r.Public {
		ctx = withPublicCall(ctx)
	}

	req, err := g.client.NewRequest(ctx, r.Method, r.Path, body)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return nil, MapHTTPError(nil, err, g.serviceName, r.Operation, r.Entity, r.EntityID)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return resp.Body, nil
	}

	defer func() { _ = resp.Body.Close() }()

	mapped := MapHTTPError(resp, nil, g.serviceName, r.Operation, r.Entity, r.EntityID)

	if domain.IsUnauthorized(mapped) && g.session != nil {
		g.session.Invalidate(ctx)
		g.logger.WarnContext(ctx, "session rejected by remote, credentials cleared",
			slog.String("operation", r.Operation),
			slog.Int("status", resp.StatusCode),
		)
	}

	return nil, mapped
}

// Exec sends the request and discards the body.
func (g *Gateway) Exec(ctx context.Context, r Request) error {
	body, err := g.Do(ctx, r)
	if err != nil {
		return err
	}

	_, _ = io.Copy(io.Discard, body)

	return body.Close()
}

// DecodeObject reads a JSON object body into T. Anything other than an
// object is a domain.ErrContract error.
func DecodeObject[T any](body io.ReadCloser, operation string) (*T, error) {
	var out T
	if err := decodeShape(body, '{', &out); err != nil {
		return nil, domain.NewContractError(operation, err)
	}

	return &out, nil
}

// DecodeList reads a JSON array body into []T. Anything other than an array,
// including an object wrapping one, is a domain.ErrContract error.
func DecodeList[T any](body io.ReadCloser, operation string) ([]T, error) {
	var out []T
	if err := decodeShape(body, '[', &out); err != nil {
		return nil, domain.NewContractError(operation, err)
	}

	if out == nil {
		out = []T{}
	}

	return out, nil
}

func decodeShape(body io.ReadCloser, opening byte, target any) error {
	if body == nil {
		return errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	br := bufio.NewReader(body)

	first, err := firstNonSpace(br)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if first != opening {
		return fmt.Errorf("expected %q, found %q", opening, first)
	}

	if err := br.UnreadByte(); err != nil {
		return err
	}

	if err := json.NewDecoder(br).Decode(target); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func firstNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}

		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			return b, nil
		}
	}
}

// Translator converts a wire DTO to a domain value, rejecting invalid data.
type Translator[External any, Domain any] func(ext *External) (Domain, error)

// TranslateSlice applies translate to every item, failing on the first error.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, translated)
	}

	return result, nil
}

// ID accepts both JSON numbers and strings and keeps the decimal text.
// null decodes to "".
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*id = ID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id must be a number or string: %w", err)
		}

		*id = ID(n.String())
	}

	return nil
}

// MarshalJSON sends numeric ids as numbers and anything else as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}

	return json.Marshal(string(id))
}

// Flag accepts true/false, 0/1 and null.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", "1", `"1"`, `"true"`:
		*f = true
	case "false", "0", `"0"`, `"false"`, "null":
		*f = false
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}

	return nil
}
