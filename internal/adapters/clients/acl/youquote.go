package acl

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/ports"
)

// Wire paths of the YouQuote API.
const (
	pathLogin      = "/login"
	pathRegister   = "/register"
	pathQuotes     = "/quotes"
	pathRandom     = "/quotes/random"
	pathPopular    = "/quotes/popular"
	pathFavorites  = "/quotes/Favorie" // exact, case-sensitive
	pathCategories = "/categories"
	pathTags       = "/tags"
)

const invalidCredentials = "Invalid credentials"

// YouQuote implements ports.RemoteAPI on top of a Gateway.
type YouQuote struct {
	gw     *Gateway
	logger *slog.Logger
}

var _ ports.RemoteAPI = (*YouQuote)(nil)

// NewYouQuote creates the remote API adapter.
// Panics if gw is nil.
func NewYouQuote(gw *Gateway, logger *slog.Logger) *YouQuote {
	if gw == nil {
		panic("YouQuote: Gateway is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &YouQuote{gw: gw, logger: logger.With(slog.String("component", "acl.YouQuote"))}
}

// --- wire DTOs, never exposed outside this package ---

type userDTO struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginResponse struct {
	AccessToken string   `json:"access_token"`
	User        *userDTO `json:"user"`
}

type registerResponse struct {
	Token string   `json:"token"`
	User  *userDTO `json:"user"`
}

type namedDTO struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

type quoteDTO struct {
	ID          ID         `json:"id"`
	Content     string     `json:"content"`
	Author      string     `json:"author"`
	Source      *string    `json:"source"`
	CategoryID  ID         `json:"category_id"`
	Category    *namedDTO  `json:"category"`
	Tags        []namedDTO `json:"tags"`
	LikesCount  int        `json:"likes_count"`
	IsLiked     Flag       `json:"is_liked"`
	IsFavorited Flag       `json:"is_favorited"`
}

type quoteRequest struct {
	Content    string `json:"content"`
	Author     string `json:"author"`
	Source     string `json:"source,omitempty"`
	CategoryID *ID    `json:"category_id"`
	Tags       []ID   `json:"tags"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type emptyRequest struct{}

// --- translation ---

func translateUser(u *userDTO) domain.User {
	return domain.User{ID: string(u.ID), Name: u.Name, Email: u.Email, Role: u.Role}
}

func translateCategory(ext *namedDTO) (domain.Category, error) {
	if ext.ID == "" {
		return domain.Category{}, errors.New("category without id")
	}

	return domain.Category{ID: string(ext.ID), Name: ext.Name}, nil
}

func translateTag(ext *namedDTO) (domain.Tag, error) {
	if ext.ID == "" {
		return domain.Tag{}, errors.New("tag without id")
	}

	return domain.Tag{ID: string(ext.ID), Name: ext.Name}, nil
}

func translateQuote(ext *quoteDTO) (domain.Quote, error) {
	if ext.ID == "" {
		return domain.Quote{}, errors.New("quote without id")
	}

	q := domain.Quote{
		ID:          string(ext.ID),
		Content:     ext.Content,
		Author:      ext.Author,
		CategoryID:  string(ext.CategoryID),
		LikesCount:  max(ext.LikesCount, 0),
		IsLiked:     bool(ext.IsLiked),
		IsFavorited: bool(ext.IsFavorited),
		Tags:        []domain.Tag{},
	}

	if ext.Source != nil {
		q.Source = *ext.Source
	}

	if ext.Category != nil && ext.Category.ID != "" {
		q.Category = &domain.Category{ID: string(ext.Category.ID), Name: ext.Category.Name}
		if q.CategoryID == "" {
			q.CategoryID = q.Category.ID
		}
	}

	for i := range ext.Tags {
		tag, err := translateTag(&ext.Tags[i])
		if err != nil {
			return domain.Quote{}, err
		}

		q.Tags = append(q.Tags, tag)
	}

	return q, nil
}

func toQuoteRequest(in domain.QuoteInput) quoteRequest {
	req := quoteRequest{
		Content: in.Content,
		Author:  in.Author,
		Source:  in.Source,
		Tags:    make([]ID, 0, len(in.TagIDs)),
	}

	if in.CategoryID != "" {
		id := ID(in.CategoryID)
		req.CategoryID = &id
	}

	for _, t := range in.TagIDs {
		req.Tags = append(req.Tags, ID(t))
	}

	return req
}

// --- auth ---

// Login exchanges credentials for a session. A rejected login is a
// validation error carrying the server message, or "Invalid credentials".
func (y *YouQuote) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	const op = "Login"

	body, err := y.gw.Do(ctx, Request{
		Method:    http.MethodPost,
		Path:      pathLogin,
		Body:      loginRequest{Email: creds.Email, Password: creds.Password},
		Operation: op,
		Public:    true,
	})
	if err != nil {
		return nil, loginError(err)
	}

	resp, err := DecodeObject[loginResponse](body, op)
	if err != nil {
		return nil, err
	}

	if resp.AccessToken == "" || resp.User == nil {
		return nil, domain.NewContractError(op, errors.New("missing access_token or user"))
	}

	y.logger.DebugContext(ctx, "login accepted", slog.String("user_id", string(resp.User.ID)))

	return &domain.Session{Token: resp.AccessToken, User: translateUser(resp.User)}, nil
}

func loginError(err error) error {
	var (
		unauthorized *domain.UnauthorizedError
		request      *domain.RequestError
		validation   *domain.ValidationError
	)

	switch {
	case errors.As(err, &unauthorized):
		return domain.NewValidationError("credentials", messageOr(unauthorized.Message, invalidCredentials))
	case errors.As(err, &request):
		return domain.NewValidationError("credentials", messageOr(request.Message, invalidCredentials))
	case errors.As(err, &validation) && len(validation.Messages) == 0:
		return domain.NewValidationError("credentials", messageOr(validation.Message, invalidCredentials))
	default:
		return err
	}
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}

	return msg
}

// Register creates an account. A 422 returns the per-field messages.
func (y *YouQuote) Register(ctx context.Context, reg domain.Registration) (*domain.Session, error) {
	const op = "Register"

	body, err := y.gw.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   pathRegister,
		Body: registerRequest{
			Name:                 reg.Name,
			Email:                reg.Email,
			Password:             reg.Password,
			PasswordConfirmation: reg.PasswordConfirmation,
		},
		Operation: op,
		Public:    true,
	})
	if err != nil {
		return nil, err
	}

	resp, err := DecodeObject[registerResponse](body, op)
	if err != nil {
		return nil, err
	}

	if resp.Token == "" || resp.User == nil {
		return nil, domain.NewContractError(op, errors.New("missing token or user"))
	}

	return &domain.Session{Token: resp.Token, User: translateUser(resp.User)}, nil
}

// --- quotes ---

func (y *YouQuote) listQuotes(ctx context.Context, op, path string) ([]domain.Quote, error) {
	body, err := y.gw.Do(ctx, Request{Method: http.MethodGet, Path: path, Operation: op})
	if err != nil {
		return nil, err
	}

	items, err := DecodeList[quoteDTO](body, op)
	if err != nil {
		return nil, err
	}

	quotes, err := TranslateSlice(items, translateQuote)
	if err != nil {
		return nil, domain.NewContractError(op, err)
	}

	return quotes, nil
}

func (y *YouQuote) quote(ctx context.Context, r Request) (*domain.Quote, error) {
	body, err := y.gw.Do(ctx, r)
	if err != nil {
		return nil, err
	}

	ext, err := DecodeObject[quoteDTO](body, r.Operation)
	if err != nil {
		return nil, err
	}

	q, err := translateQuote(ext)
	if err != nil {
		return nil, domain.NewContractError(r.Operation, err)
	}

	return &q, nil
}

// ListQuotes returns every quote visible to the session.
func (y *YouQuote) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	return y.listQuotes(ctx, "ListQuotes", pathQuotes)
}

// ListFavorites returns the caller's favorited quotes.
func (y *YouQuote) ListFavorites(ctx context.Context) ([]domain.Quote, error) {
	return y.listQuotes(ctx, "ListFavorites", pathFavorites)
}

// PopularQuotes returns the server's popularity ranking.
func (y *YouQuote) PopularQuotes(ctx context.Context) ([]domain.Quote, error) {
	return y.listQuotes(ctx, "PopularQuotes", pathPopular)
}

// RandomQuote returns one server-picked quote.
func (y *YouQuote) RandomQuote(ctx context.Context) (*domain.Quote, error) {
	return y.quote(ctx, Request{Method: http.MethodGet, Path: pathRandom, Operation: "RandomQuote"})
}

// CreateQuote creates a quote.
func (y *YouQuote) CreateQuote(ctx context.Context, in domain.QuoteInput) (*domain.Quote, error) {
	return y.quote(ctx, Request{
		Method:    http.MethodPost,
		Path:      pathQuotes,
		Body:      toQuoteRequest(in),
		Operation: "CreateQuote",
	})
}

// UpdateQuote replaces the editable fields of a quote.
func (y *YouQuote) UpdateQuote(ctx context.Context, id string, in domain.QuoteInput) (*domain.Quote, error) {
	return y.quote(ctx, Request{
		Method:    http.MethodPut,
		Path:      itemPath(pathQuotes, id),
		Body:      toQuoteRequest(in),
		Operation: "UpdateQuote",
		Entity:    "quote",
		EntityID:  id,
	})
}

// DeleteQuote removes a quote.
func (y *YouQuote) DeleteQuote(ctx context.Context, id string) error {
	return y.gw.Exec(ctx, Request{
		Method:    http.MethodDelete,
		Path:      itemPath(pathQuotes, id),
		Operation: "DeleteQuote",
		Entity:    "quote",
		EntityID:  id,
	})
}

// LikeQuote records a like.
func (y *YouQuote) LikeQuote(ctx context.Context, id string) error {
	return y.gw.Exec(ctx, Request{
		Method:    http.MethodPost,
		Path:      itemPath(pathQuotes, id) + "/like",
		Body:      emptyRequest{},
		Operation: "LikeQuote",
		Entity:    "quote",
		EntityID:  id,
	})
}

// FavoriteQuote toggles the favorite flag server side.
func (y *YouQuote) FavoriteQuote(ctx context.Context, id string) error {
	return y.gw.Exec(ctx, Request{
		Method:    http.MethodPost,
		Path:      itemPath(pathQuotes, id) + "/favorite",
		Body:      emptyRequest{},
		Operation: "FavoriteQuote",
		Entity:    "quote",
		EntityID:  id,
	})
}

// --- catalog ---

func (y *YouQuote) listNamed(ctx context.Context, op, path string) ([]namedDTO, error) {
	body, err := y.gw.Do(ctx, Request{Method: http.MethodGet, Path: path, Operation: op})
	if err != nil {
		return nil, err
	}

	return DecodeList[namedDTO](body, op)
}

func (y *YouQuote) saveNamed(ctx context.Context, r Request) (*namedDTO, error) {
	body, err := y.gw.Do(ctx, r)
	if err != nil {
		return nil, err
	}

	ext, err := DecodeObject[namedDTO](body, r.Operation)
	if err != nil {
		return nil, err
	}

	if ext.ID == "" {
		return nil, domain.NewContractError(r.Operation, errors.New("missing id"))
	}

	return ext, nil
}

// ListCategories returns all categories.
func (y *YouQuote) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "ListCategories"

	items, err := y.listNamed(ctx, op, pathCategories)
	if err != nil {
		return nil, err
	}

	cats, err := TranslateSlice(items, translateCategory)
	if err != nil {
		return nil, domain.NewContractError(op, err)
	}

	return cats, nil
}

// CreateCategory creates a category.
func (y *YouQuote) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	ext, err := y.saveNamed(ctx, Request{
		Method:    http.MethodPost,
		Path:      pathCategories,
		Body:      nameRequest{Name: name},
		Operation: "CreateCategory",
	})
	if err != nil {
		return nil, err
	}

	return &domain.Category{ID: string(ext.ID), Name: ext.Name}, nil
}

// UpdateCategory renames a category.
func (y *YouQuote) UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error) {
	ext, err := y.saveNamed(ctx, Request{
		Method:    http.MethodPut,
		Path:      itemPath(pathCategories, id),
		Body:      nameRequest{Name: name},
		Operation: "UpdateCategory",
		Entity:    "category",
		EntityID:  id,
	})
	if err != nil {
		return nil, err
	}

	return &domain.Category{ID: string(ext.ID), Name: ext.Name}, nil
}

// DeleteCategory removes a category.
func (y *YouQuote) DeleteCategory(ctx context.Context, id string) error {
	return y.gw.Exec(ctx, Request{
		Method:    http.MethodDelete,
		Path:      itemPath(pathCategories, id),
		Operation: "DeleteCategory",
		Entity:    "category",
		EntityID:  id,
	})
}

// ListTags returns all tags.
func (y *YouQuote) ListTags(ctx context.Context) ([]domain.Tag, error) {
	const op = "ListTags"

	items, err := y.listNamed(ctx, op, pathTags)
	if err != nil {
		return nil, err
	}

	tags, err := TranslateSlice(items, translateTag)
	if err != nil {
		return nil, domain.NewContractError(op, err)
	}

	return tags, nil
}

// CreateTag creates a tag.
func (y *YouQuote) CreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	ext, err := y.saveNamed(ctx, Request{
		Method:    http.MethodPost,
		Path:      pathTags,
		Body:      nameRequest{Name: name},
		Operation: "CreateTag",
	})
	if err != nil {
		return nil, err
	}

	return &domain.Tag{ID: string(ext.ID), Name: ext.Name}, nil
}

// UpdateTag renames a tag.
func (y *YouQuote) UpdateTag(ctx context.Context, id, name string) (*domain.Tag, error) {
	ext, err := y.saveNamed(ctx, Request{
		Method:    http.MethodPut,
		Path:      itemPath(pathTags, id),
		Body:      nameRequest{Name: name},
		Operation: "UpdateTag",
		Entity:    "tag",
		EntityID:  id,
	})
	if err != nil {
		return nil, err
	}

	return &domain.Tag{ID: string(ext.ID), Name: ext.Name}, nil
}

// DeleteTag removes a tag.
func (y *YouQuote) DeleteTag(ctx context.Context, id string) error {
	return y.gw.Exec(ctx, Request{
		Method:    http.MethodDelete,
		Path:      itemPath(pathTags, id),
		Operation: "DeleteTag",
		Entity:    "tag",
		EntityID:  id,
	})
}

func itemPath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}
