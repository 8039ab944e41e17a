package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/ports"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		landing string
	}{
		{"admin lands on admin", domain.RoleAdmin, domain.LandingAdmin},
		{"user lands on user", "user", domain.LandingUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			creds := domain.Credentials{Email: "ada@example.com", Password: "secret"}
			f.api.EXPECT().Login(mock.Anything, creds).Return(&domain.Session{
				Token: "abc",
				User:  domain.User{ID: "7", Name: "Ada", Role: tt.role},
			}, nil)

			s, landing, err := f.dash.Login(context.Background(), creds)

			require.NoError(t, err)
			assert.Equal(t, tt.landing, landing)
			assert.Equal(t, "abc", s.Token)
			assert.Equal(t, "abc", f.creds.Token())
			require.NotNil(t, f.store.stored())
			assert.Equal(t, "7", f.store.stored().User.ID)
		})
	}
}

func TestLogin_ValidatesBeforeSending(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.dash.Login(context.Background(), domain.Credentials{Email: " ", Password: "x"})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)
	assert.Nil(t, f.store.stored())
}

func TestLogin_RejectedStoresNothing(t *testing.T) {
	f := newFixture(t)
	f.api.EXPECT().Login(mock.Anything, mock.Anything).
		Return(nil, domain.NewValidationError("credentials", "Invalid credentials"))

	_, _, err := f.dash.Login(context.Background(), domain.Credentials{Email: "a@b.co", Password: "wrong"})

	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", Describe("log in", err))
	assert.Empty(t, f.creds.Token())
	assert.Nil(t, f.store.stored())
}

func TestRegister_ReportsEveryField(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.dash.Register(context.Background(), domain.Registration{
		Email:                "nope",
		Password:             "short",
		PasswordConfirmation: "other",
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ElementsMatch(t, []string{"name", "email", "password", "password_confirmation"}, keys(ve.Fields))
}

func TestRegister_StoresSession(t *testing.T) {
	f := newFixture(t)
	reg := domain.Registration{Name: "Ada", Email: "ada@example.com", Password: "longenough", PasswordConfirmation: "longenough"}
	f.api.EXPECT().Register(mock.Anything, reg).
		Return(&domain.Session{Token: "new", User: domain.User{ID: "9", Role: "user"}}, nil)

	_, landing, err := f.dash.Register(context.Background(), reg)

	require.NoError(t, err)
	assert.Equal(t, domain.LandingUser, landing)
	assert.Equal(t, "new", f.creds.Token())
}

func TestWithoutSession_NothingIsSent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	calls := map[string]func() error{
		"load":     func() error { _, err := f.dash.Load(ctx); return err },
		"view":     func() error { _, err := f.dash.View(); return err },
		"quotes":   func() error { _, err := f.dash.Quotes(domain.Filter{}); return err },
		"random":   func() error { _, err := f.dash.RandomQuote(ctx); return err },
		"popular":  func() error { _, err := f.dash.Popular(ctx); return err },
		"longest":  func() error { _, err := f.dash.Longest(); return err },
		"create":   func() error { _, err := f.dash.CreateQuote(ctx, domain.QuoteInput{Content: "c", Author: "a"}); return err },
		"delete":   func() error { return f.dash.DeleteQuote(ctx, "1", ports.AlwaysConfirm) },
		"like":     func() error { return f.dash.LikeQuote(ctx, "1") },
		"favorite": func() error { _, err := f.dash.ToggleFavorite(ctx, "1"); return err },
		"catalog":  func() error { _, err := f.dash.Catalog(ctx); return err },
		"form":     func() error { _, err := f.dash.Form(); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			assert.True(t, domain.IsUnauthorized(call()))
		})
	}
}

func expectLoad(f *fixture, quotes, favorites []domain.Quote, favErr error) {
	f.api.EXPECT().ListQuotes(mock.Anything).Return(quotes, nil)
	f.api.EXPECT().ListCategories(mock.Anything).Return([]domain.Category{{ID: "c1", Name: "Life"}}, nil)
	f.api.EXPECT().ListTags(mock.Anything).Return([]domain.Tag{{ID: "t1", Name: "wisdom"}}, nil)
	f.api.EXPECT().ListFavorites(mock.Anything).Return(favorites, favErr)
}

func TestLoad_MirrorsAllCollections(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "user")

	fav := quote("2", 0, "b")
	expectLoad(f, []domain.Quote{quote("1", 0, "a"), quote("2", 0, "b")}, []domain.Quote{fav}, nil)

	view, err := f.dash.Load(context.Background())

	require.NoError(t, err)
	assert.False(t, view.Loading)
	assert.Equal(t, domain.LandingUser, view.Landing)
	assert.Equal(t, []string{"1", "2"}, ids(view.Quotes))
	assert.Equal(t, []string{"2"}, ids(view.Favorites))
	assert.Len(t, view.Categories, 1)
	assert.Len(t, view.Tags, 1)

	assert.False(t, view.Quotes[0].IsFavorited)
	assert.True(t, view.Quotes[1].IsFavorited, "favorites list sets the flag")
}

func TestLoad_PartialFailureShowsEmpty(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "user")

	f.api.EXPECT().ListQuotes(mock.Anything).Return([]domain.Quote{quote("1", 0, "a")}, nil)
	f.api.EXPECT().ListCategories(mock.Anything).Return(nil, domain.NewUnavailableError("api", "502"))
	f.api.EXPECT().ListTags(mock.Anything).Return(nil, domain.NewContractError("ListTags", nil))
	f.api.EXPECT().ListFavorites(mock.Anything).Return([]domain.Quote{}, nil)

	view, err := f.dash.Load(context.Background())

	require.NoError(t, err)
	assert.Len(t, view.Quotes, 1)
	assert.Empty(t, view.Categories)
	assert.Empty(t, view.Tags)
}

func TestLoad_FavoritesFallBackToFlags(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "user")

	flagged := quote("2", 0, "b")
	flagged.IsFavorited = true
	expectLoad(f, []domain.Quote{quote("1", 0, "a"), flagged}, nil, domain.NewNotFoundError("favorites", ""))

	view, err := f.dash.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(view.Favorites))
}

func TestLoad_RejectedSessionAborts(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "user")
	f.dash.store.ApplyQuote(quote("old", 0, "stale"))

	f.api.EXPECT().ListQuotes(mock.Anything).
		Run(func(args mock.Arguments) {
			// The gateway invalidates before the error surfaces.
			f.creds.Invalidate(args.Get(0).(context.Context))
		}).
		Return(nil, unauthorized())
	f.api.EXPECT().ListCategories(mock.Anything).Return([]domain.Category{}, nil)
	f.api.EXPECT().ListTags(mock.Anything).Return([]domain.Tag{}, nil)
	f.api.EXPECT().ListFavorites(mock.Anything).Return([]domain.Quote{}, nil)

	_, err := f.dash.Load(context.Background())

	require.True(t, domain.IsUnauthorized(err))
	assert.Equal(t, MsgSessionExpired, Describe("load dashboard", err))
	assert.Empty(t, f.creds.Token())
	assert.Nil(t, f.store.stored())
	assert.Equal(t, 0, f.dash.store.Quotes.Len())

	_, ok := f.dash.Session()
	assert.False(t, ok)
}

func TestLoad_CanceledContext(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "user")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.api.EXPECT().ListQuotes(mock.Anything).Return(nil, context.Canceled)
	f.api.EXPECT().ListCategories(mock.Anything).Return(nil, context.Canceled)
	f.api.EXPECT().ListTags(mock.Anything).Return(nil, context.Canceled)
	f.api.EXPECT().ListFavorites(mock.Anything).Return(nil, context.Canceled)

	_, err := f.dash.Load(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogout_DropsEverything(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "user")
	f.dash.store.ApplyQuote(quote("1", 0, "a"))

	require.NoError(t, f.dash.Logout(context.Background()))

	assert.Empty(t, f.creds.Token())
	assert.Nil(t, f.store.stored())
	assert.Equal(t, 0, f.dash.store.Quotes.Len())
}

func TestReads_ServeFromCache(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "user")
	f.dash.store.Load(
		[]domain.Quote{quote("1", 1, "short"), quote("2", 9, "a somewhat longer quote")},
		nil, nil, nil,
	)

	longest, err := f.dash.Longest()
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, ids(longest))

	f.api.EXPECT().PopularQuotes(mock.Anything).Return(nil, errors.New("down"))

	popular, err := f.dash.Popular(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, popular.Source)
	assert.Equal(t, []string{"2", "1"}, ids(popular.Value))
}

func TestEditQuote_OpensForm(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "user")

	q := quote("1", 0, "Know thyself")
	q.CategoryID = "c1"
	f.dash.store.ApplyQuote(q)

	view, err := f.dash.EditQuote("1")

	require.NoError(t, err)
	assert.Equal(t, FormEditing, view.State)
	assert.Equal(t, "1", view.QuoteID)
	assert.Equal(t, "c1", view.Input.CategoryID)

	_, err = f.dash.EditQuote("missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestInvalidate_ClosesForm(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "user")

	form, err := f.dash.Form()
	require.NoError(t, err)
	require.NoError(t, form.OpenNew())

	f.creds.Invalidate(context.Background())

	assert.Equal(t, FormIdle, form.View().State)
}

func TestAdmin_RequiresRole(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "user")
	ctx := context.Background()

	_, err := f.dash.Catalog(ctx)
	assert.True(t, domain.IsForbidden(err))

	_, err = f.dash.SaveTag(ctx, "", "fun")
	assert.True(t, domain.IsForbidden(err))

	assert.True(t, domain.IsForbidden(f.dash.DeleteCategory(ctx, "1", ports.AlwaysConfirm)))
}

func TestCatalog(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, domain.RoleAdmin)

	f.api.EXPECT().ListTags(mock.Anything).Return([]domain.Tag{{ID: "t1", Name: "fun"}}, nil)
	f.api.EXPECT().ListCategories(mock.Anything).Return([]domain.Category{{ID: "c1", Name: "Life"}}, nil)

	cat, err := f.dash.Catalog(context.Background())

	require.NoError(t, err)
	assert.Len(t, cat.Tags, 1)
	assert.Len(t, cat.Categories, 1)

	tags, err := f.dash.Tags()
	require.NoError(t, err)
	assert.Equal(t, cat.Tags, tags)
}

func TestSaveCategory_RefetchesCatalog(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, domain.RoleAdmin)

	f.api.EXPECT().UpdateCategory(mock.Anything, "c1", "Living").Return(&domain.Category{ID: "c1", Name: "Living"}, nil)
	f.api.EXPECT().ListTags(mock.Anything).Return([]domain.Tag{}, nil)
	f.api.EXPECT().ListCategories(mock.Anything).Return([]domain.Category{{ID: "c1", Name: "Living"}, {ID: "c2", Name: "Art"}}, nil)

	c, err := f.dash.SaveCategory(context.Background(), "c1", "Living")

	require.NoError(t, err)
	assert.Equal(t, "Living", c.Name)

	cats, err := f.dash.Categories()
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

func TestSaveTag_RefetchFailureKeepsResult(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, domain.RoleAdmin)

	f.api.EXPECT().CreateTag(mock.Anything, "fun").Return(&domain.Tag{ID: "t9", Name: "fun"}, nil)
	f.api.EXPECT().ListTags(mock.Anything).Return(nil, domain.NewUnavailableError("api", "down"))
	f.api.EXPECT().ListCategories(mock.Anything).Return(nil, nil).Maybe()

	tag, err := f.dash.SaveTag(context.Background(), "", "fun")

	require.NoError(t, err)
	assert.Equal(t, "t9", tag.ID)

	tags, err := f.dash.Tags()
	require.NoError(t, err)
	assert.Equal(t, []domain.Tag{{ID: "t9", Name: "fun"}}, tags)
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	return out
}
