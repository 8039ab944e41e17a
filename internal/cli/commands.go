package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jsamuelsen/quotedash/internal/app"
	"github.com/jsamuelsen/quotedash/internal/domain"
)

type command struct {
	name    string
	usage   string
	summary string
	action  string // completes "Failed to ..."
	session bool
	run     func(a *App, ctx context.Context, args []string) error
}

// commands is filled in init so that help can list it.
var commands []command

func init() {
	commands = []command{
		{name: "login", summary: "sign in", action: "log in", run: (*App).login},
		{name: "register", summary: "create an account", action: "register", run: (*App).register},
		{name: "logout", summary: "sign out", action: "log out", session: true, run: (*App).logout},
		{name: "whoami", summary: "show the signed-in user", action: "load session", session: true, run: (*App).whoami},
		{
			name: "list", usage: "[length=short|medium|long] [category=ID] [tag=ID] [text...] | all",
			summary: "list cached quotes", action: "list quotes", session: true, run: (*App).list,
		},
		{name: "favorites", summary: "list favorite quotes", action: "list favorites", session: true, run: (*App).favorites},
		{name: "categories", summary: "list categories", action: "list categories", session: true, run: (*App).categories},
		{name: "tags", summary: "list tags", action: "list tags", session: true, run: (*App).tags},
		{name: "random", summary: "show a random quote", action: "load a random quote", session: true, run: (*App).random},
		{name: "popular", summary: "most liked quotes", action: "load popular quotes", session: true, run: (*App).popular},
		{name: "longest", summary: "longest quotes", action: "load the longest quotes", session: true, run: (*App).longest},
		{name: "add", summary: "create a quote", action: "save quote", session: true, run: (*App).add},
		{name: "edit", usage: "ID", summary: "edit a quote", action: "save quote", session: true, run: (*App).edit},
		{name: "delete", usage: "ID", summary: "delete a quote", action: "delete quote", session: true, run: (*App).deleteQuote},
		{name: "like", usage: "ID", summary: "like a quote", action: "like quote", session: true, run: (*App).like},
		{name: "fav", usage: "ID", summary: "toggle favorite", action: "update favorites", session: true, run: (*App).favorite},
		{name: "category", usage: "NAME", summary: "create a category", action: "create category", session: true, run: (*App).createCategory},
		{name: "refresh", summary: "reload everything and reset filters", action: "refresh the dashboard", session: true, run: (*App).refresh},
		{name: "help", summary: "show this help", run: (*App).help},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}

	return command{}, false
}

func (a *App) help(context.Context, []string) error {
	for _, c := range commands {
		a.printf("  %-10s %-12s %s\n", c.name, firstWord(c.usage), c.summary)
	}

	a.printf("  %-10s %-12s %s\n", "exit", "", "leave")

	return nil
}

func firstWord(usage string) string {
	if len(usage) > 12 {
		return "[filters]"
	}

	return usage
}

func (a *App) login(ctx context.Context, _ []string) error {
	email, err := a.ask("Email")
	if err != nil {
		return err
	}

	password, err := a.askPassword("Password")
	if err != nil {
		return err
	}

	s, landing, err := a.dash.Login(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}

	return a.welcome(ctx, s, landing)
}

func (a *App) register(ctx context.Context, _ []string) error {
	var (
		r   domain.Registration
		err error
	)

	if r.Name, err = a.ask("Name"); err != nil {
		return err
	}

	if r.Email, err = a.ask("Email"); err != nil {
		return err
	}

	if r.Password, err = a.askPassword("Password"); err != nil {
		return err
	}

	if r.PasswordConfirmation, err = a.askPassword("Confirm password"); err != nil {
		return err
	}

	s, landing, err := a.dash.Register(ctx, r)
	if err != nil {
		return err
	}

	return a.welcome(ctx, s, landing)
}

func (a *App) welcome(ctx context.Context, s domain.Session, landing string) error {
	a.println(a.styles.ok.Render(fmt.Sprintf("Welcome, %s.", s.User.Name)))

	if landing == domain.LandingAdmin {
		a.println("You have administrator access.")
	}

	return a.refresh(ctx, nil)
}

func (a *App) logout(ctx context.Context, _ []string) error {
	a.filter = domain.Filter{}

	if err := a.dash.Logout(ctx); err != nil {
		return err
	}

	a.println("Signed out.")

	return nil
}

func (a *App) whoami(context.Context, []string) error {
	s, ok := a.dash.Session()
	if !ok {
		return domain.NewUnauthorizedError("whoami", 0)
	}

	a.printf("%s <%s> role=%s\n", s.User.Name, s.User.Email, s.User.Role)

	return nil
}

func (a *App) refresh(ctx context.Context, _ []string) error {
	a.filter = domain.Filter{}

	v, err := a.dash.Refresh(ctx)
	if err != nil {
		return err
	}

	a.printf("Loaded %d quotes, %d favorites, %d categories, %d tags.\n",
		len(v.Quotes), len(v.Favorites), len(v.Categories), len(v.Tags))

	return nil
}

// parseFilter reads key=value pairs; everything else is search text.
// "all" clears the filter.
func parseFilter(args []string) (domain.Filter, error) {
	var (
		f      domain.Filter
		search []string
	)

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			search = append(search, arg)
			continue
		}

		switch strings.ToLower(key) {
		case "length":
			b, err := domain.ParseLengthBucket(value)
			if err != nil {
				return domain.Filter{}, err
			}

			f.Length = b
		case "category":
			f.Category = value
		case "tag":
			f.Tag = value
		default:
			search = append(search, arg)
		}
	}

	f.Search = strings.Join(search, " ")

	return f, nil
}

func (a *App) list(_ context.Context, args []string) error {
	switch {
	case len(args) == 1 && args[0] == "all":
		a.filter = domain.Filter{}
	case len(args) > 0:
		f, err := parseFilter(args)
		if err != nil {
			return err
		}

		a.filter = f
	}

	quotes, err := a.dash.Quotes(a.filter)
	if err != nil {
		return err
	}

	a.printQuotes(quotes, "No quotes match.")

	return nil
}

func (a *App) favorites(context.Context, []string) error {
	quotes, err := a.dash.Favorites()
	if err != nil {
		return err
	}

	a.printQuotes(quotes, "No favorites yet.")

	return nil
}

func (a *App) categories(context.Context, []string) error {
	cats, err := a.dash.Categories()
	if err != nil {
		return err
	}

	for _, c := range cats {
		a.printf("  %s  %s\n", a.styles.id.Render(c.ID), c.Name)
	}

	return nil
}

func (a *App) tags(context.Context, []string) error {
	tags, err := a.dash.Tags()
	if err != nil {
		return err
	}

	for _, t := range tags {
		a.printf("  %s  %s\n", a.styles.id.Render(t.ID), t.Name)
	}

	return nil
}

func (a *App) random(ctx context.Context, _ []string) error {
	res, err := a.dash.RandomQuote(ctx)
	if err != nil {
		return err
	}

	a.printQuote(&res.Value)
	a.printSource(res.Source)

	return nil
}

func (a *App) popular(ctx context.Context, _ []string) error {
	res, err := a.dash.Popular(ctx)
	if err != nil {
		return err
	}

	a.printQuotes(res.Value, "No quotes yet.")
	a.printSource(res.Source)

	return nil
}

func (a *App) longest(context.Context, []string) error {
	quotes, err := a.dash.Longest()
	if err != nil {
		return err
	}

	a.printQuotes(quotes, "No quotes yet.")

	return nil
}

func (a *App) printSource(src app.Source) {
	if src == app.SourceLocal {
		a.println(a.styles.meta.Render("(computed from cached quotes)"))
	}
}

func requireArg(args []string, what string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", domain.NewValidationError(what, fmt.Sprintf("usage: %s is required", what))
	}

	return args[0], nil
}

func (a *App) add(ctx context.Context, _ []string) error {
	form, err := a.dash.Form()
	if err != nil {
		return err
	}

	if err := form.OpenNew(); err != nil {
		return err
	}

	return a.fillAndSubmit(ctx, form, domain.QuoteInput{})
}

func (a *App) edit(ctx context.Context, args []string) error {
	id, err := requireArg(args, "id")
	if err != nil {
		return err
	}

	v, err := a.dash.EditQuote(id)
	if err != nil {
		return err
	}

	form, err := a.dash.Form()
	if err != nil {
		return err
	}

	return a.fillAndSubmit(ctx, form, v.Input)
}

// fillAndSubmit prompts for every field, keeping current values on empty
// answers, then submits. The form is closed either way.
func (a *App) fillAndSubmit(ctx context.Context, form *app.QuoteForm, current domain.QuoteInput) error {
	defer form.Cancel()

	in, err := a.askQuote(current)
	if err != nil {
		return err
	}

	if err := form.SetInput(in); err != nil {
		return err
	}

	q, err := form.Submit(ctx)
	if err != nil {
		return err
	}

	a.println(a.styles.ok.Render("Saved."))
	a.printQuote(&q)

	return nil
}

func (a *App) askQuote(current domain.QuoteInput) (domain.QuoteInput, error) {
	in := current

	var err error

	if in.Content, err = a.askDefault("Content", current.Content); err != nil {
		return in, err
	}

	if in.Author, err = a.askDefault("Author", current.Author); err != nil {
		return in, err
	}

	if in.Source, err = a.askDefault("Source (optional)", current.Source); err != nil {
		return in, err
	}

	if in.CategoryID, err = a.askDefault("Category id (optional)", current.CategoryID); err != nil {
		return in, err
	}

	tags, err := a.askDefault("Tag ids, comma separated (optional)", strings.Join(current.TagIDs, ","))
	if err != nil {
		return in, err
	}

	in.TagIDs = splitIDs(tags)

	return in, nil
}

func splitIDs(s string) []string {
	var ids []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}

	return ids
}

func (a *App) deleteQuote(ctx context.Context, args []string) error {
	id, err := requireArg(args, "id")
	if err != nil {
		return err
	}

	if err := a.dash.DeleteQuote(ctx, id, a); err != nil {
		return err
	}

	a.println(a.styles.ok.Render("Quote deleted."))

	return nil
}

func (a *App) like(ctx context.Context, args []string) error {
	id, err := requireArg(args, "id")
	if err != nil {
		return err
	}

	if err := a.dash.LikeQuote(ctx, id); err != nil {
		return err
	}

	a.println(a.styles.ok.Render("Liked."))

	return nil
}

func (a *App) favorite(ctx context.Context, args []string) error {
	id, err := requireArg(args, "id")
	if err != nil {
		return err
	}

	q, err := a.dash.ToggleFavorite(ctx, id)
	if err != nil {
		return err
	}

	if q.IsFavorited {
		a.println(a.styles.ok.Render("Added to favorites."))
	} else {
		a.println(a.styles.ok.Render("Removed from favorites."))
	}

	return nil
}

func (a *App) createCategory(ctx context.Context, args []string) error {
	c, err := a.dash.CreateCategory(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	a.printf("Created category %s (%s).\n", c.Name, a.styles.id.Render(c.ID))

	return nil
}
