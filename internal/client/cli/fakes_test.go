package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bothoster/internal/client/models"
	"github.com/dmitrijs2005/bothoster/internal/client/services"
	"github.com/dmitrijs2005/bothoster/internal/client/state"
	"github.com/dmitrijs2005/bothoster/internal/client/telegram"
	"github.com/dmitrijs2005/bothoster/internal/logging"
)

// ---- fake auth service ----

type fakeAuth struct {
	user      *models.User
	signInErr error
	signUpErr error
	pingErr   error

	lastEmail string
	lastPass  string
	signUps   int
	signOuts  int
	pings     int
	closed    bool

	subs []func(*models.User)
}

func (f *fakeAuth) SignUp(_ context.Context, email string, password []byte) (*models.User, error) {
	f.signUps++
	f.lastEmail, f.lastPass = email, string(password)
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.currentOrDefault(email), nil
}

func (f *fakeAuth) SignIn(_ context.Context, email string, password []byte) (*models.User, error) {
	f.lastEmail, f.lastPass = email, string(password)
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.currentOrDefault(email), nil
}

func (f *fakeAuth) currentOrDefault(email string) *models.User {
	if f.user != nil {
		return f.user
	}
	return &models.User{UID: "uid-1", Email: email}
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.signOuts++
	for _, fn := range f.subs {
		fn(nil)
	}
	return nil
}

func (f *fakeAuth) Subscribe(fn func(*models.User)) func() {
	f.subs = append(f.subs, fn)
	return func() { f.subs = nil }
}

func (f *fakeAuth) CurrentUser() *models.User { return f.user }

func (f *fakeAuth) Ping(context.Context) error {
	f.pings++
	return f.pingErr
}

func (f *fakeAuth) Close(context.Context) error {
	f.closed = true
	return nil
}

// ---- fake bot service ----

type fakeBots struct {
	stored    []models.Bot
	createErr error
	updateErr error
	deleteErr error

	creates []models.CreateBotInput
	updates []string
	deletes []string
	seq     int
}

func (f *fakeBots) Load(context.Context) ([]models.Bot, error) {
	return slices.Clone(f.stored), nil
}

func (f *fakeBots) Create(_ context.Context, current []models.Bot, in models.CreateBotInput) ([]models.Bot, *models.Bot, error) {
	if strings.TrimSpace(in.Token) == "" {
		return current, nil, services.ErrTokenRequired
	}
	if len(current) >= models.MaxBotsPerAccount {
		return current, nil, services.ErrQuotaReached
	}
	f.creates = append(f.creates, in)
	if f.createErr != nil {
		return current, nil, f.createErr
	}

	f.seq++
	name := in.Name
	if name == "" {
		name = models.DefaultBotName
	}
	b := models.Bot{
		ID:         fmt.Sprintf("new-%d", f.seq),
		Name:       name,
		Username:   "new_bot",
		Token:      in.Token,
		WebhookURL: "https://hook.example/new",
		WebhookSet: true,
		Script:     in.Script,
	}
	return append(slices.Clone(current), b), &b, nil
}

func (f *fakeBots) Update(_ context.Context, current []models.Bot, botID, script string) ([]models.Bot, error) {
	i := models.FindBot(current, botID)
	if i < 0 {
		return current, services.ErrBotNotFound
	}
	f.updates = append(f.updates, botID)
	if f.updateErr != nil {
		return current, f.updateErr
	}
	next := slices.Clone(current)
	next[i].Script = script
	return next, nil
}

func (f *fakeBots) Delete(_ context.Context, current []models.Bot, botID string) ([]models.Bot, error) {
	i := models.FindBot(current, botID)
	if i < 0 {
		return current, services.ErrBotNotFound
	}
	f.deletes = append(f.deletes, botID)
	if f.deleteErr != nil {
		return current, f.deleteErr
	}
	return slices.Delete(slices.Clone(current), i, i+1), nil
}

// ---- fake webhook checker ----

type fakeChecker struct {
	reports []telegram.Report
	calls   int
}

func (f *fakeChecker) CheckAll(_ context.Context, _ []models.Bot) []telegram.Report {
	f.calls++
	return f.reports
}

// ---- helpers ----

func sampleBots(n int) []models.Bot {
	out := make([]models.Bot, n)
	for i := range out {
		out[i] = models.Bot{
			ID:         fmt.Sprintf("bot-%d", i+1),
			Name:       fmt.Sprintf("Bot %d", i+1),
			Username:   fmt.Sprintf("bot%d_bot", i+1),
			Token:      fmt.Sprintf("%d:AAAAsecretsecret", 1000+i),
			WebhookURL: fmt.Sprintf("https://hook.example/%d", i+1),
			WebhookSet: true,
			Script:     models.DefaultScript,
		}
	}
	return out
}

// capturePrintln replaces printlnFn and returns everything printed.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func joined(lines *[]string) string {
	return strings.Join(*lines, "\n")
}

type testApp struct {
	*App
	auth    *fakeAuth
	bots    *fakeBots
	checker *fakeChecker
}

// newTestApp builds an App over fakes with input as the stdin contents.
func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	auth := &fakeAuth{}
	bots := &fakeBots{}
	checker := &fakeChecker{}
	session := state.New(auth, bots, logging.Discard())
	t.Cleanup(session.Close)

	return &testApp{
		App: &App{
			log:       logging.Discard(),
			auth:      auth,
			session:   session,
			inspector: checker,
			reader:    bufio.NewReader(strings.NewReader(input)),
			out:       io.Discard,
		},
		auth:    auth,
		bots:    bots,
		checker: checker,
	}
}

// loggedIn signs the test app in with stored as the mirror contents.
func (ta *testApp) loggedIn(t *testing.T, stored []models.Bot) *testApp {
	t.Helper()
	ta.bots.stored = stored
	ta.session.SetEmail("alice@example.org")
	ta.session.SetPassword([]byte("secret"))
	require.NoError(t, ta.session.Login(context.Background()))
	require.True(t, ta.isLoggedIn())
	return ta
}

// stubPrompts swaps the interactive helpers for canned answers.
type prompts struct {
	text      []string
	password  []byte
	secret    []byte
	multiline []string
	confirm   bool
}

func stubPrompts(t *testing.T, p prompts) {
	t.Helper()
	origST, origGP, origGS, origML, origCF := getSimpleText, getPassword, getSecret, getMultiline, confirm
	t.Cleanup(func() {
		getSimpleText, getPassword, getSecret, getMultiline, confirm = origST, origGP, origGS, origML, origCF
	})

	texts := slices.Clone(p.text)
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return p.password, nil }
	getSecret = func(_ string, _ io.Writer) ([]byte, error) { return slices.Clone(p.secret), nil }

	multi := slices.Clone(p.multiline)
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(multi) == 0 {
			return "", nil
		}
		s := multi[0]
		multi = multi[1:]
		return s, nil
	}
	confirm = func(_ *bufio.Reader, _ string, _ io.Writer) (bool, error) { return p.confirm, nil }
}
